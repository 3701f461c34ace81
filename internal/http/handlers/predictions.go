package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sensemesh/ai-engine/internal/store"
	"github.com/sensemesh/ai-engine/pkg/types"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	Store *store.Store
}

func NewHistoryHandler(st *store.Store) *HistoryHandler {
	return &HistoryHandler{Store: st}
}

func (h *HistoryHandler) List(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_limit"})
			return
		}
		limit = n
	}

	rows, err := h.Store.RecentPredictions(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history_failed"})
		return
	}

	resp := types.PredictionListResp{Predictions: make([]types.PredictionResp, 0, len(rows))}
	for _, p := range rows {
		resp.Predictions = append(resp.Predictions, types.PredictionResp{
			ID:         p.ID,
			Modality:   p.Modality,
			Label:      p.Label,
			Confidence: p.Confidence,
			CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}
