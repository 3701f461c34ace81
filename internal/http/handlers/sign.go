package handlers

import (
	"net/http"

	"github.com/sensemesh/ai-engine/internal/core/sign"
	"github.com/sensemesh/ai-engine/internal/store"
	"github.com/sensemesh/ai-engine/pkg/types"

	"github.com/gin-gonic/gin"
)

type SignHandler struct {
	Svc   *sign.Service
	Store *store.Store
}

func NewSignHandler(svc *sign.Service, st *store.Store) *SignHandler {
	return &SignHandler{Svc: svc, Store: st}
}

// Predict answers every well-formed request with 200 and a gesture field;
// validation and availability failures travel as sentinel values, not
// transport errors.
func (h *SignHandler) Predict(c *gin.Context) {
	var req types.SignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	gesture, conf := h.Svc.PredictDetail(req.Landmarks)
	if isLabel(gesture) {
		record(h.Store, "sign", gesture, conf)
	}
	c.JSON(http.StatusOK, types.SignResp{Gesture: gesture})
}

func isLabel(gesture string) bool {
	switch gesture {
	case sign.GestureLowConfidence, sign.GestureShapeError, sign.GestureModelMissing, sign.GestureError:
		return false
	}
	return true
}
