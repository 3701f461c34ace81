package handlers

import (
	"log"
	"net/http"

	"github.com/sensemesh/ai-engine/internal/core/emotion"
	"github.com/sensemesh/ai-engine/internal/store"
	"github.com/sensemesh/ai-engine/pkg/types"

	"github.com/gin-gonic/gin"
)

type TextHandler struct {
	Analyzer emotion.Analyzer
	Store    *store.Store
}

func NewTextHandler(a emotion.Analyzer, st *store.Store) *TextHandler {
	return &TextHandler{Analyzer: a, Store: st}
}

func (h *TextHandler) Analyze(c *gin.Context) {
	var req types.TextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_text"})
		return
	}
	label, err := h.Analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("emotion: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analyze_failed"})
		return
	}
	record(h.Store, "text", label, 0)
	c.JSON(http.StatusOK, types.EmotionResp{Emotion: label})
}
