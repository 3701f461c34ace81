package handlers

import (
	"encoding/base64"
	"log"
	"net/http"
	"strings"

	"github.com/sensemesh/ai-engine/internal/core/caption"
	"github.com/sensemesh/ai-engine/internal/store"
	"github.com/sensemesh/ai-engine/pkg/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

type VisionHandler struct {
	Describer caption.Describer
	Store     *store.Store
}

func NewVisionHandler(d caption.Describer, st *store.Store) *VisionHandler {
	return &VisionHandler{Describer: d, Store: st}
}

func (h *VisionHandler) Describe(c *gin.Context) {
	var req types.DescribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	b64 := req.DataBase64
	if i := strings.Index(b64, ","); i >= 0 {
		b64 = b64[i+1:]
	}
	img, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_decode_failed"})
		return
	}

	mime := mimetype.Detect(img).String()
	desc, err := h.Describer.Describe(c.Request.Context(), img, mime)
	if err != nil {
		log.Printf("describe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "describe_failed"})
		return
	}
	record(h.Store, "vision", desc, 0)
	c.JSON(http.StatusOK, types.DescribeResp{Description: desc})
}
