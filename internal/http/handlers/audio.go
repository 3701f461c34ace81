package handlers

import (
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sensemesh/ai-engine/internal/core/hazard"
	"github.com/sensemesh/ai-engine/internal/core/speech"
	"github.com/sensemesh/ai-engine/internal/store"
	"github.com/sensemesh/ai-engine/pkg/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AudioHandler struct {
	Transcriber speech.Transcriber
	Hazard      hazard.Detector
	Store       *store.Store
}

func NewAudioHandler(t speech.Transcriber, d hazard.Detector, st *store.Store) *AudioHandler {
	return &AudioHandler{Transcriber: t, Hazard: d, Store: st}
}

func (h *AudioHandler) Transcribe(c *gin.Context) {
	var req types.AudioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	path, cleanup, err := saveAudioPayload(req.DataBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio_decode_failed"})
		return
	}
	defer cleanup()

	text, err := h.Transcriber.Transcribe(c.Request.Context(), path)
	if err != nil {
		log.Printf("transcribe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transcribe_failed"})
		return
	}
	c.JSON(http.StatusOK, types.TranscribeResp{Text: text})
}

func (h *AudioHandler) DetectHazard(c *gin.Context) {
	var req types.AudioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	path, cleanup, err := saveAudioPayload(req.DataBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio_decode_failed"})
		return
	}
	defer cleanup()

	events, err := h.Hazard.Detect(c.Request.Context(), path)
	if err != nil {
		log.Printf("hazard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hazard_failed"})
		return
	}
	if len(events) == 0 {
		log.Printf("hazard: backend returned no events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hazard_failed"})
		return
	}
	top := events[0]
	urgency := hazard.Urgency(events)
	record(h.Store, "hazard", top.Label, top.Score)
	c.JSON(http.StatusOK, types.HazardResp{Event: top.Label, Urgency: urgency})
}

// saveAudioPayload decodes a base64 clip (with or without a data-URL
// prefix) into a temp file, sniffing the content to pick an extension the
// transcription backend will accept. The caller must invoke cleanup.
func saveAudioPayload(b64 string) (string, func(), error) {
	if i := strings.Index(b64, ","); i >= 0 {
		b64 = b64[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, err
	}

	ext := ".wav"
	detected := mimetype.Detect(data).String()
	switch {
	case strings.Contains(detected, "webm"):
		ext = ".webm"
	case strings.Contains(detected, "ogg"):
		ext = ".ogg"
	case strings.Contains(detected, "mp4"):
		ext = ".m4a"
	}

	path := filepath.Join(os.TempDir(), uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}
