package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sensemesh/ai-engine/internal/core/sign"
	"github.com/sensemesh/ai-engine/pkg/ws"
)

// StreamHandler accepts live landmark frames over a websocket and emits a
// gesture event per full window, sliding one frame at a time.
type StreamHandler struct {
	Hub      *ws.Hub
	Sign     *sign.Service
	Upgrader websocket.Upgrader
}

func NewStreamHandler(h *ws.Hub, svc *sign.Service) *StreamHandler {
	return &StreamHandler{
		Hub:  h,
		Sign: svc,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) WS(c *gin.Context) {
	id := c.Query("client")
	if id == "" {
		id = uuid.NewString()
	}
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.Hub.Add(id, conn)
	defer func() {
		h.Hub.Remove(id)
		conn.Close()
	}()

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	_ = conn.WriteJSON(gin.H{
		"type":           "hello",
		"client":         id,
		"window_frames":  sign.WindowFrames,
		"frame_features": sign.FrameFeatures,
		"ts":             time.Now().UnixMilli(),
	})

	window := make([][]float64, 0, sign.WindowFrames)
	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var frame struct {
			Type      string    `json:"type"`
			Landmarks []float64 `json:"landmarks"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil || frame.Type != "frame" {
			continue
		}
		if len(frame.Landmarks) != sign.FrameFeatures {
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(gin.H{"type": "error", "error": "bad_frame"}); err != nil {
				return
			}
			continue
		}

		window = append(window, frame.Landmarks)
		if len(window) > sign.WindowFrames {
			window = window[1:]
		}
		if len(window) < sign.WindowFrames {
			continue
		}

		flat := make([]float64, 0, sign.WindowSize)
		for _, f := range window {
			flat = append(flat, f...)
		}
		gesture, conf := h.Sign.PredictDetail(flat)

		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(gin.H{
			"type":       "gesture",
			"gesture":    gesture,
			"confidence": conf,
			"ts":         time.Now().UnixMilli(),
		}); err != nil {
			return
		}
	}
}
