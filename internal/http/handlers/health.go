package handlers

import (
	"net/http"

	"github.com/sensemesh/ai-engine/internal/core/sign"
	"github.com/sensemesh/ai-engine/pkg/types"
	"github.com/sensemesh/ai-engine/pkg/ws"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Sign        *sign.Service
	Hub         *ws.Hub
	Accelerator bool
}

func NewHealthHandler(svc *sign.Service, hub *ws.Hub, accelerator bool) *HealthHandler {
	return &HealthHandler{Sign: svc, Hub: hub, Accelerator: accelerator}
}

func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResp{
		Status:        "online",
		Accelerator:   h.Accelerator,
		SignActive:    h.Sign.Ready(),
		StreamClients: h.Hub.Count(),
	})
}
