package main

import (
	"log"

	"github.com/sensemesh/ai-engine/internal/config"
	h "github.com/sensemesh/ai-engine/internal/http"
	"github.com/sensemesh/ai-engine/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logging.Setup(cfg.LogPath)

	deps := h.BuildDeps(cfg)
	if deps.Store != nil {
		defer deps.Store.Close()
	}

	r := h.NewRouter(deps)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
