package http

import (
	"log"

	"github.com/sensemesh/ai-engine/internal/config"
	"github.com/sensemesh/ai-engine/internal/core/caption"
	"github.com/sensemesh/ai-engine/internal/core/emotion"
	"github.com/sensemesh/ai-engine/internal/core/hazard"
	"github.com/sensemesh/ai-engine/internal/core/sign"
	"github.com/sensemesh/ai-engine/internal/core/speech"
	"github.com/sensemesh/ai-engine/internal/http/handlers"
	"github.com/sensemesh/ai-engine/internal/store"
	"github.com/sensemesh/ai-engine/pkg/ws"

	"github.com/gin-gonic/gin"
)

// Deps holds the capability services behind the router. A nil collaborator
// means its endpoints are not registered; the sign service is always
// present and degrades internally instead.
type Deps struct {
	Config  config.Config
	Sign    *sign.Service
	Emotion emotion.Analyzer
	Speech  speech.Transcriber
	Hazard  hazard.Detector
	Caption caption.Describer
	Store   *store.Store
	Hub     *ws.Hub
}

// BuildDeps constructs every capability from configuration. Collaborators
// that fail to initialize are logged and left nil; only the process-level
// essentials can stop startup.
func BuildDeps(cfg config.Config) Deps {
	d := Deps{Config: cfg, Hub: ws.NewHub()}

	d.Sign = sign.Load(cfg.SignModelPath, cfg.SignMetaPath)

	if cfg.EmotionModelDir != "" {
		a, err := emotion.NewONNX(cfg.EmotionModelDir)
		if err != nil {
			log.Printf("emotion: disabled: %v", err)
		} else {
			d.Emotion = a
		}
	}
	if cfg.SpeechBaseURL != "" {
		d.Speech = speech.NewHTTPProvider(cfg.SpeechBaseURL)
	}
	if cfg.HazardBaseURL != "" {
		d.Hazard = hazard.NewHTTPProvider(cfg.HazardBaseURL)
	}
	if cfg.GeminiAPIKey != "" {
		cl, err := caption.New(cfg.GeminiAPIKey, cfg.CaptionModel)
		if err != nil {
			log.Printf("caption: disabled: %v", err)
		} else {
			d.Caption = cl
		}
	}
	if cfg.DBPath != "" {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			log.Printf("history: disabled: %v", err)
		} else {
			d.Store = st
		}
	}
	return d
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	hh := handlers.NewHealthHandler(d.Sign, d.Hub, d.Config.Accelerator)
	r.GET("/", hh.Status)

	api := r.Group("/v1")

	sh := handlers.NewSignHandler(d.Sign, d.Store)
	api.POST("/sign/predict", sh.Predict)

	if d.Emotion != nil {
		th := handlers.NewTextHandler(d.Emotion, d.Store)
		api.POST("/text/analyze", th.Analyze)
	}
	ah := handlers.NewAudioHandler(d.Speech, d.Hazard, d.Store)
	if d.Speech != nil {
		api.POST("/audio/transcribe", ah.Transcribe)
	}
	if d.Hazard != nil {
		api.POST("/audio/hazard", ah.DetectHazard)
	}
	if d.Caption != nil {
		vh := handlers.NewVisionHandler(d.Caption, d.Store)
		api.POST("/vision/describe", vh.Describe)
	}
	if d.Store != nil {
		ph := handlers.NewHistoryHandler(d.Store)
		api.GET("/predictions", ph.List)
	}

	wsh := handlers.NewStreamHandler(d.Hub, d.Sign)
	r.GET("/v1/stream", wsh.WS)

	return r
}
