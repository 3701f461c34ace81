package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sensemesh/ai-engine/internal/config"
	"github.com/sensemesh/ai-engine/internal/core/sign"
	"github.com/sensemesh/ai-engine/pkg/types"
	"github.com/sensemesh/ai-engine/pkg/ws"

	"github.com/gin-gonic/gin"
)

func testDeps() Deps {
	gin.SetMode(gin.TestMode)
	return Deps{
		Config: config.Config{Port: "0"},
		Sign:   sign.Disabled("no artifacts in test"),
		Hub:    ws.NewHub(),
	}
}

func TestHealthReportsSignInactive(t *testing.T) {
	r := NewRouter(testDeps())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp types.HealthResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "online" {
		t.Errorf("expected status online, got %q", resp.Status)
	}
	if resp.SignActive {
		t.Error("expected sign_active false for disabled service")
	}
}

func TestCollaboratorRoutesAbsentWhenDisabled(t *testing.T) {
	r := NewRouter(testDeps())

	for _, path := range []string{"/v1/text/analyze", "/v1/audio/transcribe", "/v1/audio/hazard", "/v1/vision/describe"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 when collaborator disabled, got %d", path, w.Code)
		}
	}
}

func TestSignRouteAlwaysRegistered(t *testing.T) {
	r := NewRouter(testDeps())

	req := httptest.NewRequest(http.MethodPost, "/v1/sign/predict", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	// Registered route; an empty body is a bad request, not a 404.
	if w.Code == http.StatusNotFound {
		t.Error("sign route missing from router")
	}
}
