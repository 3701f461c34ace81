package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sensemesh/ai-engine/internal/core/sign"
	"github.com/sensemesh/ai-engine/pkg/types"

	"github.com/gin-gonic/gin"
)

type stubClassifier struct {
	logits []float64
	calls  int
}

func (s *stubClassifier) Forward(seq [][]float64) []float64 {
	s.calls++
	return s.logits
}

func (s *stubClassifier) NumClasses() int { return len(s.logits) }

func testSignService(logits []float64, labels ...string) (*sign.Service, *stubClassifier) {
	clf := &stubClassifier{logits: logits}
	std := make([]float64, sign.FrameFeatures)
	for i := range std {
		std[i] = 1
	}
	meta := &sign.Metadata{
		Labels: labels,
		Mean:   make([]float64, sign.FrameFeatures),
		Std:    std,
	}
	return sign.New(clf, meta), clf
}

func signRouter(svc *sign.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSignHandler(svc, nil)
	r.POST("/v1/sign/predict", h.Predict)
	return r
}

func postSign(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/sign/predict", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSign(t *testing.T, w *httptest.ResponseRecorder) types.SignResp {
	t.Helper()
	var resp types.SignResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSignPredictLabel(t *testing.T) {
	svc, _ := testSignService([]float64{5.0, 0.1, 0.1}, "hello", "thanks", "yes")
	r := signRouter(svc)

	w := postSign(t, r, types.SignReq{Landmarks: make([]float64, sign.WindowSize)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decodeSign(t, w); resp.Gesture != "hello" {
		t.Errorf("expected %q, got %q", "hello", resp.Gesture)
	}
}

func TestSignPredictShapeError(t *testing.T) {
	svc, clf := testSignService([]float64{1, 2, 3}, "a", "b", "c")
	r := signRouter(svc)

	w := postSign(t, r, types.SignReq{Landmarks: make([]float64, 10)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decodeSign(t, w); resp.Gesture != sign.GestureShapeError {
		t.Errorf("expected %q, got %q", sign.GestureShapeError, resp.Gesture)
	}
	if clf.calls != 0 {
		t.Errorf("classifier invoked %d times for malformed input", clf.calls)
	}
}

func TestSignPredictModelMissing(t *testing.T) {
	r := signRouter(sign.Disabled("no artifacts"))

	w := postSign(t, r, types.SignReq{Landmarks: make([]float64, sign.WindowSize)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decodeSign(t, w); resp.Gesture != sign.GestureModelMissing {
		t.Errorf("expected %q, got %q", sign.GestureModelMissing, resp.Gesture)
	}
}

func TestSignPredictBadJSON(t *testing.T) {
	svc, _ := testSignService([]float64{1, 2}, "a", "b")
	r := signRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/sign/predict", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
