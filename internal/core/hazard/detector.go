// Package hazard classifies audio clips into acoustic events and maps them
// to an urgency level for the safety assistant.
package hazard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Event is one scored acoustic class from the audio tagger.
type Event struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Detector returns the top acoustic events for an audio clip.
type Detector interface {
	Detect(ctx context.Context, audioPath string) ([]Event, error)
}

// HTTPProvider posts the clip to {Base}/classify and expects a JSON array
// of labeled scores back.
type HTTPProvider struct {
	Base   string
	Client *http.Client
	TopK   int
}

func NewHTTPProvider(base string) *HTTPProvider {
	return &HTTPProvider{
		Base:   base,
		Client: &http.Client{Timeout: 60 * time.Second},
		TopK:   5,
	}
}

func (p *HTTPProvider) Detect(ctx context.Context, audioPath string) ([]Event, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	url := p.Base + "/classify?top_k=" + strconv.Itoa(p.TopK)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hazard backend: %s", resp.Status)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode hazard events: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("hazard backend returned no events")
	}
	return events, nil
}
