// Package emotion classifies short texts into emotion labels using a
// pretrained transformer exported to ONNX.
package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	ort "github.com/yalue/onnxruntime_go"
)

// Analyzer labels a piece of text with the dominant emotion.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

// Metadata describes the exported model: its label set and the maximum
// token sequence length it was exported with.
type Metadata struct {
	Labels []string `json:"labels"`
	MaxLen int      `json:"max_len"`
}

// ONNXClassifier runs a text-classification model through onnxruntime.
// The model directory must contain model.onnx, vocab.txt and metadata.json.
type ONNXClassifier struct {
	session   *ort.DynamicAdvancedSession
	tokenizer *wordPiece
	meta      Metadata
}

func NewONNX(modelDir string) (*ONNXClassifier, error) {
	raw, err := os.ReadFile(filepath.Join(modelDir, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("read emotion metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse emotion metadata: %w", err)
	}
	if len(meta.Labels) == 0 {
		return nil, fmt.Errorf("emotion metadata has no labels")
	}
	if meta.MaxLen <= 0 {
		meta.MaxLen = 128
	}

	tokenizer, err := loadWordPiece(filepath.Join(modelDir, "vocab.txt"))
	if err != nil {
		return nil, fmt.Errorf("load emotion vocab: %w", err)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(
		filepath.Join(modelDir, "model.onnx"),
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		nil)
	if err != nil {
		return nil, fmt.Errorf("create emotion session: %w", err)
	}

	return &ONNXClassifier{session: session, tokenizer: tokenizer, meta: meta}, nil
}

func (c *ONNXClassifier) Analyze(ctx context.Context, text string) (string, error) {
	ids, mask := c.tokenizer.encode(text, c.meta.MaxLen)

	shape := ort.NewShape(1, int64(c.meta.MaxLen))
	inputIDs, err := ort.NewTensor[int64](shape, ids)
	if err != nil {
		return "", err
	}
	defer inputIDs.Destroy()
	attMask, err := ort.NewTensor[int64](shape, mask)
	if err != nil {
		return "", err
	}
	defer attMask.Destroy()

	outputs := make([]ort.Value, 1)
	if err := c.session.Run([]ort.Value{inputIDs, attMask}, outputs); err != nil {
		return "", fmt.Errorf("emotion inference: %w", err)
	}
	defer outputs[0].Destroy()

	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return "", fmt.Errorf("unexpected emotion output type")
	}
	data := logits.GetData()
	if len(data) < len(c.meta.Labels) {
		return "", fmt.Errorf("emotion output has %d scores for %d labels", len(data), len(c.meta.Labels))
	}

	best := 0
	for i := 1; i < len(c.meta.Labels); i++ {
		if data[i] > data[best] {
			best = i
		}
	}
	return c.meta.Labels[best], nil
}

func (c *ONNXClassifier) Close() {
	if c.session != nil {
		c.session.Destroy()
	}
}
