package sign

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// FormatTag identifies the supported weights artifact schema.
const FormatTag = "sign-lstm/v1"

type cellWeights struct {
	WIH [][]float64 `json:"w_ih"`
	WHH [][]float64 `json:"w_hh"`
	BIH []float64   `json:"b_ih"`
	BHH []float64   `json:"b_hh"`
}

type layerWeights struct {
	Forward  cellWeights `json:"forward"`
	Backward cellWeights `json:"backward"`
}

type weightsFile struct {
	Format     string         `json:"format"`
	InputSize  int            `json:"input_size"`
	HiddenSize int            `json:"hidden_size"`
	NumLayers  int            `json:"num_layers"`
	NumClasses int            `json:"num_classes"`
	Layers     []layerWeights `json:"layers"`
	Output     struct {
		Weight [][]float64 `json:"weight"`
		Bias   []float64   `json:"bias"`
	} `json:"output"`
}

// LoadClassifier reads a weights artifact and builds the classifier. Every
// matrix is validated against the dimensions declared in the header, so a
// truncated or mismatched artifact fails here rather than mid-inference.
func LoadClassifier(path string) (*SequenceClassifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	var wf weightsFile
	if err := json.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("parse weights: %w", err)
	}
	if wf.Format != FormatTag {
		return nil, fmt.Errorf("unsupported weights format %q, want %q", wf.Format, FormatTag)
	}
	if wf.InputSize <= 0 || wf.HiddenSize <= 0 || wf.NumLayers <= 0 || wf.NumClasses <= 0 {
		return nil, fmt.Errorf("invalid weights header: input=%d hidden=%d layers=%d classes=%d",
			wf.InputSize, wf.HiddenSize, wf.NumLayers, wf.NumClasses)
	}
	if len(wf.Layers) != wf.NumLayers {
		return nil, fmt.Errorf("weights declare %d layers but carry %d", wf.NumLayers, len(wf.Layers))
	}

	m := &SequenceClassifier{
		inputSize: wf.InputSize,
		layers:    make([]biLayer, wf.NumLayers),
	}
	for i, lw := range wf.Layers {
		// Layers past the first consume the concatenated output of both
		// directions of the previous layer.
		in := wf.InputSize
		if i > 0 {
			in = 2 * wf.HiddenSize
		}
		fwd, err := buildCell(lw.Forward, in, wf.HiddenSize)
		if err != nil {
			return nil, fmt.Errorf("layer %d forward: %w", i, err)
		}
		bwd, err := buildCell(lw.Backward, in, wf.HiddenSize)
		if err != nil {
			return nil, fmt.Errorf("layer %d backward: %w", i, err)
		}
		m.layers[i] = biLayer{fwd: fwd, bwd: bwd}
	}

	combined := 2 * wf.HiddenSize
	if len(wf.Output.Weight) != wf.NumClasses || len(wf.Output.Bias) != wf.NumClasses {
		return nil, fmt.Errorf("output layer has %d rows and %d biases, want %d",
			len(wf.Output.Weight), len(wf.Output.Bias), wf.NumClasses)
	}
	for row, w := range wf.Output.Weight {
		if len(w) != combined {
			return nil, fmt.Errorf("output row %d has %d columns, want %d", row, len(w), combined)
		}
	}
	m.out = dense{weight: wf.Output.Weight, bias: wf.Output.Bias}
	return m, nil
}

func buildCell(cw cellWeights, inputSize, hidden int) (lstmCell, error) {
	rows := 4 * hidden
	if len(cw.WIH) != rows || len(cw.WHH) != rows || len(cw.BIH) != rows || len(cw.BHH) != rows {
		return lstmCell{}, fmt.Errorf("gate blocks have %d/%d/%d/%d rows, want %d",
			len(cw.WIH), len(cw.WHH), len(cw.BIH), len(cw.BHH), rows)
	}
	for r := 0; r < rows; r++ {
		if len(cw.WIH[r]) != inputSize {
			return lstmCell{}, fmt.Errorf("w_ih row %d has %d columns, want %d", r, len(cw.WIH[r]), inputSize)
		}
		if len(cw.WHH[r]) != hidden {
			return lstmCell{}, fmt.Errorf("w_hh row %d has %d columns, want %d", r, len(cw.WHH[r]), hidden)
		}
	}
	return lstmCell{wIH: cw.WIH, wHH: cw.WHH, bIH: cw.BIH, bHH: cw.BHH, hidden: hidden}, nil
}

// Metadata is the companion artifact to the weights: the label vocabulary
// and the per-feature normalization statistics captured at training time.
type Metadata struct {
	Labels []string
	Mean   []float64
	Std    []float64
}

type metadataFile struct {
	IdxToLabel map[string]string `json:"idx_to_label"`
	Mean       []float64         `json:"mean"`
	Std        []float64         `json:"std"`
}

// LoadMetadata reads the metadata artifact. The label map must cover the
// contiguous index range 0..N-1 and the statistics vectors must match the
// per-frame feature width.
func LoadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var mf metadataFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if len(mf.IdxToLabel) == 0 {
		return nil, fmt.Errorf("metadata has no labels")
	}
	labels := make([]string, len(mf.IdxToLabel))
	for k, v := range mf.IdxToLabel {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 || idx >= len(labels) {
			return nil, fmt.Errorf("label index %q outside 0..%d", k, len(labels)-1)
		}
		labels[idx] = v
	}
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("label index %d is missing", i)
		}
	}
	if len(mf.Mean) != FrameFeatures || len(mf.Std) != FrameFeatures {
		return nil, fmt.Errorf("statistics have %d/%d features, want %d",
			len(mf.Mean), len(mf.Std), FrameFeatures)
	}
	return &Metadata{Labels: labels, Mean: mf.Mean, Std: mf.Std}, nil
}
