package sign

import (
	"math"
	"testing"
)

// newTestClassifier builds a classifier with every LSTM weight set to fill
// and the output layer set explicitly. With fill == 0 all hidden states
// collapse to zero and the logits equal the output bias.
func newTestClassifier(inputSize, hidden, layers, classes int, fill float64, bias []float64) *SequenceClassifier {
	m := &SequenceClassifier{
		inputSize: inputSize,
		layers:    make([]biLayer, layers),
	}
	for i := range m.layers {
		in := inputSize
		if i > 0 {
			in = 2 * hidden
		}
		m.layers[i] = biLayer{
			fwd: filledCell(in, hidden, fill),
			bwd: filledCell(in, hidden, fill),
		}
	}
	weight := make([][]float64, classes)
	for r := range weight {
		weight[r] = make([]float64, 2*hidden)
	}
	m.out = dense{weight: weight, bias: bias}
	return m
}

func filledCell(inputSize, hidden int, fill float64) lstmCell {
	rows := 4 * hidden
	wIH := make([][]float64, rows)
	wHH := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		wIH[r] = make([]float64, inputSize)
		wHH[r] = make([]float64, hidden)
		for i := range wIH[r] {
			wIH[r][i] = fill
		}
		for i := range wHH[r] {
			wHH[r][i] = fill
		}
	}
	return lstmCell{
		wIH:    wIH,
		wHH:    wHH,
		bIH:    make([]float64, rows),
		bHH:    make([]float64, rows),
		hidden: hidden,
	}
}

func constantWindow(v float64) [][]float64 {
	seq := make([][]float64, WindowFrames)
	for t := range seq {
		frame := make([]float64, FrameFeatures)
		for f := range frame {
			frame[f] = v
		}
		seq[t] = frame
	}
	return seq
}

func TestForwardZeroWeightsYieldsBias(t *testing.T) {
	bias := []float64{5.0, 0.1, 0.1}
	m := newTestClassifier(FrameFeatures, 4, 2, 3, 0, bias)

	logits := m.Forward(constantWindow(1.0))
	if len(logits) != 3 {
		t.Fatalf("expected 3 logits, got %d", len(logits))
	}
	for i, v := range logits {
		if v != bias[i] {
			t.Errorf("logit %d = %f, want %f", i, v, bias[i])
		}
	}
}

func TestForwardDeterministic(t *testing.T) {
	m := newTestClassifier(FrameFeatures, 3, 2, 4, 0.01, []float64{0.5, -0.5, 0.25, 0})
	// Make the projection sensitive to the hidden state.
	for r := range m.out.weight {
		for i := range m.out.weight[r] {
			m.out.weight[r][i] = float64(r-i) * 0.1
		}
	}

	seq := constantWindow(0.5)
	first := m.Forward(seq)
	second := m.Forward(seq)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("logit %d differs across calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestForwardFinite(t *testing.T) {
	m := newTestClassifier(FrameFeatures, 3, 2, 2, 0.05, []float64{1, -1})
	for r := range m.out.weight {
		for i := range m.out.weight[r] {
			m.out.weight[r][i] = 0.3
		}
	}

	logits := m.Forward(constantWindow(100.0))
	for i, v := range logits {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("logit %d is not finite: %v", i, v)
		}
	}
}

func TestForwardDirectionSensitive(t *testing.T) {
	m := newTestClassifier(2, 2, 1, 2, 0.4, []float64{0, 0})
	for r := range m.out.weight {
		for i := range m.out.weight[r] {
			m.out.weight[r][i] = float64(i+1) * 0.2
		}
	}

	rising := [][]float64{{0, 0}, {0.5, 0.5}, {1, 1}}
	falling := [][]float64{{1, 1}, {0.5, 0.5}, {0, 0}}
	a := m.Forward(rising)
	b := m.Forward(falling)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
	}
	if same {
		t.Error("expected different logits for reversed sequences")
	}
}

func TestNumClasses(t *testing.T) {
	m := newTestClassifier(FrameFeatures, 2, 2, 7, 0, make([]float64, 7))
	if m.NumClasses() != 7 {
		t.Errorf("expected 7 classes, got %d", m.NumClasses())
	}
}
