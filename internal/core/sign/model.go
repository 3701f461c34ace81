// Package sign implements sign-language gesture recognition from pose
// landmark sequences: a bidirectional LSTM sequence classifier and the
// inference service that validates, normalizes and thresholds its output.
package sign

import "math"

const (
	// WindowFrames is the number of landmark frames in one prediction window.
	WindowFrames = 30
	// FrameFeatures is the number of flattened keypoint coordinates per frame.
	FrameFeatures = 150
	// WindowSize is the total scalar count of one flattened window.
	WindowSize = WindowFrames * FrameFeatures
)

// Classifier maps a landmark window to raw class scores. Implementations
// must be safe for concurrent use and free of randomness at inference time.
type Classifier interface {
	// Forward consumes a sequence of WindowFrames feature vectors and
	// returns one logit per gesture class. No softmax is applied.
	Forward(seq [][]float64) []float64
	// NumClasses reports the width of the output layer.
	NumClasses() int
}

// SequenceClassifier is a stacked bidirectional LSTM encoder followed by a
// linear projection of the final time step's combined hidden state.
type SequenceClassifier struct {
	layers    []biLayer
	out       dense
	inputSize int // feature width of the first layer, from the artifact header
}

type biLayer struct {
	fwd lstmCell
	bwd lstmCell
}

// lstmCell holds the learned parameters for one LSTM direction. Weight
// rows are laid out as four stacked gate blocks in i, f, g, o order.
type lstmCell struct {
	wIH    [][]float64 // 4H x inputSize
	wHH    [][]float64 // 4H x H
	bIH    []float64
	bHH    []float64
	hidden int
}

type dense struct {
	weight [][]float64 // classes x features
	bias   []float64
}

// Forward runs the full encoder over seq and projects the final combined
// hidden state to logits. Dropout between layers exists only at training
// time, so the inference path is fully deterministic.
func (m *SequenceClassifier) Forward(seq [][]float64) []float64 {
	input := seq
	for _, layer := range m.layers {
		input = layer.run(input)
	}
	final := input[len(input)-1]
	return m.out.apply(final)
}

// NumClasses reports the width of the output projection.
func (m *SequenceClassifier) NumClasses() int {
	return len(m.out.bias)
}

// run processes the sequence in both directions and concatenates the
// per-time-step hidden states, forward half first.
func (l *biLayer) run(seq [][]float64) [][]float64 {
	n := len(seq)
	fwd := make([][]float64, n)
	bwd := make([][]float64, n)

	h := make([]float64, l.fwd.hidden)
	c := make([]float64, l.fwd.hidden)
	for t := 0; t < n; t++ {
		h, c = l.fwd.step(seq[t], h, c)
		fwd[t] = h
	}

	h = make([]float64, l.bwd.hidden)
	c = make([]float64, l.bwd.hidden)
	for t := n - 1; t >= 0; t-- {
		h, c = l.bwd.step(seq[t], h, c)
		bwd[t] = h
	}

	out := make([][]float64, n)
	for t := 0; t < n; t++ {
		combined := make([]float64, 0, l.fwd.hidden+l.bwd.hidden)
		combined = append(combined, fwd[t]...)
		combined = append(combined, bwd[t]...)
		out[t] = combined
	}
	return out
}

// step advances the cell by one time step and returns the new hidden and
// cell states.
func (c *lstmCell) step(x, hPrev, cPrev []float64) ([]float64, []float64) {
	hSize := c.hidden
	gates := make([]float64, 4*hSize)
	for row := range gates {
		sum := c.bIH[row] + c.bHH[row]
		wx := c.wIH[row]
		for i, v := range x {
			sum += wx[i] * v
		}
		wh := c.wHH[row]
		for i, v := range hPrev {
			sum += wh[i] * v
		}
		gates[row] = sum
	}

	hNext := make([]float64, hSize)
	cNext := make([]float64, hSize)
	for i := 0; i < hSize; i++ {
		in := sigmoid(gates[i])
		forget := sigmoid(gates[hSize+i])
		cand := math.Tanh(gates[2*hSize+i])
		outGate := sigmoid(gates[3*hSize+i])
		cNext[i] = forget*cPrev[i] + in*cand
		hNext[i] = outGate * math.Tanh(cNext[i])
	}
	return hNext, cNext
}

func (d *dense) apply(x []float64) []float64 {
	out := make([]float64, len(d.bias))
	for row := range out {
		sum := d.bias[row]
		w := d.weight[row]
		for i, v := range x {
			sum += w[i] * v
		}
		out[row] = sum
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
