package sign

import (
	"fmt"
	"log"
	"math"
)

// Result sentinels. Every request-time failure mode maps to one of these;
// the service never surfaces an error to its caller.
const (
	GestureLowConfidence = "..."
	GestureShapeError    = "Shape Error"
	GestureModelMissing  = "Error: Model Missing"
	GestureError         = "Error"
)

// ConfidenceThreshold is the minimum softmax probability required to report
// a label. Below it the low-confidence sentinel is returned instead, a
// precision-over-recall policy that avoids false gesture triggers.
const ConfidenceThreshold = 0.70

// epsilon guards standardization against features whose training-time
// standard deviation is numerically zero.
const epsilon = 1e-7

// Service wraps a Classifier with validation, normalization and confidence
// thresholding. It is built once at startup and is either Ready or
// Unavailable for the life of the process; all fields are immutable after
// construction, so a single Service may be shared across requests.
type Service struct {
	clf    Classifier
	labels []string
	mean   []float64
	std    []float64
	reason string
}

// New assembles a ready service from a classifier and its paired metadata.
// A class-count mismatch between the two yields an unavailable service
// rather than an error: the rest of the process keeps running.
func New(clf Classifier, meta *Metadata) *Service {
	if n := clf.NumClasses(); n != len(meta.Labels) {
		return Disabled(fmt.Sprintf("model has %d classes but vocabulary has %d", n, len(meta.Labels)))
	}
	return &Service{clf: clf, labels: meta.Labels, mean: meta.Mean, std: meta.Std}
}

// Disabled returns a service permanently stuck in the unavailable state.
func Disabled(reason string) *Service {
	return &Service{reason: reason}
}

// Load builds the service from the persisted weights and metadata
// artifacts. Load never fails: any configuration problem is logged once
// and the returned service answers every prediction with the model-missing
// sentinel. There is no retry.
func Load(modelPath, metaPath string) *Service {
	clf, err := LoadClassifier(modelPath)
	if err != nil {
		log.Printf("sign: disabled: %v", err)
		return Disabled(err.Error())
	}
	// A frame-width mismatch is a configuration error, not an inference
	// error: catch it here instead of letting every request panic.
	if clf.inputSize != FrameFeatures {
		reason := fmt.Sprintf("model expects %d features per frame, want %d", clf.inputSize, FrameFeatures)
		log.Printf("sign: disabled: %s", reason)
		return Disabled(reason)
	}
	meta, err := LoadMetadata(metaPath)
	if err != nil {
		log.Printf("sign: disabled: %v", err)
		return Disabled(err.Error())
	}
	svc := New(clf, meta)
	if !svc.Ready() {
		log.Printf("sign: disabled: %s", svc.reason)
	}
	return svc
}

// Ready reports whether the service can run inference.
func (s *Service) Ready() bool {
	return s.clf != nil
}

// Reason returns the startup failure description for an unavailable
// service, or "" when ready.
func (s *Service) Reason() string {
	return s.reason
}

// Predict classifies one flattened landmark window. The input must hold
// exactly WindowSize scalars; anything else is rejected before the
// classifier is touched. The returned string is either a vocabulary label
// or one of the sentinels.
func (s *Service) Predict(raw []float64) string {
	gesture, _ := s.PredictDetail(raw)
	return gesture
}

// PredictDetail is Predict plus the softmax confidence of the argmax
// class. Confidence is 0 for availability and validation failures.
func (s *Service) PredictDetail(raw []float64) (string, float64) {
	if !s.Ready() {
		return GestureModelMissing, 0
	}
	if len(raw) != WindowSize {
		return GestureShapeError, 0
	}
	return s.infer(raw)
}

// infer standardizes, runs the forward pass and applies the decision
// policy. A panic inside the numeric path is converted to the generic
// error sentinel so a malformed artifact can never take the process down
// mid-request.
func (s *Service) infer(raw []float64) (gesture string, conf float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sign: inference failure: %v", r)
			gesture, conf = GestureError, 0
		}
	}()

	seq := make([][]float64, WindowFrames)
	for t := 0; t < WindowFrames; t++ {
		frame := make([]float64, FrameFeatures)
		base := t * FrameFeatures
		for f := 0; f < FrameFeatures; f++ {
			frame[f] = (raw[base+f] - s.mean[f]) / (s.std[f] + epsilon)
		}
		seq[t] = frame
	}

	logits := s.clf.Forward(seq)
	idx, conf := confidence(logits)
	return s.decide(idx, conf), conf
}

// decide applies the thresholding policy: the label is reported only when
// conf >= ConfidenceThreshold, strictly-below fails.
func (s *Service) decide(idx int, conf float64) string {
	if conf < ConfidenceThreshold {
		return GestureLowConfidence
	}
	return s.labels[idx]
}

// confidence returns the argmax class and its softmax probability. Logits
// are shifted by their maximum before exponentiation to stay finite.
func confidence(logits []float64) (int, float64) {
	idx := 0
	max := logits[0]
	for i, v := range logits {
		if v > max {
			max = v
			idx = i
		}
	}
	var sum float64
	for _, v := range logits {
		sum += math.Exp(v - max)
	}
	return idx, 1.0 / sum
}
