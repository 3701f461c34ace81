package handlers

import (
	"log"

	"github.com/sensemesh/ai-engine/internal/store"

	"github.com/google/uuid"
)

// record appends a prediction to the history log. Logging is best-effort:
// a storage failure must never fail the request that produced the result.
func record(st *store.Store, modality, label string, confidence float64) {
	if st == nil {
		return
	}
	p := &store.Prediction{
		ID:         uuid.NewString(),
		Modality:   modality,
		Label:      label,
		Confidence: confidence,
	}
	if err := st.SavePrediction(p); err != nil {
		log.Printf("history: %v", err)
	}
}
