package store

import "time"

// Prediction is one logged inference outcome, regardless of modality.
type Prediction struct {
	ID         string
	Modality   string
	Label      string
	Confidence float64
	CreatedAt  time.Time
}

// SavePrediction appends one row to the prediction log.
func (s *Store) SavePrediction(p *Prediction) error {
	_, err := s.db.Exec(
		`INSERT INTO predictions (id, modality, label, confidence) VALUES (?, ?, ?, ?)`,
		p.ID, p.Modality, p.Label, p.Confidence,
	)
	return err
}

// RecentPredictions returns up to limit rows, newest first.
func (s *Store) RecentPredictions(limit int) ([]*Prediction, error) {
	rows, err := s.db.Query(
		`SELECT id, modality, label, confidence, created_at
		 FROM predictions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Prediction
	for rows.Next() {
		p := &Prediction{}
		if err := rows.Scan(&p.ID, &p.Modality, &p.Label, &p.Confidence, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
