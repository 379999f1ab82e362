package models

import "time"

// Evaluation is a stored evaluation row.
type Evaluation struct {
	ID              int64
	SubjectID       string
	SubjectName     string
	RaterID         string
	RaterName       string
	TotalScore      float64
	Period          string
	DimensionScores map[string]float64
	CreatedAt       time.Time
}
