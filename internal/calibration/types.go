package calibration

// EvaluationRecord is one rater's raw score for one subject in one period.
type EvaluationRecord struct {
	SubjectID       string
	SubjectName     string
	RaterID         string
	RaterName       string
	TotalScore      float64
	Period          string
	DimensionScores map[string]float64
}

// RaterStatistics summarises the scores a single rater handed out.
type RaterStatistics struct {
	RaterID   string
	RaterName string
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	Count     int
}

// GlobalStatistics is the reference distribution over every record.
type GlobalStatistics struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Count  int
}

type NormalizedScore struct {
	OriginalScore   float64
	NormalizedScore float64
	RaterID         string
	RaterName       string
	Adjustment      float64
}

// NormalizedEvaluation is an input record together with its calibrated score.
type NormalizedEvaluation struct {
	EvaluationRecord
	Normalized NormalizedScore
}

type RaterReport struct {
	RaterStatistics
	Classification   StrictnessClassification
	AdjustmentNeeded bool
}

type NormalizationReport struct {
	Global               GlobalStatistics
	Raters               []RaterReport
	NeedsAdjustmentCount int
	TotalManagers        int
}
