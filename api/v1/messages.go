package v1

import "google.golang.org/protobuf/types/known/timestamppb"

type PeriodRequest struct {
	Period string `json:"period"`
}

func (r *PeriodRequest) GetPeriod() string {
	if r == nil {
		return ""
	}
	return r.Period
}

type PeriodsRequest struct {
	Periods []string `json:"periods"`
}

func (r *PeriodsRequest) GetPeriods() []string {
	if r == nil {
		return nil
	}
	return r.Periods
}

type RaterStatistics struct {
	RaterId   string  `json:"rater_id"`
	RaterName string  `json:"rater_name"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Count     int64   `json:"count"`
}

type RaterStatisticsResponse struct {
	Raters []*RaterStatistics `json:"raters"`
}

type GlobalStatisticsResponse struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int64   `json:"count"`
}

type NormalizedScore struct {
	SubjectId       string             `json:"subject_id"`
	SubjectName     string             `json:"subject_name"`
	RaterId         string             `json:"rater_id"`
	RaterName       string             `json:"rater_name"`
	Period          string             `json:"period"`
	OriginalScore   float64            `json:"original_score"`
	NormalizedScore float64            `json:"normalized_score"`
	Adjustment      float64            `json:"adjustment"`
	DimensionScores map[string]float64 `json:"dimension_scores,omitempty"`
}

type NormalizedScoresResponse struct {
	Scores []*NormalizedScore `json:"scores"`
}

type RaterReport struct {
	Statistics       *RaterStatistics `json:"statistics"`
	Strictness       string           `json:"strictness"`
	Label            string           `json:"label"`
	Color            string           `json:"color"`
	AdjustmentNeeded bool             `json:"adjustment_needed"`
}

type NormalizationReportResponse struct {
	Period               string                    `json:"period"`
	Global               *GlobalStatisticsResponse `json:"global"`
	Raters               []*RaterReport            `json:"raters"`
	NeedsAdjustmentCount int64                     `json:"needs_adjustment_count"`
	TotalManagers        int64                     `json:"total_managers"`
	GeneratedAt          *timestamppb.Timestamp    `json:"generated_at"`
}

type PeriodReportsResponse struct {
	Reports []*NormalizationReportResponse `json:"reports"`
}
