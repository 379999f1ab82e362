package service

import "github.com/godilite/review-calibration/internal/calibration"

// PeriodReport pairs a reporting period with its calibration report.
type PeriodReport struct {
	Period string
	Report calibration.NormalizationReport
}
