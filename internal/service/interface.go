package service

import (
	"context"
	"time"

	"github.com/godilite/review-calibration/internal/repository/models"
)

// EvaluationRepository defines the storage operations the service needs.
type EvaluationRepository interface {
	GetEvaluations(ctx context.Context, period string) ([]models.Evaluation, error)
	ListPeriods(ctx context.Context) ([]string, error)
}

// MetricsRecorder receives operational measurements from the service.
type MetricsRecorder interface {
	ObserveComputation(operation string, d time.Duration)
	AddRecordsNormalized(n int)
	SetRatersNeedingAdjustment(period string, n int)
	RecordError(operation string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveComputation(string, time.Duration) {}
func (nopRecorder) AddRecordsNormalized(int)                 {}
func (nopRecorder) SetRatersNeedingAdjustment(string, int)   {}
func (nopRecorder) RecordError(string)                       {}
