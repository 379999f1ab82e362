package mocks

import (
	"context"
	"errors"

	"github.com/godilite/review-calibration/internal/repository/models"
)

// MockEvaluationRepository is a mock implementation of the EvaluationRepository interface
// for testing the service layer.
type MockEvaluationRepository struct {
	GetEvaluationsFunc func(ctx context.Context, period string) ([]models.Evaluation, error)
	ListPeriodsFunc    func(ctx context.Context) ([]string, error)
}

// GetEvaluations implements the EvaluationRepository interface
func (m *MockEvaluationRepository) GetEvaluations(ctx context.Context, period string) ([]models.Evaluation, error) {
	if m.GetEvaluationsFunc != nil {
		return m.GetEvaluationsFunc(ctx, period)
	}
	return nil, errors.New("GetEvaluationsFunc not implemented")
}

// ListPeriods implements the EvaluationRepository interface
func (m *MockEvaluationRepository) ListPeriods(ctx context.Context) ([]string, error) {
	if m.ListPeriodsFunc != nil {
		return m.ListPeriodsFunc(ctx)
	}
	return nil, errors.New("ListPeriodsFunc not implemented")
}
