package mocks

import (
	"context"
	"errors"

	"github.com/godilite/review-calibration/internal/calibration"
	"github.com/godilite/review-calibration/internal/service"
)

// MockCalibrationService is a function-based mock of the handler's
// CalibrationService dependency.
type MockCalibrationService struct {
	GetRaterStatisticsFunc     func(ctx context.Context, period string) ([]calibration.RaterStatistics, error)
	GetGlobalStatisticsFunc    func(ctx context.Context, period string) (calibration.GlobalStatistics, error)
	GetNormalizedScoresFunc    func(ctx context.Context, period string) ([]calibration.NormalizedEvaluation, error)
	GetNormalizationReportFunc func(ctx context.Context, period string) (calibration.NormalizationReport, error)
	GetReportsByPeriodFunc     func(ctx context.Context, periods []string) ([]service.PeriodReport, error)
}

func (m *MockCalibrationService) GetRaterStatistics(ctx context.Context, period string) ([]calibration.RaterStatistics, error) {
	if m.GetRaterStatisticsFunc != nil {
		return m.GetRaterStatisticsFunc(ctx, period)
	}
	return nil, errors.New("GetRaterStatisticsFunc not implemented")
}

func (m *MockCalibrationService) GetGlobalStatistics(ctx context.Context, period string) (calibration.GlobalStatistics, error) {
	if m.GetGlobalStatisticsFunc != nil {
		return m.GetGlobalStatisticsFunc(ctx, period)
	}
	return calibration.GlobalStatistics{}, errors.New("GetGlobalStatisticsFunc not implemented")
}

func (m *MockCalibrationService) GetNormalizedScores(ctx context.Context, period string) ([]calibration.NormalizedEvaluation, error) {
	if m.GetNormalizedScoresFunc != nil {
		return m.GetNormalizedScoresFunc(ctx, period)
	}
	return nil, errors.New("GetNormalizedScoresFunc not implemented")
}

func (m *MockCalibrationService) GetNormalizationReport(ctx context.Context, period string) (calibration.NormalizationReport, error) {
	if m.GetNormalizationReportFunc != nil {
		return m.GetNormalizationReportFunc(ctx, period)
	}
	return calibration.NormalizationReport{}, errors.New("GetNormalizationReportFunc not implemented")
}

func (m *MockCalibrationService) GetReportsByPeriod(ctx context.Context, periods []string) ([]service.PeriodReport, error) {
	if m.GetReportsByPeriodFunc != nil {
		return m.GetReportsByPeriodFunc(ctx, periods)
	}
	return nil, errors.New("GetReportsByPeriodFunc not implemented")
}
