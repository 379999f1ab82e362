package grpc

import (
	"context"
	"time"

	"github.com/godilite/review-calibration/internal/calibration"
	"github.com/godilite/review-calibration/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type CalibrationService interface {
	GetRaterStatistics(ctx context.Context, period string) ([]calibration.RaterStatistics, error)
	GetGlobalStatistics(ctx context.Context, period string) (calibration.GlobalStatistics, error)
	GetNormalizedScores(ctx context.Context, period string) ([]calibration.NormalizedEvaluation, error)
	GetNormalizationReport(ctx context.Context, period string) (calibration.NormalizationReport, error)
	GetReportsByPeriod(ctx context.Context, periods []string) ([]service.PeriodReport, error)
}
