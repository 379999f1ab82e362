package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/godilite/review-calibration/internal/calibration"
	"github.com/godilite/review-calibration/internal/repository/models"
)

const (
	dbTimeout                 = 1 * time.Second
	defaultReportConcurrency  = 4
	periodLayout              = "2006-01"
	operationRaterStatistics  = "rater_statistics"
	operationGlobalStatistics = "global_statistics"
	operationNormalize        = "normalize"
	operationReport           = "report"
)

var (
	ErrNoEvaluations  = errors.New("no evaluations found")
	ErrStorageFailure = errors.New("storage failure")
	ErrInvalidPeriod  = errors.New("invalid period")
)

// CalibrationService loads evaluation records and runs the calibration engine
// over them.
type CalibrationService struct {
	storage     EvaluationRepository
	logger      *zap.Logger
	metrics     MetricsRecorder
	concurrency int
}

type Option func(*CalibrationService)

func WithMetrics(m MetricsRecorder) Option {
	return func(s *CalibrationService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithReportConcurrency bounds how many periods GetReportsByPeriod computes at once.
func WithReportConcurrency(n int) Option {
	return func(s *CalibrationService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewCalibrationService creates a new CalibrationService instance.
func NewCalibrationService(storage EvaluationRepository, logger *zap.Logger, opts ...Option) *CalibrationService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	s := &CalibrationService{
		storage:     storage,
		logger:      logger,
		metrics:     nopRecorder{},
		concurrency: defaultReportConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidatePeriod accepts "" (all periods) or a YYYY-MM token.
func ValidatePeriod(period string) error {
	if period == "" {
		return nil
	}
	if _, err := time.Parse(periodLayout, period); err != nil {
		return fmt.Errorf("%w: %q must be formatted YYYY-MM", ErrInvalidPeriod, period)
	}
	return nil
}

func (s *CalibrationService) loadRecords(ctx context.Context, period string) ([]calibration.EvaluationRecord, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.GetEvaluations(dbCtx, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoEvaluations
	}

	return toRecords(rows), nil
}

func toRecords(rows []models.Evaluation) []calibration.EvaluationRecord {
	out := make([]calibration.EvaluationRecord, len(rows))
	for i, r := range rows {
		out[i] = calibration.EvaluationRecord{
			SubjectID:       r.SubjectID,
			SubjectName:     r.SubjectName,
			RaterID:         r.RaterID,
			RaterName:       r.RaterName,
			TotalScore:      r.TotalScore,
			Period:          r.Period,
			DimensionScores: r.DimensionScores,
		}
	}
	return out
}

// observe wraps one operation with timing, error counting and logging.
// Empty periods and malformed period tokens are outcomes of the request, not
// failures, and are left out of the error count.
func (s *CalibrationService) observe(operation, period string, fn func() error) error {
	started := time.Now()
	if err := fn(); err != nil {
		if !errors.Is(err, ErrNoEvaluations) && !errors.Is(err, ErrInvalidPeriod) {
			s.metrics.RecordError(operation)
		}
		return err
	}
	elapsed := time.Since(started)
	s.metrics.ObserveComputation(operation, elapsed)
	s.logger.Debug("calibration computed",
		zap.String("operation", operation),
		zap.String("period", period),
		zap.Duration("elapsed", elapsed))
	return nil
}

// GetRaterStatistics returns per-rater statistics, strictest rater first.
func (s *CalibrationService) GetRaterStatistics(ctx context.Context, period string) ([]calibration.RaterStatistics, error) {
	var stats []calibration.RaterStatistics
	err := s.observe(operationRaterStatistics, period, func() error {
		records, err := s.loadRecords(ctx, period)
		if err != nil {
			return err
		}
		stats = calibration.ComputeRaterStatistics(records)
		return nil
	})
	return stats, err
}

// GetGlobalStatistics returns the reference distribution for the period.
func (s *CalibrationService) GetGlobalStatistics(ctx context.Context, period string) (calibration.GlobalStatistics, error) {
	var global calibration.GlobalStatistics
	err := s.observe(operationGlobalStatistics, period, func() error {
		records, err := s.loadRecords(ctx, period)
		if err != nil {
			return err
		}
		global = calibration.ComputeGlobalStatistics(records)
		return nil
	})
	return global, err
}

// GetNormalizedScores returns every record of the period with its calibrated score.
func (s *CalibrationService) GetNormalizedScores(ctx context.Context, period string) ([]calibration.NormalizedEvaluation, error) {
	var normalized []calibration.NormalizedEvaluation
	err := s.observe(operationNormalize, period, func() error {
		records, err := s.loadRecords(ctx, period)
		if err != nil {
			return err
		}
		normalized = calibration.NormalizeAll(records)
		s.metrics.AddRecordsNormalized(len(normalized))
		return nil
	})
	return normalized, err
}

// GetNormalizationReport returns the calibration summary for the period.
func (s *CalibrationService) GetNormalizationReport(ctx context.Context, period string) (calibration.NormalizationReport, error) {
	var report calibration.NormalizationReport
	err := s.observe(operationReport, period, func() error {
		records, err := s.loadRecords(ctx, period)
		if err != nil {
			return err
		}
		report = calibration.GenerateReport(records)
		s.metrics.SetRatersNeedingAdjustment(period, report.NeedsAdjustmentCount)
		return nil
	})
	if err != nil {
		return calibration.NormalizationReport{}, err
	}

	s.logger.Info("generated normalization report",
		zap.String("period", period),
		zap.Int("total_managers", report.TotalManagers),
		zap.Int("needs_adjustment", report.NeedsAdjustmentCount))

	return report, nil
}

// GetReportsByPeriod computes one report per period concurrently. An empty
// periods slice means every stored period. Periods without evaluations are
// skipped; the result is ordered like periods.
func (s *CalibrationService) GetReportsByPeriod(ctx context.Context, periods []string) ([]PeriodReport, error) {
	if len(periods) == 0 {
		dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
		stored, err := s.storage.ListPeriods(dbCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}
		periods = stored
	}
	for _, p := range periods {
		if p == "" {
			return nil, fmt.Errorf("%w: empty period in list", ErrInvalidPeriod)
		}
		if err := ValidatePeriod(p); err != nil {
			return nil, err
		}
	}

	results := make([]*PeriodReport, len(periods))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, period := range periods {
		g.Go(func() error {
			report, err := s.GetNormalizationReport(gctx, period)
			if errors.Is(err, ErrNoEvaluations) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("period %s: %w", period, err)
			}
			results[i] = &PeriodReport{Period: period, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]PeriodReport, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoEvaluations
	}
	return out, nil
}
