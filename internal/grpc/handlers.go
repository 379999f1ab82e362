package grpc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/godilite/review-calibration/api/v1"
	"github.com/godilite/review-calibration/internal/calibration"
	"github.com/godilite/review-calibration/internal/service"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
	allPeriodsKey        = "all"
)

type CacheKeyType string

const (
	cacheKeyRaterStatistics     CacheKeyType = "grpc:rater_statistics"
	cacheKeyGlobalStatistics    CacheKeyType = "grpc:global_statistics"
	cacheKeyNormalizedScores    CacheKeyType = "grpc:normalized_scores"
	cacheKeyNormalizationReport CacheKeyType = "grpc:normalization_report"
	cacheKeyPeriodReports       CacheKeyType = "grpc:period_reports"
)

type GRPCHandlers struct {
	pb.UnimplementedRaterCalibrationServer
	calibration CalibrationService
	cache       Cacher
	logger      *zap.Logger
	sfGroup     singleflight.Group
	cacheTTL    time.Duration
	now         func() time.Time
}

// NewGRPCHandlers initializes the gRPC handlers. cache may be nil to disable caching.
func NewGRPCHandlers(calibration CalibrationService, cache Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if calibration == nil {
		panic("nil CalibrationService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		calibration: calibration,
		cache:       cache,
		logger:      logger.Named("grpc-handler"),
		cacheTTL:    ttl,
		now:         time.Now,
	}
}

func (s *GRPCHandlers) parseAndValidate(req *pb.PeriodRequest) (string, error) {
	period := strings.TrimSpace(req.GetPeriod())
	if err := service.ValidatePeriod(period); err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return period, nil
}

func normalizeKey(prefix CacheKeyType, periods ...string) string {
	if len(periods) == 0 || (len(periods) == 1 && periods[0] == "") {
		return fmt.Sprintf("%s:%s", prefix, allPeriodsKey)
	}
	return fmt.Sprintf("%s:%s", prefix, strings.Join(periods, ","))
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrNoEvaluations):
		s.logger.Info("no evaluations found", zap.String("op", op))
		return status.Error(codes.NotFound, "no evaluations found for the given period")
	case errors.Is(err, service.ErrInvalidPeriod):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) GetRaterStatistics(ctx context.Context, req *pb.PeriodRequest) (*pb.RaterStatisticsResponse, error) {
	period, err := s.parseAndValidate(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyRaterStatistics, period)

	resp, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (*pb.RaterStatisticsResponse, error) {
		stats, err := s.calibration.GetRaterStatistics(fetchCtx, period)
		if err != nil {
			return nil, err
		}
		return &pb.RaterStatisticsResponse{Raters: mapRaterStatistics(stats)}, nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetRaterStatistics", err)
	}
	return resp, nil
}

func (s *GRPCHandlers) GetGlobalStatistics(ctx context.Context, req *pb.PeriodRequest) (*pb.GlobalStatisticsResponse, error) {
	period, err := s.parseAndValidate(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyGlobalStatistics, period)

	resp, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (*pb.GlobalStatisticsResponse, error) {
		global, err := s.calibration.GetGlobalStatistics(fetchCtx, period)
		if err != nil {
			return nil, err
		}
		return mapGlobalStatistics(global), nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetGlobalStatistics", err)
	}
	return resp, nil
}

func (s *GRPCHandlers) GetNormalizedScores(ctx context.Context, req *pb.PeriodRequest) (*pb.NormalizedScoresResponse, error) {
	period, err := s.parseAndValidate(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyNormalizedScores, period)

	resp, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (*pb.NormalizedScoresResponse, error) {
		scores, err := s.calibration.GetNormalizedScores(fetchCtx, period)
		if err != nil {
			return nil, err
		}
		return &pb.NormalizedScoresResponse{Scores: mapNormalizedScores(scores)}, nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetNormalizedScores", err)
	}
	return resp, nil
}

func (s *GRPCHandlers) GetNormalizationReport(ctx context.Context, req *pb.PeriodRequest) (*pb.NormalizationReportResponse, error) {
	period, err := s.parseAndValidate(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyNormalizationReport, period)

	resp, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (*pb.NormalizationReportResponse, error) {
		report, err := s.calibration.GetNormalizationReport(fetchCtx, period)
		if err != nil {
			return nil, err
		}
		return s.mapReport(period, report), nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetNormalizationReport", err)
	}
	return resp, nil
}

func (s *GRPCHandlers) GetPeriodReports(ctx context.Context, req *pb.PeriodsRequest) (*pb.PeriodReportsResponse, error) {
	periods := make([]string, 0, len(req.GetPeriods()))
	for _, p := range req.GetPeriods() {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, status.Error(codes.InvalidArgument, "periods must not contain empty entries")
		}
		if err := service.ValidatePeriod(p); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		periods = append(periods, p)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	keyParts := append([]string(nil), periods...)
	sort.Strings(keyParts)
	cacheKey := normalizeKey(cacheKeyPeriodReports, keyParts...)

	resp, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (*pb.PeriodReportsResponse, error) {
		reports, err := s.calibration.GetReportsByPeriod(fetchCtx, periods)
		if err != nil {
			return nil, err
		}
		out := make([]*pb.NormalizationReportResponse, len(reports))
		for i, r := range reports {
			out[i] = s.mapReport(r.Period, r.Report)
		}
		return &pb.PeriodReportsResponse{Reports: out}, nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetPeriodReports", err)
	}
	return resp, nil
}

func mapRaterStatistic(r calibration.RaterStatistics) *pb.RaterStatistics {
	return &pb.RaterStatistics{
		RaterId:   r.RaterID,
		RaterName: r.RaterName,
		Mean:      r.Mean,
		StdDev:    r.StdDev,
		Min:       r.Min,
		Max:       r.Max,
		Count:     int64(r.Count),
	}
}

func mapRaterStatistics(stats []calibration.RaterStatistics) []*pb.RaterStatistics {
	out := make([]*pb.RaterStatistics, len(stats))
	for i, r := range stats {
		out[i] = mapRaterStatistic(r)
	}
	return out
}

func mapGlobalStatistics(g calibration.GlobalStatistics) *pb.GlobalStatisticsResponse {
	return &pb.GlobalStatisticsResponse{
		Mean:   g.Mean,
		StdDev: g.StdDev,
		Min:    g.Min,
		Max:    g.Max,
		Count:  int64(g.Count),
	}
}

func mapNormalizedScores(scores []calibration.NormalizedEvaluation) []*pb.NormalizedScore {
	out := make([]*pb.NormalizedScore, len(scores))
	for i, e := range scores {
		out[i] = &pb.NormalizedScore{
			SubjectId:       e.SubjectID,
			SubjectName:     e.SubjectName,
			RaterId:         e.Normalized.RaterID,
			RaterName:       e.Normalized.RaterName,
			Period:          e.Period,
			OriginalScore:   e.Normalized.OriginalScore,
			NormalizedScore: e.Normalized.NormalizedScore,
			Adjustment:      e.Normalized.Adjustment,
			DimensionScores: e.DimensionScores,
		}
	}
	return out
}

func (s *GRPCHandlers) mapReport(period string, report calibration.NormalizationReport) *pb.NormalizationReportResponse {
	raters := make([]*pb.RaterReport, len(report.Raters))
	for i, r := range report.Raters {
		raters[i] = &pb.RaterReport{
			Statistics:       mapRaterStatistic(r.RaterStatistics),
			Strictness:       r.Classification.Level.String(),
			Label:            r.Classification.Label,
			Color:            r.Classification.Color,
			AdjustmentNeeded: r.AdjustmentNeeded,
		}
	}
	return &pb.NormalizationReportResponse{
		Period:               period,
		Global:               mapGlobalStatistics(report.Global),
		Raters:               raters,
		NeedsAdjustmentCount: int64(report.NeedsAdjustmentCount),
		TotalManagers:        int64(report.TotalManagers),
		GeneratedAt:          timestamppb.New(s.now()),
	}
}
