package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	pb "github.com/godilite/review-calibration/api/v1"
	"github.com/godilite/review-calibration/internal/config"
	handler "github.com/godilite/review-calibration/internal/grpc"
	"github.com/godilite/review-calibration/internal/repository"
	"github.com/godilite/review-calibration/internal/service"
	"github.com/godilite/review-calibration/pkg/cache"
	dbbuilder "github.com/godilite/review-calibration/pkg/database"
	grpcsrv "github.com/godilite/review-calibration/pkg/grpc/server"
	"github.com/godilite/review-calibration/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// CacheKeyPrefix namespaces every cached response in Redis.
const CacheKeyPrefix = "calibration:"

type App struct {
	logger        *zap.Logger
	dbPool        *sql.DB
	cache         *cache.Cache
	grpcServer    *grpcsrv.Server
	metricsServer *http.Server
	metricsLis    net.Listener
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dbPool, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithSchema(repository.Schema),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	a := &App{logger: logger, dbPool: dbPool}

	// A nil interface, not a nil *cache.Cache, keeps the handlers uncached.
	var cacher handler.Cacher
	if cfg.RedisAddr != "" {
		cacheClient, err := cache.New(ctx,
			cache.WithAddress(cfg.RedisAddr),
			cache.WithKeyPrefix(CacheKeyPrefix),
		)
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		a.cache = cacheClient
		cacher = cacheClient
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Info("Cache disabled")
	}

	metricsManager := metrics.NewManager()

	evaluationRepo := repository.NewEvaluationRepository(dbPool)

	calibrationService := service.NewCalibrationService(evaluationRepo, logger.Named("calibration-service"),
		service.WithMetrics(metricsManager),
		service.WithReportConcurrency(cfg.ReportConcurrency),
	)

	grpcHandlers := handler.NewGRPCHandlers(calibrationService, cacher, logger, cfg.CacheTTL)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithRequestObserver(metricsManager),
	)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}
	a.grpcServer = grpcServer

	grpcServer.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterRaterCalibrationServer(s, grpcHandlers)
	})

	if cfg.MetricsAddr != "" {
		lis, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			_ = grpcServer.Shutdown(ctx)
			a.closeResources()
			return nil, fmt.Errorf("failed to listen for metrics on %s: %w", cfg.MetricsAddr, err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsManager.Handler())
		a.metricsLis = lis
		a.metricsServer = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return a, nil
}

// GRPCAddr returns the address the gRPC server listens on.
func (a *App) GRPCAddr() string {
	return a.grpcServer.Addr().String()
}

// MetricsAddr returns the metrics listen address, or "" when metrics are disabled.
func (a *App) MetricsAddr() string {
	if a.metricsLis == nil {
		return ""
	}
	return a.metricsLis.Addr().String()
}

// Start serves gRPC and metrics in the background.
func (a *App) Start() {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	if a.metricsServer != nil {
		go func() {
			a.logger.Info("metrics endpoint listening", zap.String("addr", a.metricsLis.Addr().String()))
			if err := a.metricsServer.Serve(a.metricsLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.logger.Info("application shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.Shutdown(ctx)
	_ = a.logger.Sync()
	return err
}

// Shutdown stops accepting requests, drains in-flight calls and releases
// the cache and database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
	}
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
	}
	a.closeResources()

	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("shutdown completed with errors", zap.Error(err))
		return err
	}
	a.logger.Info("graceful shutdown completed successfully")
	return nil
}

func (a *App) closeResources() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}
}
