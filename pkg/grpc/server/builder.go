package server

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const defaultPort = 50051

type Option func(*Options)

// Options collects the settings New applies. The zero port asks the kernel
// for a free one.
type Options struct {
	host              string
	port              int
	logger            *zap.Logger
	reflection        bool
	enableLogging     bool
	observer          RequestObserver
	unaryInterceptors []grpc.UnaryServerInterceptor
}

// WithHost binds the listener to one interface, e.g. "127.0.0.1". Empty means all.
func WithHost(host string) Option {
	return func(o *Options) { o.host = host }
}

func WithPort(port int) Option {
	return func(o *Options) { o.port = port }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithReflection exposes the server reflection service, for grpcurl and friends.
func WithReflection(enabled bool) Option {
	return func(o *Options) { o.reflection = enabled }
}

// WithLogging installs LoggingInterceptor as the outermost interceptor.
func WithLogging(enabled bool) Option {
	return func(o *Options) { o.enableLogging = enabled }
}

// WithRequestObserver installs MetricsInterceptor after logging and before any
// custom interceptors.
func WithRequestObserver(observer RequestObserver) Option {
	return func(o *Options) { o.observer = observer }
}

func WithUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) Option {
	return func(o *Options) {
		o.unaryInterceptors = append(o.unaryInterceptors, interceptors...)
	}
}

// Server is a gRPC server with a health service whose per-service status
// follows registration and shutdown.
type Server struct {
	grpcServer   *grpc.Server
	lis          net.Listener
	logger       *zap.Logger
	healthServer *health.Server

	mu       sync.Mutex
	services []string
}

// New listens on the configured address and builds the server. Services are
// attached with RegisterServiceWithHealth before Start.
func New(opts ...Option) (*Server, error) {
	options := &Options{port: defaultPort}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}

	if options.port < 0 || options.port > 65535 {
		return nil, fmt.Errorf("grpc port %d out of range [0, 65535]", options.port)
	}

	addr := net.JoinHostPort(options.host, strconv.Itoa(options.port))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	var serverOpts []grpc.ServerOption
	if chain := interceptorChain(options); len(chain) > 0 {
		serverOpts = append(serverOpts, grpc.ChainUnaryInterceptor(chain...))
	}
	grpcServer := grpc.NewServer(serverOpts...)

	if options.reflection {
		reflection.Register(grpcServer)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpcServer:   grpcServer,
		lis:          lis,
		logger:       options.logger.Named("grpc-server"),
		healthServer: healthServer,
	}, nil
}

func interceptorChain(options *Options) []grpc.UnaryServerInterceptor {
	var chain []grpc.UnaryServerInterceptor
	if options.enableLogging {
		chain = append(chain, LoggingInterceptor(options.logger.Named("grpc-access")))
	}
	if options.observer != nil {
		chain = append(chain, MetricsInterceptor(options.observer))
	}
	return append(chain, options.unaryInterceptors...)
}

// RegisterServiceWithHealth registers a service and reports it SERVING under
// serviceName until Shutdown.
func (s *Server) RegisterServiceWithHealth(serviceName string, registerFunc func(s *grpc.Server)) {
	registerFunc(s.grpcServer)
	if serviceName == "" {
		return
	}

	s.mu.Lock()
	s.services = append(s.services, serviceName)
	s.mu.Unlock()

	s.healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("registered service with health check", zap.String("service", serviceName))
}

// Start serves in a background goroutine.
func (s *Server) Start() {
	s.logger.Info("gRPC server listening", zap.String("addr", s.lis.Addr().String()))

	go func() {
		if err := s.grpcServer.Serve(s.lis); err != nil {
			s.logger.Error("gRPC server failed", zap.Error(err))
		}
	}()
}

// Shutdown marks every service NOT_SERVING, then drains in-flight calls until
// ctx expires, at which point remaining calls are cut off.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gRPC server shutting down")

	s.mu.Lock()
	services := append([]string{""}, s.services...)
	s.mu.Unlock()
	for _, name := range services {
		s.healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	// Serve closes the listener itself; this covers a server that never started.
	defer func() { _ = s.lis.Close() }()

	select {
	case <-done:
		s.logger.Info("gRPC server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("drain deadline reached, stopping gRPC server")
		s.grpcServer.Stop()
		return ctx.Err()
	}
}

// Addr returns the bound listener address, useful after WithPort(0).
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
