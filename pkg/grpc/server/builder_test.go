package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestNewRejectsInvalidPort(t *testing.T) {
	for _, port := range []int{-1, 65536} {
		_, err := New(WithPort(port))
		assert.ErrorContains(t, err, "out of range", "port %d", port)
	}
}

func TestNewBindsRequestedHost(t *testing.T) {
	server, err := New(WithHost("127.0.0.1"), WithPort(0), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer func() { _ = server.Shutdown(context.Background()) }()

	tcp, ok := server.Addr().(*net.TCPAddr)
	require.True(t, ok)
	assert.True(t, tcp.IP.IsLoopback())
	assert.NotZero(t, tcp.Port)
}

func TestNewRejectsBusyPort(t *testing.T) {
	first, err := New(WithHost("127.0.0.1"), WithPort(0))
	require.NoError(t, err)
	defer func() { _ = first.Shutdown(context.Background()) }()

	port := first.Addr().(*net.TCPAddr).Port
	_, err = New(WithHost("127.0.0.1"), WithPort(port))
	assert.ErrorContains(t, err, "listen on")
}

func TestShutdownMarksServicesNotServing(t *testing.T) {
	server, err := New(WithHost("127.0.0.1"), WithPort(0), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	server.RegisterServiceWithHealth("calibration.test", func(*grpc.Server) {})

	ctx := context.Background()
	resp, err := server.healthServer.Check(ctx, &healthpb.HealthCheckRequest{Service: "calibration.test"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(shutdownCtx))

	for _, name := range []string{"", "calibration.test"} {
		resp, err := server.healthServer.Check(ctx, &healthpb.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status, "service %q", name)
	}
}
