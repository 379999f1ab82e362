// Package metrics exposes Prometheus metrics for the calibration service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the calibration metrics and the registry they live on.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	computations            *prometheus.CounterVec
	computationDuration     *prometheus.HistogramVec
	recordsNormalized       prometheus.Counter
	ratersNeedingAdjustment *prometheus.GaugeVec
	errors                  *prometheus.CounterVec
	grpcRequests            *prometheus.CounterVec
}

// NewManager creates a Manager. Without WithRegistry a fresh registry that
// also carries the Go runtime collectors is used.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "calibration",
		subsystem:        "engine",
		histogramBuckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.computations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "computations_total",
		Help:      "Number of calibration computations by operation",
	}, []string{"operation"})

	m.computationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "computation_duration_seconds",
		Help:      "Time spent fetching and calibrating records by operation",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.recordsNormalized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_normalized_total",
		Help:      "Number of evaluation records that received a calibrated score",
	})

	m.ratersNeedingAdjustment = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "raters_needing_adjustment",
		Help:      "Raters classified strict or lenient in the latest report per period",
	}, []string{"period"})

	m.errors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Failed calibration operations",
	}, []string{"operation"})

	m.grpcRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "gRPC requests by method and status code",
	}, []string{"method", "code"})
}

// ObserveComputation records one completed operation and its duration.
func (m *Manager) ObserveComputation(operation string, d time.Duration) {
	m.computations.WithLabelValues(operation).Inc()
	m.computationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Manager) AddRecordsNormalized(n int) {
	if n > 0 {
		m.recordsNormalized.Add(float64(n))
	}
}

func (m *Manager) SetRatersNeedingAdjustment(period string, n int) {
	if period == "" {
		period = "all"
	}
	m.ratersNeedingAdjustment.WithLabelValues(period).Set(float64(n))
}

func (m *Manager) RecordError(operation string) {
	m.errors.WithLabelValues(operation).Inc()
}

// ObserveRequest counts a finished gRPC call.
func (m *Manager) ObserveRequest(method, code string) {
	m.grpcRequests.WithLabelValues(method, code).Inc()
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
