// Package observability provides Prometheus metrics for the simulator.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	RunStatus_Complete  = "complete"
	RunStatus_Cancelled = "cancelled"
	RunStatus_Error     = "error"
)

// Metrics holds all Prometheus metrics for the application. every Record
// method is a no-op on a nil receiver so callers can skip wiring it
type Metrics struct {
	registry *prometheus.Registry

	// simulation metrics
	SimulationRunsTotal *prometheus.CounterVec
	SimulationDuration  *prometheus.HistogramVec
	TrialsSimulated     prometheus.Counter

	// cache metrics
	CacheLookups *prometheus.CounterVec

	// api metrics
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers everything on a fresh registry, so multiple
// instances (ie in tests) never collide
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "recallvantage"
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		SimulationRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Total number of simulation runs by mode and status",
		}, []string{"mode", "status"}),
		SimulationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Simulation run duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"mode"}),
		TrialsSimulated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "trials_total",
			Help:      "Total number of trials simulated",
		}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Result cache lookups by outcome",
		}, []string{"outcome"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordSimulationRun records a finished run. trials is what actually
// completed, which is less than requested for a cancelled run
func (m *Metrics) RecordSimulationRun(mode, status string, trials int, duration time.Duration) {
	if m == nil {
		return
	}
	m.SimulationRunsTotal.WithLabelValues(mode, status).Inc()
	m.SimulationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if trials > 0 {
		m.TrialsSimulated.Add(float64(trials))
	}
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) RecordCacheError() {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues("error").Inc()
}

func (m *Metrics) RecordRequest(route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(duration.Seconds())
}
