// Package metric provides Prometheus metrics for console-gate.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Session lifecycle
	SessionsActive  prometheus.Gauge
	LoginsTotal     prometheus.Counter
	LogoutsTotal    prometheus.Counter
	SessionsExpired prometheus.Counter

	// Request handling, labeled by action and status code
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a metrics registry with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "console_gate_sessions_active",
			Help: "Number of live sessions in the store.",
		}),
		LoginsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "console_gate_logins_total",
			Help: "Successful logins since start.",
		}),
		LogoutsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "console_gate_logouts_total",
			Help: "Explicit logouts since start.",
		}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "console_gate_sessions_expired_total",
			Help: "Sessions terminated by the idle reaper.",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_gate_requests_total",
			Help: "Dispatched action requests by action and status.",
		}, []string{"action", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_gate_request_duration_seconds",
			Help:    "Action dispatch latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"action"}),
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
