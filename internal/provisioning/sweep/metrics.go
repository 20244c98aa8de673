package sweep

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahilkadakia/gcevm/internal/report"
)

// Metrics collects per-zone sweep metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates a metrics set with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gcevm",
		Subsystem: "sweep",
		Name:      "zone_attempts_total",
		Help:      "Zone provisioning attempts by outcome.",
	}, []string{"zone", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gcevm",
		Subsystem: "sweep",
		Name:      "zone_attempt_duration_seconds",
		Help:      "Wall time of a full create/bootstrap/delete cycle per zone.",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 8),
	}, []string{"zone"})

	registry.MustRegister(attempts, duration)

	return &Metrics{
		registry: registry,
		attempts: attempts,
		duration: duration,
	}
}

// Observe records one zone result.
func (m *Metrics) Observe(result report.ZoneResult) {
	m.attempts.WithLabelValues(result.Zone, string(result.Outcome)).Inc()
	m.duration.WithLabelValues(result.Zone).Observe(result.Duration.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
