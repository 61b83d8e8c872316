package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"huddle/internal/huddle"
)

// Request outcomes
const (
	OutcomeOK          = "ok"
	OutcomeBadDate     = "bad_date"
	OutcomeLoadError   = "load_error"
	OutcomeServerError = "server_error"
)

// MetricsCollector exposes huddle metrics in Prometheus format
type MetricsCollector struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	reservations   prometheus.Gauge
	guests         prometheus.Gauge
	highComplexity prometheus.Gauge
}

// NewMetricsCollector creates a collector with its own registry
func NewMetricsCollector() *MetricsCollector {
	mc := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "huddle_requests_total",
				Help: "Huddle requests by outcome",
			},
			[]string{"outcome"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "huddle_build_duration_seconds",
				Help:    "Time taken to load the dataset and build a huddle",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
		reservations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huddle_last_reservations",
			Help: "Reservations in the most recently built huddle",
		}),
		guests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huddle_last_guests",
			Help: "Guests in the most recently built huddle",
		}),
		highComplexity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "huddle_last_high_complexity_orders",
			Help: "High complexity reservations in the most recently built huddle",
		}),
	}

	mc.registry.MustRegister(
		mc.requests,
		mc.buildDuration,
		mc.reservations,
		mc.guests,
		mc.highComplexity,
	)

	return mc
}

// Handler serves the registry over HTTP
func (mc *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
}

// RecordHuddle records a successful huddle build
func (mc *MetricsCollector) RecordHuddle(resp huddle.Response, elapsed time.Duration) {
	mc.requests.WithLabelValues(OutcomeOK).Inc()
	mc.buildDuration.Observe(elapsed.Seconds())
	mc.reservations.Set(float64(resp.TotalReservations))
	mc.guests.Set(float64(resp.TotalGuests))
	mc.highComplexity.Set(float64(resp.HighComplexityOrders))
}

// RecordOutcome counts a request that did not produce a huddle
func (mc *MetricsCollector) RecordOutcome(outcome string) {
	mc.requests.WithLabelValues(outcome).Inc()
}
