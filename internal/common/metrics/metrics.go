// internal/common/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds local request instrumentation for the API client. Exposition is
// pull-based via /metrics only; nothing is pushed off the machine.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Number of API requests issued, by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		requestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "api_request_errors_total",
			Help: "Number of API requests that failed before a response arrived.",
		}, []string{"endpoint"}),
	}
}

// NewDefault registers on a fresh private registry; handy for tests and for
// callers that do not expose /metrics.
func NewDefault() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveRequest records a completed request.
func (m *Metrics) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveError records a request that produced no HTTP response.
func (m *Metrics) ObserveError(endpoint string) {
	m.requestErrors.WithLabelValues(endpoint).Inc()
}

// Handler returns the exposition handler for the given registry.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
