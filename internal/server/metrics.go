package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rshade/carbonwise/internal/carbon"
)

// Transport labels.
const (
	transportHTTP = "http"
	transportGRPC = "grpc"
)

// Failure reasons.
const (
	reasonInvalidPayload = "invalid_payload"
	reasonTooLarge       = "payload_too_large"
	reasonPanic          = "panic"
	reasonNonFinite      = "non_finite"
)

// Metrics holds the Prometheus collectors for the estimator endpoints.
type Metrics struct {
	estimates       *prometheus.CounterVec
	failures        *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	monthly         prometheus.Histogram
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbonwise",
			Name:      "estimates_total",
			Help:      "Footprint estimates served, by transport.",
		}, []string{"transport"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbonwise",
			Name:      "requests_failed_total",
			Help:      "Estimate requests that returned a failure, by transport and reason.",
		}, []string{"transport", "reason"}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbonwise",
			Name:      "recommendations_total",
			Help:      "Recommendations issued, by category.",
		}, []string{"category"}),
		monthly: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carbonwise",
			Name:      "monthly_emissions_kg",
			Help:      "Estimated monthly emissions in kg CO2e.",
			Buckets:   []float64{100, 250, 500, 1000, 1500, 2500, 5000},
		}),
	}

	reg.MustRegister(
		m.estimates,
		m.failures,
		m.recommendations,
		m.monthly,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveEstimate records a successful estimate.
func (m *Metrics) ObserveEstimate(transport string, r carbon.Result) {
	m.estimates.WithLabelValues(transport).Inc()
	m.monthly.Observe(r.MonthlyEmissions)
	for _, rec := range r.Recommendations {
		m.recommendations.WithLabelValues(string(rec.Category)).Inc()
	}
}

// ObserveFailure records a failed request.
func (m *Metrics) ObserveFailure(transport, reason string) {
	m.failures.WithLabelValues(transport, reason).Inc()
}
