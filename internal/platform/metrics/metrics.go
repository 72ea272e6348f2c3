package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the GraphQL authorization pipeline.
// All methods are nil-receiver safe so tests can pass a nil *Metrics.
type Metrics struct {
	// Operation outcomes by field name and result code ("ok" or the
	// domain error code).
	OperationOutcome *prometheus.CounterVec

	// Authorization denials by field name.
	AuthDenials *prometheus.CounterVec

	// Bearer tokens that failed verification or were revoked.
	TokenVerifyFailures prometheus.Counter

	// Resolver latency by field name.
	ResolveLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		OperationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "impact_graphql_operations_total",
			Help: "GraphQL operation outcomes by field and result code",
		}, []string{"field", "outcome"}),

		AuthDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "impact_auth_denials_total",
			Help: "Field authorization denials by field",
		}, []string{"field"}),

		TokenVerifyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "impact_token_verify_failures_total",
			Help: "Bearer tokens rejected during verification or found revoked",
		}),

		ResolveLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "impact_graphql_resolve_duration_seconds",
			Help:    "Duration of GraphQL field resolution",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"field"}),
	}
}

// ObserveOperation records one resolved operation.
func (m *Metrics) ObserveOperation(field, outcome string, d time.Duration) {
	if m != nil {
		m.OperationOutcome.WithLabelValues(field, outcome).Inc()
		m.ResolveLatency.WithLabelValues(field).Observe(d.Seconds())
	}
}

// IncrementAuthDenial records a guard denial.
func (m *Metrics) IncrementAuthDenial(field string) {
	if m != nil {
		m.AuthDenials.WithLabelValues(field).Inc()
	}
}

// IncrementTokenVerifyFailure records a rejected bearer token.
func (m *Metrics) IncrementTokenVerifyFailure() {
	if m != nil {
		m.TokenVerifyFailures.Inc()
	}
}
