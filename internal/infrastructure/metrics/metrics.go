// Package metrics exposes the engine's Prometheus instruments.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"project_billing/internal/domain/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "billing"

// StateTransitions counts persisted state machine transitions.
var StateTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "state_transitions_total",
	Help:      "Persisted state transitions by entity and from/to state.",
}, []string{"entity", "from", "to"})

// CommandErrors counts failed commands by error kind.
var CommandErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "command_errors_total",
	Help:      "Failed engine commands by command and error kind.",
}, []string{"command", "kind"})

// SummaryComputations tracks billing summary computation latency by pricing source.
var SummaryComputations = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "summary_duration_seconds",
	Help:      "Billing summary computation latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"source"})

// QuotesExpired counts quotes persisted as EXPIRED by reconciliation.
var QuotesExpired = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "quotes_expired_total",
	Help:      "Quotes persisted as EXPIRED by the reconciliation job.",
})

// HTTPRequests observes HTTP latency by method, route and status.
var HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// RecordTransition counts one transition.
func RecordTransition(entity string, from, to fmt.Stringer) {
	StateTransitions.WithLabelValues(entity, from.String(), to.String()).Inc()
}

// RecordError counts a failed command; nil errors are ignored.
func RecordError(command string, err error) {
	if err == nil {
		return
	}
	CommandErrors.WithLabelValues(command, errs.KindName(err)).Inc()
}

// ObserveSummary records one summary computation.
func ObserveSummary(source string, elapsed time.Duration) {
	SummaryComputations.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
