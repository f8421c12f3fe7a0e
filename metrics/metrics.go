package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sapdoc_http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sapdoc_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	HTTPInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sapdoc_http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})

	// SlotTransitions counts booking state machine outcomes.
	SlotTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sapdoc_slot_transitions_total",
		Help: "Book and cancel attempts by outcome.",
	}, []string{"action", "outcome"})

	RemindersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sapdoc_reminders_total",
		Help: "Reminder tasks scheduled, cancelled and delivered.",
	}, []string{"event"})

	AssistantQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sapdoc_assistant_queries_total",
		Help: "Assistant queries by detected intent and answering mode.",
	}, []string{"intent", "mode"})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
