package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat endpoint metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds prometheus.Histogram

	// Intent routing metrics
	IntentTotal *prometheus.CounterVec

	// Store lookup metrics
	LookupTotal *prometheus.CounterVec

	// Completion metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kampus_chat_requests_total",
				Help: "Total number of /chat requests by status",
			},
			[]string{"status"}, // status: success, bad_request
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kampus_chat_duration_seconds",
				Help:    "End-to-end /chat handling duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),

		IntentTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kampus_intent_total",
				Help: "Total number of routed messages by intent",
			},
			[]string{"intent"}, // intent: week, day, info, none
		),

		LookupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kampus_lookup_total",
				Help: "Total number of store lookups by collection and outcome",
			},
			[]string{"collection", "outcome"}, // outcome: ok, not_found, unavailable, external
		),

		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kampus_llm_requests_total",
				Help: "Total number of completion requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, or a failure label such as auth, rate_limit, server
		),

		LLMDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kampus_llm_duration_seconds",
				Help:    "Completion request duration in seconds by provider",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
			},
			[]string{"provider"},
		),
	}
}

// RecordChat records a /chat request with status
func (m *Metrics) RecordChat(status string, duration float64) {
	if m == nil {
		return
	}
	m.ChatRequestsTotal.WithLabelValues(status).Inc()
	m.ChatDurationSeconds.Observe(duration)
}

// RecordIntent records which intent a message was routed to
func (m *Metrics) RecordIntent(intent string) {
	if m == nil {
		return
	}
	m.IntentTotal.WithLabelValues(intent).Inc()
}

// RecordLookup records a store lookup outcome
func (m *Metrics) RecordLookup(collection, outcome string) {
	if m == nil {
		return
	}
	m.LookupTotal.WithLabelValues(collection, outcome).Inc()
}

// RecordLLM records a completion request
func (m *Metrics) RecordLLM(provider, status string, duration float64) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider).Observe(duration)
}
