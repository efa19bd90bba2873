package metrics

import "github.com/prometheus/client_golang/prometheus"

// Enrichment and model Prometheus metrics.
var (
	EnrichmentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_requests_total",
			Help:      "Total number of note enrichment requests",
		},
		[]string{"engine", "status"},
	)

	EnrichmentAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_attempts_total",
			Help:      "Generative enrichment attempts by outcome",
		},
		[]string{"model", "outcome"}, // "valid" / "invalid" / "fatal"
	)

	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_requests_total",
			Help:      "Total number of text generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_request_duration_seconds",
			Help:      "Text generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	ModelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_tokens_total",
			Help:      "Total model tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	ModelErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_errors_total",
			Help:      "Total text generation errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	ModelBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_budget_tokens_remaining",
			Help:      "Remaining model token budget",
		},
		[]string{"provider", "period"},
	)
)
