package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "notekeep"

var registerOnce sync.Once

// Register registers every collector with the default registry. Called once from main.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			EnrichmentRequestsTotal,
			EnrichmentAttemptsTotal,
			ModelRequestsTotal,
			ModelRequestDuration,
			ModelTokensTotal,
			ModelErrorsTotal,
			ModelBudgetTokensRemaining,
		)
	})
}
