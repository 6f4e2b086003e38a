package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HydrationFailures counts hydrations that degraded to an absent
	// enrichment, labeled by stage (balance, fiat, history).
	HydrationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_connector_hydration_failures_total",
			Help: "Hydrations that degraded to an absent enrichment, by stage.",
		},
		[]string{"stage"},
	)

	// ProviderFallbacks counts tier transitions from a primary provider to
	// its RPC fallback, labeled by provider (balance, fees).
	ProviderFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_connector_provider_fallbacks_total",
			Help: "Primary-provider failures that triggered the RPC fallback tier.",
		},
		[]string{"provider"},
	)

	// AssemblyFailures counts transaction assemblies that hard-failed.
	AssemblyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_connector_transaction_assembly_failures_total",
			Help: "Transaction assemblies aborted by a fee or nonce failure.",
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once from main before serving /metrics.
func MustRegisterMetrics() {
	prometheus.MustRegister(HydrationFailures, ProviderFallbacks, AssemblyFailures)
}
