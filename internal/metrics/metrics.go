// Package metrics exposes Prometheus counters for signing attempts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "typed_data_signer"

var (
	// SignOutcomes counts finished sign calls by method, result (success/failure) and stage.
	SignOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_outcomes_total",
			Help:      "Finished signing attempts",
		},
		[]string{"method", "result", "stage"},
	)

	// FallbackAttempts counts raw RPC calls issued by the fallback chain.
	FallbackAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_attempts_total",
			Help:      "Raw provider RPC calls made after an address-shape rejection",
		},
		[]string{"method", "payload"},
	)

	// ValidationRejections counts editor payloads rejected by the validator.
	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Typed data payloads rejected before signing",
		},
		[]string{"kind"},
	)
)
