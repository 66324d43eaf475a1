package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// calculationsTotal counts calculation requests by endpoint and outcome.
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refi_calculations_total",
			Help: "Total number of refinance calculation requests",
		},
		[]string{"endpoint", "status"},
	)

	// calculationDuration observes end-to-end request handling time.
	calculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refi_calculation_duration_seconds",
			Help:    "Duration of refinance calculation requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// parseFallbacks counts editor field values that failed to parse and
	// fell back to zero. The parse itself never reports failure, so this
	// counter is the only signal.
	parseFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refi_parse_fallbacks_total",
			Help: "Editor field values that failed to parse and fell back to zero",
		},
		[]string{"field"},
	)
)
