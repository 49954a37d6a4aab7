package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pass result labels.
const (
	ResultOK      = "ok"
	ResultSkipped = "skipped"
	ResultError   = "error"
)

var (
	// Passes counts reconciliation passes by outcome.
	Passes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photofeed_reconcile_passes_total",
		Help: "Reconciliation passes by result.",
	}, []string{"result"})

	// Discovered counts newly indexed objects.
	Discovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photofeed_objects_discovered_total",
		Help: "Objects newly added to the index.",
	})

	// Trimmed counts entries dropped by the capacity bound.
	Trimmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photofeed_entries_trimmed_total",
		Help: "Index entries dropped from the tail by the capacity bound.",
	})

	// GrantFailures counts best-effort public-read grants that failed.
	GrantFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photofeed_grant_failures_total",
		Help: "Failed attempts to make an object publicly readable.",
	})

	// EnrichFallbacks counts objects indexed through the degraded metadata path.
	EnrichFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photofeed_enrich_fallbacks_total",
		Help: "Objects indexed with minimal fallback metadata.",
	})

	// PassDuration observes reconciliation pass wall time.
	PassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "photofeed_reconcile_pass_duration_seconds",
		Help:    "Wall time of a full reconciliation pass.",
		Buckets: prometheus.DefBuckets,
	})
)
