package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation outcomes.
const (
	OutcomeMatch           = "match"
	OutcomeNoMatch         = "no_match"
	OutcomeUnknownCategory = "unknown_category"
)

// Dispatch outcomes.
const (
	OutcomeAssigned = "assigned"
	OutcomeNone     = "none"
)

// Domain Prometheus metrics.
var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_matches",
			Help:      "Number of vendors returned per recommendation query",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	DispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "Total number of nearest-agent selections by outcome",
		},
		[]string{"outcome"},
	)

	CatalogVendors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_vendors",
			Help:      "Number of vendors in the active catalog snapshot",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Total catalog loads by status",
		},
		[]string{"status"}, // "ok" / "malformed" / "error"
	)
)

var domainMetricsRegistered bool

// RegisterDomainMetrics registers Prometheus domain metrics. Must be called once from main.
func RegisterDomainMetrics() {
	if domainMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RecommendationMatches)
	prometheus.MustRegister(DispatchTotal)
	prometheus.MustRegister(CatalogVendors)
	prometheus.MustRegister(CatalogReloadsTotal)
	domainMetricsRegistered = true
}
