package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launchdex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"}, // "success" / "error"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "launchdex",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"stage"}, // "total" / "embedding" / "storage"
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "launchdex",
			Name:      "search_results_returned",
			Help:      "Number of results returned per search page",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	SearchFiltersExtracted = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "launchdex",
			Name:      "search_filters_extracted",
			Help:      "Number of structured filters inferred per query",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 8},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(SearchFiltersExtracted)
	searchMetricsRegistered = true
}
