package metrics

import "github.com/prometheus/client_golang/prometheus"

// Provider and search metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "employee_search",
			Name:      "provider_requests_total",
			Help:      "Total number of outbound provider requests",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "employee_search",
			Name:      "provider_request_duration_seconds",
			Help:      "Outbound provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "employee_search",
			Name:      "searches_total",
			Help:      "Employee searches by outcome category",
		},
		[]string{"provider", "category"},
	)

	RecordsReturnedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "employee_search",
			Name:      "records_returned_total",
			Help:      "Normalized records returned to clients",
		},
		[]string{"provider", "email"}, // "found" / "withheld" / "none"
	)
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(RecordsReturnedTotal)
}
