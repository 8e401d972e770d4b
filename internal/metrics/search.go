package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_operations_total",
			Help:      "Total number of search engine operations",
		},
		[]string{"operation", "scope", "status"},
	)

	searchOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_operation_duration_seconds",
			Help:      "Search engine operation duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation", "scope"},
	)

	searchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of matching records per operation",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"operation", "scope"},
	)

	importedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_records_total",
			Help:      "Total number of records imported from seed files",
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(searchOperationsTotal, searchOperationDuration, searchResults, importedRecordsTotal)
}

// ObserveOperation records one search engine call. results is ignored when err is set.
func ObserveOperation(operation, scope string, start time.Time, results int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	searchOperationsTotal.WithLabelValues(operation, scope, status).Inc()
	searchOperationDuration.WithLabelValues(operation, scope).Observe(time.Since(start).Seconds())
	if err == nil {
		searchResults.WithLabelValues(operation, scope).Observe(float64(results))
	}
}

// ObserveImport counts records imported from a seed file of the given format.
func ObserveImport(format string, records int) {
	importedRecordsTotal.WithLabelValues(format).Add(float64(records))
}
