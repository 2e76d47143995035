package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcome labels
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// AnalysesTotal tracks the number of RFV pipeline runs
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfv_analyses_total",
			Help: "Total number of RFV analyses run",
		},
		[]string{"status"}, // status: success, failed
	)

	// AnalysisDuration measures pipeline duration in seconds
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rfv_analysis_duration_seconds",
			Help:    "RFV pipeline duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"status"},
	)

	// LedgerRowsParsed counts ledger rows read from uploads
	LedgerRowsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfv_ledger_rows_parsed_total",
			Help: "Total number of ledger rows parsed",
		},
		[]string{"format"}, // format: csv, xlsx
	)

	// LedgerParseErrors counts rejected uploads
	LedgerParseErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfv_ledger_parse_errors_total",
			Help: "Total number of ledger uploads that failed to parse",
		},
		[]string{"format"},
	)

	// CustomersClassified counts customers given an RFV score
	CustomersClassified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rfv_customers_classified_total",
			Help: "Total number of customers classified",
		},
	)

	// CustomersDropped counts customers left out of the join
	CustomersDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rfv_customers_dropped_total",
			Help: "Total number of customers dropped because an aggregate was missing",
		},
	)

	// ScoresAssigned counts customers per RFV score
	ScoresAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfv_scores_assigned_total",
			Help: "Total number of customers assigned each RFV score",
		},
		[]string{"score"},
	)

	// ExportCacheHits tracks memoized export hits
	ExportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfv_export_cache_hits_total",
			Help: "Total number of export cache hits",
		},
		[]string{"format"},
	)

	// ExportCacheMisses tracks memoized export misses
	ExportCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfv_export_cache_misses_total",
			Help: "Total number of export cache misses",
		},
		[]string{"format"},
	)

	// ErrorsTotal counts total number of errors
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfv_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordAnalysis records a pipeline run
func RecordAnalysis(status string, duration float64) {
	AnalysesTotal.WithLabelValues(status).Inc()
	AnalysisDuration.WithLabelValues(status).Observe(duration)
}

// RecordCustomers records classified and dropped customers
func RecordCustomers(classified, dropped int) {
	CustomersClassified.Add(float64(classified))
	CustomersDropped.Add(float64(dropped))
}

// RecordScore records customers assigned a score
func RecordScore(score string, count int) {
	ScoresAssigned.WithLabelValues(score).Add(float64(count))
}

// RecordLedgerRows records parsed ledger rows
func RecordLedgerRows(format string, rows int) {
	LedgerRowsParsed.WithLabelValues(format).Add(float64(rows))
}

// RecordLedgerParseError records a rejected upload
func RecordLedgerParseError(format string) {
	LedgerParseErrors.WithLabelValues(format).Inc()
}

// RecordExportCacheHit records a memoized export hit
func RecordExportCacheHit(format string) {
	ExportCacheHits.WithLabelValues(format).Inc()
}

// RecordExportCacheMiss records a memoized export miss
func RecordExportCacheMiss(format string) {
	ExportCacheMisses.WithLabelValues(format).Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
