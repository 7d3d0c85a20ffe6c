// Package metrics provides Prometheus metrics for the report engine
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pds_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Report metrics
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_reports_generated_total",
			Help: "Total number of reports assembled",
		},
		[]string{"type", "standard"},
	)

	ReportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_report_errors_total",
			Help: "Total number of rejected report generations",
		},
		[]string{"type", "reason"},
	)

	ComplianceOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_compliance_outcomes_total",
			Help: "Overall compliance verdicts of compliance reports",
		},
		[]string{"standard", "overall"},
	)

	// Sheet fetch metrics
	SheetFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_sheet_fetches_total",
			Help: "Sheet data fetches by the source that served them",
		},
		[]string{"source"},
	)

	SheetFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pds_sheet_fetch_duration_seconds",
			Help:    "Time taken per sheet data endpoint attempt",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"status"},
	)

	// Datasheet metrics
	DatasheetSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_datasheet_searches_total",
			Help: "Datasheet searches by outcome",
		},
		[]string{"outcome"},
	)

	DatasheetIntegrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_datasheet_integrations_total",
			Help: "Datasheet integrations by outcome",
		},
		[]string{"outcome"},
	)

	// Archive metrics
	ReportsArchived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pds_reports_archived_total",
			Help: "Total number of reports written to the archive",
		},
	)

	ReportsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pds_reports_pruned_total",
			Help: "Total number of archived reports removed by retention",
		},
	)

	ExportUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pds_export_uploads_total",
			Help: "Rendered document uploads to object storage",
		},
		[]string{"status"},
	)
)

// RecordRequest records a served HTTP request
func RecordRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordReport records an assembled report
func RecordReport(reportType, standard string) {
	ReportsGenerated.WithLabelValues(reportType, standard).Inc()
}

// RecordReportError records a rejected generation
func RecordReportError(reportType, reason string) {
	ReportErrors.WithLabelValues(reportType, reason).Inc()
}

// RecordCompliance records the overall verdict of a compliance report
func RecordCompliance(standard string, compliant bool) {
	overall := "non_compliant"
	if compliant {
		overall = "compliant"
	}
	ComplianceOutcomes.WithLabelValues(standard, overall).Inc()
}

// RecordSheetAttempt records one sheet endpoint attempt
func RecordSheetAttempt(status string, duration time.Duration) {
	SheetFetchDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
