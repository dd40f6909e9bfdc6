package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	ImportsRun        prometheus.Counter
	RowsReconciled    *prometheus.CounterVec
	ReportsDerived    *prometheus.CounterVec
	DocumentsRendered *prometheus.CounterVec
	SweepsRun         prometheus.Counter
	RowsSwept         prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "secretario_request_duration_seconds",
			Help:    "HTTP request latency by method, path and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		ImportsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "secretario_imports_total",
			Help: "Total number of spreadsheet/bulk imports executed.",
		}),
		RowsReconciled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "secretario_import_rows_total",
			Help: "Import rows by outcome (imported, skipped, failed).",
		}, []string{"outcome"}),
		ReportsDerived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "secretario_reports_derived_total",
			Help: "Derived statistical reports by form.",
		}, []string{"form"}),
		DocumentsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "secretario_documents_rendered_total",
			Help: "Rendered documents by kind and outcome.",
		}, []string{"kind", "outcome"}),
		SweepsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "secretario_retention_sweeps_total",
			Help: "Retention maintenance sweeps executed.",
		}),
		RowsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "secretario_retention_rows_deleted_total",
			Help: "Rows removed by retention sweeps.",
		}),
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, seconds float64) {
	m.RequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(seconds)
}

// RecordImport counts one executed import run.
func (m *Metrics) RecordImport() {
	if m == nil {
		return
	}
	m.ImportsRun.Inc()
}

// RecordImportRow counts one reconciled row by outcome.
func (m *Metrics) RecordImportRow(outcome string) {
	if m == nil {
		return
	}
	m.RowsReconciled.WithLabelValues(outcome).Inc()
}

// RecordReport counts one derived form.
func (m *Metrics) RecordReport(form string) {
	if m == nil {
		return
	}
	m.ReportsDerived.WithLabelValues(form).Inc()
}

// RecordSweep counts one retention sweep and its removed rows.
func (m *Metrics) RecordSweep(rows int64) {
	if m == nil {
		return
	}
	m.SweepsRun.Inc()
	m.RowsSwept.Add(float64(rows))
}

// RecordDocument counts one rendered document.
func (m *Metrics) RecordDocument(kind, outcome string) {
	if m == nil {
		return
	}
	m.DocumentsRendered.WithLabelValues(kind, outcome).Inc()
}
