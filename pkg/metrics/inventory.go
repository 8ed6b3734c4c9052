package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics records report executions and completed sales.
type InventoryMetrics struct {
	reportDuration *prometheus.HistogramVec
	reportRuns     *prometheus.CounterVec
	reportFailures *prometheus.CounterVec
	carsSold       prometheus.Counter
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_duration_seconds",
		Help:    "Duration of inventory report queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	reportRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_runs",
		Help: "Inventory report executions.",
	}, []string{"report"})
	reportFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_failures",
		Help: "Failed inventory report executions.",
	}, []string{"report"})
	carsSold := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cars_sold",
		Help: "Cars marked as sold.",
	})
	reg.MustRegister(reportDuration, reportRuns, reportFailures, carsSold)
	return &InventoryMetrics{
		reportDuration: reportDuration,
		reportRuns:     reportRuns,
		reportFailures: reportFailures,
		carsSold:       carsSold,
	}
}

// ObserveReport records the duration for the named report.
func (m *InventoryMetrics) ObserveReport(report string, duration time.Duration) {
	if m == nil || m.reportDuration == nil {
		return
	}
	m.reportDuration.WithLabelValues(normalizeLabel(report)).Observe(duration.Seconds())
}

// IncReportRun increments the run counter for the named report.
func (m *InventoryMetrics) IncReportRun(report string) {
	if m == nil || m.reportRuns == nil {
		return
	}
	m.reportRuns.WithLabelValues(normalizeLabel(report)).Inc()
}

// IncReportFailure increments the failure counter for the named report.
func (m *InventoryMetrics) IncReportFailure(report string) {
	if m == nil || m.reportFailures == nil {
		return
	}
	m.reportFailures.WithLabelValues(normalizeLabel(report)).Inc()
}

// IncCarSold increments the sold-cars counter.
func (m *InventoryMetrics) IncCarSold() {
	if m == nil || m.carsSold == nil {
		return
	}
	m.carsSold.Inc()
}

func normalizeLabel(report string) string {
	if report == "" {
		return "unknown"
	}
	return report
}
