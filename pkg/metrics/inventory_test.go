package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilSafeWithoutRegisterer(t *testing.T) {
	var m *InventoryMetrics
	m.ObserveReport("mileage_below", time.Second)
	m.IncReportRun("mileage_below")
	m.IncReportFailure("mileage_below")
	m.IncCarSold()

	empty := NewInventoryMetrics(nil)
	empty.IncReportRun("mileage_below")
	empty.IncCarSold()
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewInventoryMetrics(reg)

	m.IncReportRun("red_fords")
	m.IncReportRun("red_fords")
	m.IncReportFailure("red_fords")
	m.IncCarSold()
	m.ObserveReport("red_fords", 125*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.reportRuns.WithLabelValues("red_fords")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.reportFailures.WithLabelValues("red_fords")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.carsSold))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "unknown", normalizeLabel(""))
	assert.Equal(t, "lot_count", normalizeLabel("lot_count"))
}
