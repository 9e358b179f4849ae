package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSyncMetrics(reg)

	m.ObserveRun(StatusCompleted, time.Now())
	m.ObserveRun(StatusFailed, time.Now())
	m.ObserveRun(StatusCompleted, time.Now())
	m.AddRecords("inserted", 5)
	m.AddRecords("inserted", 0)
	m.AddRecords("deleted", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Runs.WithLabelValues(StatusCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(StatusFailed)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Records.WithLabelValues("inserted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Records.WithLabelValues("deleted")))
}

func TestSyncMetrics_NilSafe(t *testing.T) {
	var m *SyncMetrics
	assert.NotPanics(t, func() {
		m.ObserveRun(StatusCompleted, time.Now())
		m.AddRecords("inserted", 1)
	})
}
