package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// SyncMetrics tracks snapshot synchronization runs.
type SyncMetrics struct {
	Runs        *prometheus.CounterVec
	Records     *prometheus.CounterVec
	RunDuration prometheus.Histogram
}

// NewSyncMetrics registers sync metrics on reg.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	factory := promauto.With(reg)
	return &SyncMetrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_sync_runs_total",
			Help: "Total number of sync runs by final status",
		}, []string{"status"}),
		Records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_sync_records_total",
			Help: "Records processed by sync runs, by outcome (inserted, updated, deleted, unchanged, malformed, failed)",
		}, []string{"outcome"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sales_sync_run_duration_seconds",
			Help:    "Duration of sync runs",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
	}
}

// ObserveRun records one run's status and duration.
// Call with time.Now() taken at the start of the run.
func (m *SyncMetrics) ObserveRun(status string, start time.Time) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(status).Inc()
	m.RunDuration.Observe(time.Since(start).Seconds())
}

// AddRecords adds n to the counter for outcome.
func (m *SyncMetrics) AddRecords(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Records.WithLabelValues(outcome).Add(float64(n))
}
