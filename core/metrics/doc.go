// Package metrics exposes Prometheus instrumentation for sync runs.
//
// Metrics are registered on an explicit prometheus.Registerer so tests and
// multiple servers never share the default registry. A nil *SyncMetrics is a
// valid no-op.
package metrics
