// Package metrics provides Prometheus metrics for the geofence core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricReconciles         = "region_reconciles_total"
	MetricRegionsArmed       = "regions_armed"
	MetricNotificationsSent  = "arrival_notifications_sent_total"
	MetricStaleArrivals      = "stale_arrival_events_total"
	MetricMonitoringFailures = "region_monitoring_failures_total"
)

// Metrics contains Prometheus metrics for region monitoring and arrival
// notifications. All operations are thread-safe.
type Metrics struct {
	reconciles         prometheus.Counter
	regionsArmed       prometheus.Gauge
	notificationsSent  prometheus.Counter
	staleArrivals      prometheus.Counter
	monitoringFailures prometheus.Counter
}

// New creates a Metrics instance with all collectors initialized. The metrics
// are not registered; call Register to register them with a registry.
func New() *Metrics {
	return &Metrics{
		reconciles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricReconciles,
			Help: "Total number of monitored-region reconciliation runs",
		}),
		regionsArmed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricRegionsArmed,
			Help: "Number of currently armed monitored regions",
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricNotificationsSent,
			Help: "Total number of arrival notifications sent",
		}),
		staleArrivals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricStaleArrivals,
			Help: "Total number of region-entered events for places no longer in the store",
		}),
		monitoringFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMonitoringFailures,
			Help: "Total number of region monitoring failures reported by the device",
		}),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.reconciles,
		m.regionsArmed,
		m.notificationsSent,
		m.staleArrivals,
		m.monitoringFailures,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncReconciles increments the reconciliation counter.
func (m *Metrics) IncReconciles() {
	m.reconciles.Inc()
}

// SetRegionsArmed records the size of the armed region set.
func (m *Metrics) SetRegionsArmed(n int) {
	m.regionsArmed.Set(float64(n))
}

// IncNotificationsSent increments the notifications counter.
func (m *Metrics) IncNotificationsSent() {
	m.notificationsSent.Inc()
}

// IncStaleArrivals increments the stale arrival events counter.
func (m *Metrics) IncStaleArrivals() {
	m.staleArrivals.Inc()
}

// IncMonitoringFailures increments the monitoring failures counter.
func (m *Metrics) IncMonitoringFailures() {
	m.monitoringFailures.Inc()
}
