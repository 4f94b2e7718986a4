package httppool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

// poolMetrics holds Prometheus metrics for remote fetches.
type poolMetrics struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
	inUse    prometheus.Gauge
	created  prometheus.Counter
}

func newPoolMetrics(registry *metric.MetricsRegistry, prefix string) (*poolMetrics, error) {
	labels := prometheus.Labels{"component": prefix}
	m := &poolMetrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "orionld",
			Subsystem:   "httppool",
			Name:        "fetches_total",
			ConstLabels: labels,
			Help:        "Remote fetches by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "orionld",
			Subsystem:   "httppool",
			Name:        "fetch_duration_seconds",
			ConstLabels: labels,
			Help:        "Time spent in Get, including handle checkout",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "orionld",
			Subsystem:   "httppool",
			Name:        "handles_in_use",
			ConstLabels: labels,
			Help:        "Client handles currently checked out",
		}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "orionld",
			Subsystem:   "httppool",
			Name:        "handles_created_total",
			ConstLabels: labels,
			Help:        "Client handles created across all hosts",
		}),
	}

	if err := registry.RegisterCounterVec(prefix, "httppool_fetches", m.fetches); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram(prefix, "httppool_fetch_duration", m.duration); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "httppool_handles_in_use", m.inUse); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "httppool_handles_created", m.created); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *poolMetrics) recordFetch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *poolMetrics) checkout() {
	if m != nil {
		m.inUse.Inc()
	}
}

func (m *poolMetrics) checkin() {
	if m != nil {
		m.inUse.Dec()
	}
}

func (m *poolMetrics) handleCreated() {
	if m != nil {
		m.created.Inc()
	}
}
