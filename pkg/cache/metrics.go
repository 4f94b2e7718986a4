package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

// cacheMetrics holds Prometheus metrics for cache operations.
type cacheMetrics struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	sets    prometheus.Counter
	races   prometheus.Counter
	deletes prometheus.Counter
	size    prometheus.Gauge
}

func cacheCounter(prefix, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "orionld",
		Subsystem:   "cache",
		Name:        name,
		ConstLabels: prometheus.Labels{"component": prefix},
		Help:        help,
	})
}

// newCacheMetrics creates and registers cache metrics with the provided registry.
func newCacheMetrics(registry *metric.MetricsRegistry, prefix string) (*cacheMetrics, error) {
	m := &cacheMetrics{
		hits:    cacheCounter(prefix, "hits_total", "Total number of cache hits"),
		misses:  cacheCounter(prefix, "misses_total", "Total number of cache misses"),
		sets:    cacheCounter(prefix, "sets_total", "Total number of cache set operations"),
		races:   cacheCounter(prefix, "insert_races_total", "Inserts that lost to an existing entry"),
		deletes: cacheCounter(prefix, "deletes_total", "Total number of cache delete operations"),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "orionld",
			Subsystem:   "cache",
			Name:        "size",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Current number of entries in cache",
		}),
	}

	counters := map[string]prometheus.Counter{
		"cache_hits":         m.hits,
		"cache_misses":       m.misses,
		"cache_sets":         m.sets,
		"cache_insert_races": m.races,
		"cache_deletes":      m.deletes,
	}
	for name, counter := range counters {
		if err := registry.RegisterCounter(prefix, name, counter); err != nil {
			return nil, err
		}
	}
	if err := registry.RegisterGauge(prefix, "cache_size", m.size); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *cacheMetrics) recordHit()    { m.hits.Inc() }
func (m *cacheMetrics) recordMiss()   { m.misses.Inc() }
func (m *cacheMetrics) recordSet()    { m.sets.Inc() }
func (m *cacheMetrics) recordRace()   { m.races.Inc() }
func (m *cacheMetrics) recordDelete() { m.deletes.Inc() }

func (m *cacheMetrics) updateSize(size int) {
	m.size.Set(float64(size))
}
