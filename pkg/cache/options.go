package cache

import (
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

// Option configures cache behavior using the functional options pattern.
type Option[V any] func(*cacheOptions[V])

// cacheOptions holds internal configuration for cache instances.
// Stats are always collected; metrics are optional and enabled via WithMetrics().
type cacheOptions[V any] struct {
	// metricsReg is optional - if provided, cache stats are also exposed as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the component label for Prometheus metrics
	metricsPrefix string

	// evictCallback is called when items are deleted or cleared
	evictCallback EvictCallback[V]

	// initialCapacity sizes the backing map
	initialCapacity int
}

// WithMetrics enables Prometheus metrics export for cache statistics.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics[V any](registry *metric.MetricsRegistry, prefix string) Option[V] {
	return func(opts *cacheOptions[V]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithEvictionCallback sets a callback function that is called when items are removed.
func WithEvictionCallback[V any](callback EvictCallback[V]) Option[V] {
	return func(opts *cacheOptions[V]) {
		opts.evictCallback = callback
	}
}

// WithInitialCapacity pre-sizes the cache for n entries. Values <= 0 are ignored.
func WithInitialCapacity[V any](n int) Option[V] {
	return func(opts *cacheOptions[V]) {
		if n > 0 {
			opts.initialCapacity = n
		}
	}
}

// applyOptions applies functional options to create final cache configuration.
func applyOptions[V any](options ...Option[V]) *cacheOptions[V] {
	opts := &cacheOptions[V]{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
