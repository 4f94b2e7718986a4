package cache

import (
	"sync"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// simpleCache is a thread-safe cache with no eviction policy.
// It stores items indefinitely until explicitly deleted or cleared.
type simpleCache[V any] struct {
	mu      sync.RWMutex
	items   map[string]V
	stats   *Statistics
	metrics *cacheMetrics    // nil unless WithMetrics was given
	evictFn EvictCallback[V] // optional
}

// NewSimple creates a new Simple cache with no eviction policy.
// Stats are always enabled. Use WithMetrics() to also export them as Prometheus metrics.
func NewSimple[V any](options ...Option[V]) (Cache[V], error) {
	return newSimpleCache[V](applyOptions(options...))
}

func newSimpleCache[V any](opts *cacheOptions[V]) (*simpleCache[V], error) {
	var metrics *cacheMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "cache", "newSimpleCache", "metrics registration")
		}
	}

	return &simpleCache[V]{
		items:   make(map[string]V, opts.initialCapacity),
		stats:   NewStatistics(),
		metrics: metrics,
		evictFn: opts.evictCallback,
	}, nil
}

// Get retrieves a value by key.
func (c *simpleCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	value, exists := c.items[key]
	c.mu.RUnlock()

	if exists {
		c.stats.Hit()
		if c.metrics != nil {
			c.metrics.recordHit()
		}
	} else {
		c.stats.Miss()
		if c.metrics != nil {
			c.metrics.recordMiss()
		}
	}

	return value, exists
}

// Set stores a value with the given key.
func (c *simpleCache[V]) Set(key string, value V) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	c.mu.Lock()
	_, exists := c.items[key]
	c.items[key] = value
	size := len(c.items)
	c.mu.Unlock()

	c.recordSet(size)
	return !exists, nil
}

// GetOrSet stores value under key unless the key is already present.
func (c *simpleCache[V]) GetOrSet(key string, value V) (V, bool, error) {
	if err := validateKey(key); err != nil {
		var zero V
		return zero, false, err
	}

	c.mu.Lock()
	if existing, exists := c.items[key]; exists {
		c.mu.Unlock()
		c.stats.Race()
		if c.metrics != nil {
			c.metrics.recordRace()
		}
		return existing, false, nil
	}
	c.items[key] = value
	size := len(c.items)
	c.mu.Unlock()

	c.recordSet(size)
	return value, true, nil
}

func (c *simpleCache[V]) recordSet(size int) {
	c.stats.Set()
	c.stats.UpdateSize(int64(size))
	if c.metrics != nil {
		c.metrics.recordSet()
		c.metrics.updateSize(size)
	}
}

// Delete removes an entry by key.
func (c *simpleCache[V]) Delete(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	c.mu.Lock()
	value, exists := c.items[key]
	if exists {
		delete(c.items, key)
	}
	size := len(c.items)
	c.mu.Unlock()

	if !exists {
		return false, nil
	}

	if c.evictFn != nil {
		c.evictFn(key, value)
	}
	c.stats.Delete()
	c.stats.UpdateSize(int64(size))
	if c.metrics != nil {
		c.metrics.recordDelete()
		c.metrics.updateSize(size)
	}

	return true, nil
}

// Clear removes all entries from the cache.
func (c *simpleCache[V]) Clear() error {
	c.mu.Lock()
	old := c.items
	c.items = make(map[string]V)
	c.mu.Unlock()

	if c.evictFn != nil {
		for key, value := range old {
			c.evictFn(key, value)
		}
	}

	c.stats.UpdateSize(0)
	if c.metrics != nil {
		c.metrics.updateSize(0)
	}

	return nil
}

// Size returns the current number of entries in the cache.
func (c *simpleCache[V]) Size() int {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()
	return size
}

// Keys returns a slice of all keys currently in the cache.
func (c *simpleCache[V]) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	c.mu.RUnlock()
	return keys
}

// Stats returns cache statistics.
func (c *simpleCache[V]) Stats() *Statistics {
	return c.stats
}

// Close is a no-op; a simple cache runs no background goroutines.
func (c *simpleCache[V]) Close() error {
	return nil
}
