package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks cache performance counters.
type Statistics struct {
	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	races   atomic.Int64
	deletes atomic.Int64

	mu          sync.RWMutex
	startTime   time.Time
	currentSize int64
	maxSize     int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Hit records a cache hit.
func (s *Statistics) Hit() { s.hits.Add(1) }

// Miss records a cache miss.
func (s *Statistics) Miss() { s.misses.Add(1) }

// Set records a cache set operation.
func (s *Statistics) Set() { s.sets.Add(1) }

// Race records an insert that found the key already present.
func (s *Statistics) Race() { s.races.Add(1) }

// Delete records a cache delete operation.
func (s *Statistics) Delete() { s.deletes.Add(1) }

// UpdateSize updates the current cache size.
func (s *Statistics) UpdateSize(size int64) {
	s.mu.Lock()
	s.currentSize = size
	if size > s.maxSize {
		s.maxSize = size
	}
	s.mu.Unlock()
}

// Hits returns the total number of cache hits.
func (s *Statistics) Hits() int64 { return s.hits.Load() }

// Misses returns the total number of cache misses.
func (s *Statistics) Misses() int64 { return s.misses.Load() }

// Sets returns the total number of set operations.
func (s *Statistics) Sets() int64 { return s.sets.Load() }

// Races returns the number of inserts that lost to an existing entry.
func (s *Statistics) Races() int64 { return s.races.Load() }

// Deletes returns the total number of delete operations.
func (s *Statistics) Deletes() int64 { return s.deletes.Load() }

// CurrentSize returns the current number of entries in the cache.
func (s *Statistics) CurrentSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSize
}

// MaxSize returns the maximum number of entries the cache has held.
func (s *Statistics) MaxSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSize
}

// HitRatio returns the cache hit ratio (0.0 to 1.0).
func (s *Statistics) HitRatio() float64 {
	hits := s.Hits()
	total := hits + s.Misses()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// Uptime returns how long the cache has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.sets.Store(0)
	s.races.Store(0)
	s.deletes.Store(0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentSize = 0
	s.maxSize = 0
	s.mu.Unlock()
}

// StatsSummary is a point-in-time snapshot of Statistics.
type StatsSummary struct {
	Hits        int64         `json:"hits"`
	Misses      int64         `json:"misses"`
	Sets        int64         `json:"sets"`
	Races       int64         `json:"races"`
	Deletes     int64         `json:"deletes"`
	CurrentSize int64         `json:"current_size"`
	MaxSize     int64         `json:"max_size"`
	HitRatio    float64       `json:"hit_ratio"`
	Uptime      time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Hits:        s.Hits(),
		Misses:      s.Misses(),
		Sets:        s.Sets(),
		Races:       s.Races(),
		Deletes:     s.Deletes(),
		CurrentSize: s.CurrentSize(),
		MaxSize:     s.MaxSize(),
		HitRatio:    s.HitRatio(),
		Uptime:      s.Uptime(),
	}
}
