package health

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// Monitor holds the latest status of each named part of the core.
type Monitor struct {
	mu       sync.RWMutex
	statuses map[string]Status
}

// NewMonitor creates an empty monitor
func NewMonitor() *Monitor {
	return &Monitor{statuses: make(map[string]Status)}
}

// Update replaces the status of name.
func (m *Monitor) Update(name string, status Status) {
	status.Component = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}

	m.mu.Lock()
	m.statuses[name] = status
	m.mu.Unlock()
}

// UpdateHealthy marks name healthy
func (m *Monitor) UpdateHealthy(name, message string) {
	m.Update(name, NewHealthy(name, message))
}

// UpdateUnhealthy marks name unhealthy
func (m *Monitor) UpdateUnhealthy(name, message string) {
	m.Update(name, NewUnhealthy(name, message))
}

// Record updates name from the outcome of an operation. Error and processed
// counts accumulate across calls; the state reflects only err.
func (m *Monitor) Record(name string, err error, processed int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var metrics Metrics
	if prev, ok := m.statuses[name]; ok && prev.Metrics != nil {
		metrics = *prev.Metrics
	}
	metrics.Processed += processed
	metrics.LastActivity = time.Now()
	if err != nil {
		metrics.ErrorCount++
	}

	m.statuses[name] = FromError(name, err).WithMetrics(&metrics)
}

// Get returns the status of name.
func (m *Monitor) Get(name string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status, ok := m.statuses[name]
	return status, ok
}

// GetAll returns a copy of every status.
func (m *Monitor) GetAll() map[string]Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.statuses)
}

// Remove stops tracking name.
func (m *Monitor) Remove(name string) {
	m.mu.Lock()
	delete(m.statuses, name)
	m.mu.Unlock()
}

// AggregateHealth folds every status into one, sub-statuses sorted by name.
func (m *Monitor) AggregateHealth(systemName string) Status {
	m.mu.RLock()
	subStatuses := make([]Status, 0, len(m.statuses))
	for _, name := range slices.Sorted(maps.Keys(m.statuses)) {
		subStatuses = append(subStatuses, m.statuses[name])
	}
	m.mu.RUnlock()

	return Aggregate(systemName, subStatuses)
}

// Count returns the number of tracked parts.
func (m *Monitor) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.statuses)
}
