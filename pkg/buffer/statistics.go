package buffer

import (
	"sync/atomic"
	"time"
)

// Statistics tracks buffer activity. All counters are atomic, so one Statistics
// may be shared by buffers living on different goroutines.
type Statistics struct {
	writes       atomic.Int64
	bytesWritten atomic.Int64
	grows        atomic.Int64
	rejects      atomic.Int64
	releases     atomic.Int64
	startTime    time.Time
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{startTime: time.Now()}
}

// Write records a successful write of n bytes.
func (s *Statistics) Write(n int) {
	s.writes.Add(1)
	s.bytesWritten.Add(int64(n))
}

// Grow records a reallocation.
func (s *Statistics) Grow() { s.grows.Add(1) }

// Reject records a write refused by the size limit.
func (s *Statistics) Reject() { s.rejects.Add(1) }

// Release records a buffer release.
func (s *Statistics) Release() { s.releases.Add(1) }

// Writes returns the number of successful writes.
func (s *Statistics) Writes() int64 { return s.writes.Load() }

// BytesWritten returns the total number of bytes written.
func (s *Statistics) BytesWritten() int64 { return s.bytesWritten.Load() }

// Grows returns the number of reallocations.
func (s *Statistics) Grows() int64 { return s.grows.Load() }

// Rejects returns the number of writes refused by the size limit.
func (s *Statistics) Rejects() int64 { return s.rejects.Load() }

// Releases returns the number of released buffers.
func (s *Statistics) Releases() int64 { return s.releases.Load() }

// Throughput returns bytes written per second since the tracker was created.
func (s *Statistics) Throughput() float64 {
	elapsed := time.Since(s.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.BytesWritten()) / elapsed
}

// StatsSummary is a point-in-time snapshot of Statistics.
type StatsSummary struct {
	Writes       int64   `json:"writes"`
	BytesWritten int64   `json:"bytes_written"`
	Grows        int64   `json:"grows"`
	Rejects      int64   `json:"rejects"`
	Releases     int64   `json:"releases"`
	Throughput   float64 `json:"throughput"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Writes:       s.Writes(),
		BytesWritten: s.BytesWritten(),
		Grows:        s.Grows(),
		Rejects:      s.Rejects(),
		Releases:     s.Releases(),
		Throughput:   s.Throughput(),
	}
}
