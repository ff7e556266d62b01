package backend

import (
	"sync/atomic"
	"time"
)

// OverflowPolicy defines how to handle full output queues
type OverflowPolicy int

const (
	// DropNewest drops the character being written when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest queued character when the queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// ParseOverflowPolicy converts a policy name to an OverflowPolicy. Unknown
// names yield DropNewest.
func ParseOverflowPolicy(s string) OverflowPolicy {
	switch s {
	case "DropOldest", "drop_oldest", "drop-oldest":
		return DropOldest
	case "Block", "block":
		return Block
	default:
		return DropNewest
	}
}

// Stats tracks backend statistics
type Stats struct {
	// ProcessedTotal counts characters handed to the device
	ProcessedTotal uint64
	// DroppedTotal counts characters discarded by an overflow policy
	DroppedTotal uint64
	// BlockedTotal counts writes that timed out waiting for queue space
	BlockedTotal uint64
	// FailedTotal counts device errors
	FailedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementDropped atomically increments the dropped counter
func (s *Stats) IncrementDropped() {
	atomic.AddUint64(&s.DroppedTotal, 1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.BlockedTotal, 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.FailedTotal, 1)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.ProcessedTotal, 0)
	atomic.StoreUint64(&s.DroppedTotal, 0)
	atomic.StoreUint64(&s.BlockedTotal, 0)
	atomic.StoreUint64(&s.FailedTotal, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Processed uint64
	Dropped   uint64
	Blocked   uint64
	Failed    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Processed: atomic.LoadUint64(&s.ProcessedTotal),
		Dropped:   atomic.LoadUint64(&s.DroppedTotal),
		Blocked:   atomic.LoadUint64(&s.BlockedTotal),
		Failed:    atomic.LoadUint64(&s.FailedTotal),
	}
}

// StatsProvider is implemented by backends that expose their counters
type StatsProvider interface {
	Stats() Snapshot
}

// NewStoppedTimer returns a timer that is stopped and drained, ready for Reset.
func NewStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// StopTimer stops t and drains its channel if it already fired.
func StopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
