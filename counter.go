package goStats

import "sync/atomic"

const cacheLineSize = 64

// Counter is the capability every catalog entry exposes to request-handling code.
//
// Implementations are safe for concurrent use. Add is expected to receive
// non-negative deltas; the catalog never passes anything else.
type Counter interface {
	Increment()
	Add(n int64)
	Value() int64
	Reset()
}

// CounterKind selects the counter implementation backing a catalog entry.
type CounterKind uint8

const (
	// KindMonotonic is a running total since process start (or the last reset).
	KindMonotonic CounterKind = iota
	// KindRolling reports the total of the most recently completed time window.
	KindRolling
)

// String returns the lowercase kind name used in exporter help text and logs.
func (k CounterKind) String() string {
	switch k {
	case KindMonotonic:
		return "monotonic"
	case KindRolling:
		return "rolling"
	default:
		return "unknown"
	}
}

// MonotonicCounter is a lock-free running total.
//
// The accumulator sits alone on its cache line so that hot counters updated
// from many cores do not false-share with their neighbours in the registry.
type MonotonicCounter struct {
	value atomic.Int64
	_     [cacheLineSize - 8]byte
}

// NewMonotonicCounter returns a zeroed counter.
func NewMonotonicCounter() *MonotonicCounter {
	return &MonotonicCounter{}
}

// Increment adds one.
func (c *MonotonicCounter) Increment() {
	c.value.Add(1)
}

// Add adds n. Concurrent adds never lose updates.
func (c *MonotonicCounter) Add(n int64) {
	c.value.Add(n)
}

// Value returns the total as of the call. An add racing with Value may or may
// not be observed.
func (c *MonotonicCounter) Value() int64 {
	return c.value.Load()
}

// Reset sets the total to zero. An add racing with Reset may be lost; the
// counter is display-only and does not promise exactness across a reset.
func (c *MonotonicCounter) Reset() {
	c.value.Store(0)
}
