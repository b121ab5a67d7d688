package goStats

import (
	"sync"
	"time"
)

// DefaultRollingWindow is the window length used when MetricsConfig leaves it unset.
const DefaultRollingWindow = 60 * time.Second

// Clock supplies the current time to rolling counters.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to [Clock].
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a clock backed by [time.Now]. Its values carry the
// monotonic reading, so window arithmetic is unaffected by wall-clock steps.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// RollingCounter counts events per fixed window and reports the total of the
// previous, completed window.
//
// Every operation runs "check expiry, maybe roll over, then apply or read"
// under one mutex, so each delta lands in exactly one window and a rollover
// is never applied twice.
//
// When more than one window has elapsed since the last call only a single
// rollover happens: the in-progress total moves to last and is not decayed
// further. The window start is realigned to the boundary containing now, so
// an increment made after a long idle period is reported one window later.
//
// A clock that jumps backwards delays the next rollover; it never causes a
// double rollover or a negative window.
type RollingCounter struct {
	mu          sync.Mutex
	current     int64
	last        int64
	windowStart time.Time
	window      time.Duration
	clock       Clock
}

// NewRollingCounter returns a counter with the given window. A nil clock
// selects [SystemClock]. It panics if window is not positive.
func NewRollingCounter(window time.Duration, clock Clock) *RollingCounter {
	if window <= 0 {
		panic("goStats: rolling window must be > 0")
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &RollingCounter{
		window:      window,
		clock:       clock,
		windowStart: clock.Now(),
	}
}

// Window returns the configured window length.
func (c *RollingCounter) Window() time.Duration {
	return c.window
}

// Increment adds one to the current window.
func (c *RollingCounter) Increment() {
	c.Add(1)
}

// Add adds n to the window that is current at the time of the call.
func (c *RollingCounter) Add(n int64) {
	c.mu.Lock()
	c.rollLocked(c.clock.Now())
	c.current += n
	c.mu.Unlock()
}

// Value returns the total of the most recently completed window. Reads roll
// the window over exactly like writes do, so an idle counter drains to zero.
func (c *RollingCounter) Value() int64 {
	c.mu.Lock()
	c.rollLocked(c.clock.Now())
	v := c.last
	c.mu.Unlock()
	return v
}

// Reset zeroes both windows and starts a new window now.
func (c *RollingCounter) Reset() {
	c.mu.Lock()
	c.current = 0
	c.last = 0
	c.windowStart = c.clock.Now()
	c.mu.Unlock()
}

func (c *RollingCounter) rollLocked(now time.Time) {
	elapsed := now.Sub(c.windowStart)
	if elapsed < c.window {
		return
	}

	c.last = c.current
	c.current = 0

	windows := elapsed / c.window
	c.windowStart = c.windowStart.Add(windows * c.window)
}
