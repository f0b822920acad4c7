package core

import (
	"sync"
	"time"
)

// Clock is a source of wall-clock time. The simulation never reads it
// directly; drivers turn it into per-frame deltas with a FrameTimer.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to. Safe for concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// FrameTimer measures the elapsed time between successive frames.
type FrameTimer struct {
	clock   Clock
	last    time.Time
	started bool
	maxStep time.Duration
}

// NewFrameTimer creates a timer over clock. Deltas longer than maxStep are
// clamped to maxStep; zero disables clamping.
func NewFrameTimer(clock Clock, maxStep time.Duration) *FrameTimer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameTimer{clock: clock, maxStep: maxStep}
}

// Tick returns the time elapsed since the previous Tick.
// The first call only records the starting point and returns zero.
func (t *FrameTimer) Tick() time.Duration {
	return t.TickAt(t.clock.Now())
}

// TickAt is Tick with an explicit timestamp, for drivers that already carry
// one (e.g. Bubble Tea tick messages).
func (t *FrameTimer) TickAt(now time.Time) time.Duration {
	if !t.started {
		t.started = true
		t.last = now
		return 0
	}
	dt := now.Sub(t.last)
	t.last = now
	if dt < 0 {
		return 0
	}
	if t.maxStep > 0 && dt > t.maxStep {
		dt = t.maxStep
	}
	return dt
}

// Reset forgets the previous frame so the next Tick returns zero.
func (t *FrameTimer) Reset() {
	t.started = false
}
