package mocks

import (
	"time"

	"github.com/numguess/numguess/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing
type MockClock struct {
	CurrentTime time.Time

	timers []*MockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}

// AfterFunc captures the scheduled call instead of starting a real timer
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &MockTimer{Delay: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Timers returns every captured AfterFunc call in scheduling order
func (c *MockClock) Timers() []*MockTimer {
	return c.timers
}

// MockTimer is one captured AfterFunc call
type MockTimer struct {
	Delay   time.Duration
	f       func()
	fired   bool
	stopped bool
}

// Fire runs the callback synchronously; repeat calls and stopped timers
// are no-ops, like a real one-shot timer
func (t *MockTimer) Fire() {
	if t.fired || t.stopped {
		return
	}
	t.fired = true
	t.f()
}

// Stop marks the timer stopped, reporting whether it was still pending
func (t *MockTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
