// Package time contains time related helpers and a clock seam
package time

import (
	"sync"
	"time"
)

// Clock reports the current time
// components that expire state take a Clock so tests can drive it
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a ManualClock pinned at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the pinned time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set pins the clock at t
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// OrSystem returns c, or SystemClock when c is nil
func OrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ISO formats t as UTC RFC3339 with milliseconds
func ISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
