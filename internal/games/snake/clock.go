package snake

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when a non-positive tick interval is requested.
var ErrInvalidInterval = errors.New("snake: tick interval must be positive")

// Clock turns frame time into fixed simulation ticks.
// It fires at most one tick per Advance call; time beyond that is dropped so
// a stalled frame never makes the snake jump several cells at once.
type Clock struct {
	interval time.Duration
	acc      time.Duration
	paused   bool
}

// NewClock creates a running clock with the given tick interval.
func NewClock(interval time.Duration) (*Clock, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	return &Clock{interval: interval}, nil
}

// Advance adds elapsed frame time and reports whether a tick is due.
func (c *Clock) Advance(elapsed time.Duration) bool {
	if c.paused || elapsed <= 0 {
		return false
	}
	c.acc += elapsed
	if c.acc < c.interval {
		return false
	}
	c.acc -= c.interval
	if c.acc >= c.interval {
		c.acc = 0
	}
	return true
}

// Interval returns the current tick interval.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// SetInterval changes the tick interval. Call it between ticks only.
func (c *Clock) SetInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, d)
	}
	c.interval = d
	return nil
}

// Pause freezes the clock.
func (c *Clock) Pause() {
	c.paused = true
}

// Resume restarts the clock. Time accumulated before the pause is discarded.
func (c *Clock) Resume() {
	c.paused = false
	c.acc = 0
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// Reset drops accumulated time without touching the pause state.
func (c *Clock) Reset() {
	c.acc = 0
}
