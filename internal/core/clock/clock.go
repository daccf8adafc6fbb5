// Package clock supplies elapsed time between frame ticks. It keeps no
// timers of its own; whoever drives the frame loop calls Tick.
package clock

import "time"

type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	frame int64
	delta float64
}

// New returns a clock reading the wall clock.
func New() *Clock { return NewWithSource(time.Now) }

// NewWithSource returns a clock reading now, used by tests to step time.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick advances one frame and returns the seconds elapsed since the
// previous Tick. The first Tick returns 0.
func (c *Clock) Tick() float64 {
	t := c.now()
	if c.frame == 0 {
		c.start = t
		c.delta = 0
	} else {
		c.delta = t.Sub(c.last).Seconds()
	}
	c.last = t
	c.frame++
	return c.delta
}

// DeltaTime is the value returned by the last Tick.
func (c *Clock) DeltaTime() float64 { return c.delta }

// Frame is the number of ticks so far.
func (c *Clock) Frame() int64 { return c.frame }

// Total is the time between the first and the last Tick.
func (c *Clock) Total() time.Duration {
	if c.frame == 0 {
		return 0
	}
	return c.last.Sub(c.start)
}
