package platform

import "time"

// maxDelta caps a single frame step so a stall does not teleport objects.
const maxDelta = 0.1

// Clock measures frame deltas.
type Clock struct {
	now   func() time.Time
	last  time.Time
	delta float64
	total float64
}

// NewClock returns a clock started at the current time.
func NewClock() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Tick advances the clock to the current time and returns the delta in
// seconds, capped at 0.1s.
func (c *Clock) Tick() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return c.Step(dt)
}

// Step advances the clock by a fixed dt, as headless runs do.
func (c *Clock) Step(dt float64) float64 {
	dt = min(max(dt, 0), maxDelta)
	c.delta = dt
	c.total += dt
	return dt
}

// Delta returns the last frame delta in seconds.
func (c *Clock) Delta() float64 { return c.delta }

// Total returns the accumulated time in seconds.
func (c *Clock) Total() float64 { return c.total }
