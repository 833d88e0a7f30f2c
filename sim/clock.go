package sim

// Clock is the simulated system clock in microseconds. It only moves forward.
// The Simulator owns it; the Scheduler advances it for fixed CPU costs.
type Clock struct {
	now int64
}

// Now returns the current time.
func (c *Clock) Now() int64 { return c.now }

// Advance moves the clock forward by d. Negative d is ignored.
func (c *Clock) Advance(d int64) {
	if d > 0 {
		c.now += d
	}
}
