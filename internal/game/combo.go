package game

// ComboTracker counts near misses that follow each other within a window.
// Expiry is a deadline on the simulated clock, checked by the step.
type ComboTracker struct {
	Count    int
	Deadline float64
	Window   float64
}

// Expire drops the combo once now has reached the deadline.
func (c *ComboTracker) Expire(now float64) {
	if c.Count > 0 && now >= c.Deadline {
		c.Count = 0
	}
}

// Hit registers a near miss at now and returns the new combo count.
// Any pending deadline is replaced.
func (c *ComboTracker) Hit(now float64) int {
	c.Expire(now)
	c.Count++
	c.Deadline = now + c.Window
	return c.Count
}

// Remaining returns the seconds left before the combo drops, 0 when idle.
func (c *ComboTracker) Remaining(now float64) float64 {
	if c.Count == 0 {
		return 0
	}
	return max(c.Deadline-now, 0)
}

// Reset clears the combo.
func (c *ComboTracker) Reset() {
	c.Count = 0
	c.Deadline = 0
}
