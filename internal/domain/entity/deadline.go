package entity

// Clock is a monotonic millisecond counter advanced by elapsed frame time.
type Clock struct {
	now float64
}

// Advance moves the clock forward. Negative values are ignored.
func (c *Clock) Advance(elapsedMs float64) {
	if elapsedMs > 0 {
		c.now += elapsedMs
	}
}

// Now returns the current time in milliseconds.
func (c *Clock) Now() float64 {
	return c.now
}

// Deadline is an absolute point on a Clock at which something ends.
// The zero value is disarmed.
type Deadline struct {
	at    float64
	armed bool
}

// Arm sets the deadline ticks logic ticks after now.
func (d *Deadline) Arm(now float64, ticks int) {
	d.at = now + float64(ticks)*TickMs
	d.armed = true
}

// Clear disarms the deadline.
func (d *Deadline) Clear() {
	d.armed = false
	d.at = 0
}

// Armed reports whether the deadline is set.
func (d Deadline) Armed() bool {
	return d.armed
}

// Pending reports whether the deadline is set and not yet reached.
func (d Deadline) Pending(now float64) bool {
	return d.armed && now < d.at
}

// Passed reports whether the deadline is set and has been reached.
func (d Deadline) Passed(now float64) bool {
	return d.armed && now >= d.at
}

// Remaining returns the milliseconds left, or 0 when disarmed or passed.
func (d Deadline) Remaining(now float64) float64 {
	if !d.Pending(now) {
		return 0
	}
	return d.at - now
}

// At returns the absolute expiry time.
func (d Deadline) At() float64 {
	return d.at
}
