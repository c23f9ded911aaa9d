package clock

import "time"

// Countdown is a timer decremented by the frame delta. Fire-rate, reload,
// stat-modifier expiry, invincibility and muzzle flashes all use it.
// The zero value is an expired countdown.
type Countdown struct {
	left time.Duration
}

func NewCountdown(d time.Duration) Countdown {
	return Countdown{left: d}
}

// Set restarts the countdown at d.
func (c *Countdown) Set(d time.Duration) {
	c.left = d
}

// Clear expires the countdown immediately.
func (c *Countdown) Clear() {
	c.left = 0
}

// Tick advances by dt and reports whether the countdown has run out.
// Remaining time never goes below zero.
func (c *Countdown) Tick(dt time.Duration) bool {
	c.left -= dt
	if c.left <= 0 {
		c.left = 0
		return true
	}
	return false
}

// Active reports whether time remains.
func (c Countdown) Active() bool { return c.left > 0 }

func (c Countdown) Remaining() time.Duration { return c.left }

// Millis returns the remaining time in fractional milliseconds.
func (c Countdown) Millis() float64 {
	return float64(c.left) / float64(time.Millisecond)
}
