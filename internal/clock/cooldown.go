package clock

import "time"

// Cooldown is a one-shot debounce: once triggered it ignores further triggers
// until its deadline passes. The zero value is inactive.
type Cooldown struct {
	active    bool
	expiresAt time.Time
	duration  time.Duration
}

// NewCooldown creates an inactive cooldown of the given duration.
func NewCooldown(d time.Duration) Cooldown {
	return Cooldown{duration: d}
}

// Duration returns the configured cooldown length.
func (c *Cooldown) Duration() time.Duration {
	return c.duration
}

// Active reports whether the cooldown is still running at now.
// An elapsed cooldown clears itself.
func (c *Cooldown) Active(now time.Time) bool {
	if c.active && !now.Before(c.expiresAt) {
		c.active = false
	}
	return c.active
}

// Trigger arms the cooldown if it is not active and reports whether it did.
func (c *Cooldown) Trigger(now time.Time) bool {
	if c.Active(now) {
		return false
	}
	c.active = c.duration > 0
	c.expiresAt = now.Add(c.duration)
	return true
}

// Clear cancels a running cooldown.
func (c *Cooldown) Clear() {
	c.active = false
	c.expiresAt = time.Time{}
}

// ExpiresAt returns the deadline of the running cooldown, or the zero time.
func (c *Cooldown) ExpiresAt() time.Time {
	if !c.active {
		return time.Time{}
	}
	return c.expiresAt
}
