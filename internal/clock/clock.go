// Package clock provides the tick gate and debounce primitives used by the
// game loop. Everything here is a pure function of injected time, so tests
// drive it with fabricated timestamps instead of waiting on the wall clock.
package clock

import "time"

// Source provides the current time.
type Source interface {
	Now() time.Time
}

// System reads the monotonic wall clock.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a Source controlled by the caller.
type Manual struct {
	now time.Time
}

// NewManual creates a manual source starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Set moves the source to t.
func (m *Manual) Set(t time.Time) {
	m.now = t
}

// Advance moves the source forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// IntervalForRate converts a target rate in ticks per second to the minimum
// spacing between accepted ticks. Non-positive rates fall back to 60.
func IntervalForRate(rate float64) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Duration(float64(time.Second) / rate)
}

// Gate admits at most one tick per interval.
type Gate struct {
	lastTickAt time.Time
	interval   time.Duration
}

// NewGate creates a gate for the given target rate (ticks per second).
func NewGate(rate float64) *Gate {
	return &Gate{interval: IntervalForRate(rate)}
}

// Interval returns the minimum spacing between ticks.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// LastTick returns the reference point of the last accepted tick.
func (g *Gate) LastTick() time.Time {
	return g.lastTickAt
}

// Reset moves the reference point to now without accepting a tick.
func (g *Gate) Reset(now time.Time) {
	g.lastTickAt = now
}

// ShouldTick reports whether at least one interval has elapsed since the last
// accepted tick. Accepting a tick moves the reference point to now; a
// rejected call leaves the gate untouched. Late calls never queue a backlog.
func (g *Gate) ShouldTick(now time.Time) bool {
	if now.Sub(g.lastTickAt) < g.interval {
		return false
	}
	g.lastTickAt = now
	return true
}
