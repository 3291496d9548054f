package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms float64) time.Time {
	return epoch.Add(time.Duration(ms * float64(time.Millisecond)))
}

func TestGateSixtyHertzSequence(t *testing.T) {
	g := NewGate(60)
	g.Reset(at(0))

	tests := []struct {
		ms       float64
		expected bool
	}{
		{0, false},
		{5, false},
		{10, false},
		{15, false},
		{20, true},
	}

	for _, tc := range tests {
		if got := g.ShouldTick(at(tc.ms)); got != tc.expected {
			t.Errorf("ShouldTick(%vms) = %v, expected %v", tc.ms, got, tc.expected)
		}
	}

	if !g.LastTick().Equal(at(20)) {
		t.Errorf("LastTick() = %v, expected reference at 20ms", g.LastTick().Sub(epoch))
	}

	// Next tick needs a full interval past 20ms
	if g.ShouldTick(at(36)) {
		t.Error("ShouldTick(36ms) should be false, only 16ms since last tick")
	}
	if !g.ShouldTick(at(37)) {
		t.Error("ShouldTick(37ms) should be true")
	}
}

func TestGateRejectedCallKeepsReference(t *testing.T) {
	g := NewGate(100) // 10ms
	g.Reset(at(0))

	g.ShouldTick(at(4))
	g.ShouldTick(at(8))
	if !g.LastTick().Equal(at(0)) {
		t.Errorf("rejected calls moved reference to %v", g.LastTick().Sub(epoch))
	}
	if !g.ShouldTick(at(10)) {
		t.Error("ShouldTick at exactly one interval should be true")
	}
}

func TestGateNoBacklog(t *testing.T) {
	g := NewGate(60)
	g.Reset(at(0))

	// A long stall admits exactly one tick, not a burst
	if !g.ShouldTick(at(1000)) {
		t.Fatal("ShouldTick after stall should be true")
	}
	if g.ShouldTick(at(1001)) {
		t.Error("ShouldTick right after a late tick should be false")
	}
}

func TestIntervalForRate(t *testing.T) {
	tests := []struct {
		rate     float64
		expected time.Duration
	}{
		{60, time.Second / 60},
		{240, time.Second / 240},
		{100, 10 * time.Millisecond},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}

	for _, tc := range tests {
		if got := IntervalForRate(tc.rate); got != tc.expected {
			t.Errorf("IntervalForRate(%v) = %v, expected %v", tc.rate, got, tc.expected)
		}
	}
}

func TestManualSource(t *testing.T) {
	m := NewManual(epoch)
	m.Advance(250 * time.Millisecond)
	if got := m.Now().Sub(epoch); got != 250*time.Millisecond {
		t.Errorf("Now() after Advance = %v, expected 250ms", got)
	}
	m.Set(at(10))
	if !m.Now().Equal(at(10)) {
		t.Errorf("Now() after Set = %v, expected 10ms", m.Now().Sub(epoch))
	}
}
