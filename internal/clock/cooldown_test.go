package clock

import (
	"testing"
	"time"
)

func TestCooldownIgnoresRetriggerWhileActive(t *testing.T) {
	c := NewCooldown(500 * time.Millisecond)

	if !c.Trigger(at(0)) {
		t.Fatal("first Trigger should succeed")
	}
	if c.Trigger(at(200)) {
		t.Error("Trigger at 200ms should be ignored while active")
	}
	if !c.Active(at(499)) {
		t.Error("Active(499ms) should be true")
	}
	if c.Active(at(500)) {
		t.Error("Active(500ms) should be false, deadline elapsed")
	}
	if !c.Trigger(at(500)) {
		t.Error("Trigger at 500ms should succeed after expiry")
	}
	if got := c.ExpiresAt(); !got.Equal(at(1000)) {
		t.Errorf("ExpiresAt() = %v, expected 1000ms", got.Sub(epoch))
	}
}

func TestCooldownRejectedTriggerDoesNotExtend(t *testing.T) {
	c := NewCooldown(100 * time.Millisecond)
	c.Trigger(at(0))
	c.Trigger(at(90))

	if c.Active(at(100)) {
		t.Error("rejected trigger should not push the deadline")
	}
}

func TestCooldownZeroDuration(t *testing.T) {
	c := NewCooldown(0)

	for i := 0; i < 3; i++ {
		if !c.Trigger(at(0)) {
			t.Errorf("zero cooldown Trigger #%d should always succeed", i)
		}
	}
	if c.Active(at(0)) {
		t.Error("zero cooldown should never be active")
	}
}

func TestCooldownClear(t *testing.T) {
	c := NewCooldown(time.Second)
	c.Trigger(at(0))
	c.Clear()

	if c.Active(at(1)) {
		t.Error("Active() after Clear should be false")
	}
	if !c.ExpiresAt().IsZero() {
		t.Error("ExpiresAt() after Clear should be zero")
	}
}
