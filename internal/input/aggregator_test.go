package input

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func newTestAggregator() *Aggregator {
	return NewAggregator(Options{
		AxisThreshold: 0.5,
		StartCooldown: 500 * time.Millisecond,
		FireCooldown:  0,
	})
}

// tick simulates one loop tick: read the intent, then consume the fire pulse.
func tick(a *Aggregator) Intent {
	in := a.CurrentIntent()
	a.ConsumeFire()
	return in
}

func TestMovementIsLevelTriggered(t *testing.T) {
	a := newTestAggregator()

	a.OnKeyDown(KeyLeft, ms(0))
	for i := 0; i < 5; i++ {
		if in := tick(a); !in.MoveLeft || in.MoveRight {
			t.Errorf("tick %d while held: %v, expected left only", i, in)
		}
	}

	a.OnKeyUp(KeyLeft, ms(100))
	if in := tick(a); in.MoveLeft {
		t.Errorf("tick after release: MoveLeft = true, expected false")
	}
}

func TestGamepadAxisThreshold(t *testing.T) {
	tests := []struct {
		name        string
		axis        float64
		left, right bool
	}{
		{"centered", 0, false, false},
		{"slight left", -0.4, false, false},
		{"at threshold", -0.5, false, false},
		{"full left", -1, true, false},
		{"full right", 0.9, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAggregator()
			a.PollGamepad(Snapshot{AxisX: tc.axis}, ms(0))
			in := a.CurrentIntent()
			if in.MoveLeft != tc.left || in.MoveRight != tc.right {
				t.Errorf("axis %v: left=%t right=%t, expected left=%t right=%t",
					tc.axis, in.MoveLeft, in.MoveRight, tc.left, tc.right)
			}
		})
	}
}

func TestKeyboardOrGamepadMovement(t *testing.T) {
	a := newTestAggregator()
	a.PollGamepad(Snapshot{AxisX: 1}, ms(0))
	a.OnKeyDown(KeyLeft, ms(0))

	in := a.CurrentIntent()
	if !in.MoveLeft || !in.MoveRight {
		t.Errorf("intent = %v, expected both sources reflected", in)
	}
}

func TestFireDebounceKeyboard(t *testing.T) {
	a := newTestAggregator()

	a.OnKeyDown(KeySpace, ms(0))
	fired := 0
	for i := 0; i < 10; i++ {
		// auto-repeat keeps sending presses while held
		a.OnKeyDown(KeySpace, ms(i*16))
		if tick(a).Fire {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("held space fired %d times, expected 1", fired)
	}

	a.OnKeyUp(KeySpace, ms(200))
	a.OnKeyDown(KeySpace, ms(220))
	if !tick(a).Fire {
		t.Error("second physical press should fire again")
	}
}

func TestFireDebounceGamepad(t *testing.T) {
	a := newTestAggregator()

	fired := 0
	for i := 0; i < 20; i++ {
		a.PollGamepad(Snapshot{Button0: true}, ms(i*16))
		if tick(a).Fire {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("held button0 over 20 polls fired %d times, expected 1", fired)
	}
}

func TestFirePulseSurvivesUntilConsumed(t *testing.T) {
	a := newTestAggregator()
	a.PollGamepad(Snapshot{Button0: true}, ms(0))
	a.PollGamepad(Snapshot{Button0: false}, ms(5))

	// Press and release between ticks still yields one pulse
	if !a.CurrentIntent().Fire {
		t.Fatal("pulse lost before the tick consumed it")
	}
	if !a.CurrentIntent().Fire {
		t.Error("CurrentIntent should be side-effect free")
	}
	a.ConsumeFire()
	if a.CurrentIntent().Fire {
		t.Error("Fire should clear after ConsumeFire")
	}
}

func TestFireCooldown(t *testing.T) {
	a := NewAggregator(Options{FireCooldown: 50 * time.Millisecond})

	a.PollGamepad(Snapshot{Button0: true}, ms(0))
	tick(a)
	a.PollGamepad(Snapshot{}, ms(10))
	a.PollGamepad(Snapshot{Button0: true}, ms(20))
	if tick(a).Fire {
		t.Error("press 20ms after accepted fire should be inside cooldown")
	}
	a.PollGamepad(Snapshot{}, ms(60))
	a.PollGamepad(Snapshot{Button0: true}, ms(70))
	if !tick(a).Fire {
		t.Error("press after cooldown should fire")
	}
}

func TestStartCooldown(t *testing.T) {
	a := newTestAggregator()
	accepted := 0
	press := func(at int) {
		a.PollGamepad(Snapshot{Button11: true}, ms(at))
		if a.CurrentIntent().StartRequested {
			accepted++
			a.ResetStartButton()
		}
		a.PollGamepad(Snapshot{}, ms(at+50))
	}

	press(0)
	press(200) // within 500ms of the first acceptance
	if accepted != 1 {
		t.Fatalf("two presses within 500ms accepted %d, expected 1", accepted)
	}
	press(600)
	if accepted != 2 {
		t.Errorf("press after 500ms accepted total %d, expected 2", accepted)
	}
}

func TestStartHeldAcrossPollsPulsesOnce(t *testing.T) {
	a := newTestAggregator()
	pulses := 0
	for i := 0; i < 100; i++ {
		a.PollGamepad(Snapshot{Button11: true}, ms(i*16))
		if a.CurrentIntent().StartRequested {
			pulses++
			a.ResetStartButton()
		}
	}
	if pulses != 1 {
		t.Errorf("held start produced %d pulses, expected 1", pulses)
	}
}

func TestResetStartButton(t *testing.T) {
	a := newTestAggregator()
	a.PollGamepad(Snapshot{Button11: true}, ms(0))

	if !a.CurrentIntent().StartRequested {
		t.Fatal("start edge should request start")
	}
	a.ResetStartButton()
	if a.CurrentIntent().StartRequested {
		t.Error("StartRequested should be false after ResetStartButton")
	}
}

func TestKeyboardStartGate(t *testing.T) {
	a := newTestAggregator()
	running := true
	a.SetStartGate(func() bool { return !running })

	a.OnKeyDown(KeySpace, ms(0))
	in := a.CurrentIntent()
	if in.StartRequested {
		t.Error("space while running should not request start")
	}
	if !in.Fire {
		t.Error("space while running should still fire")
	}

	a.OnKeyUp(KeySpace, ms(10))
	running = false
	a.OnKeyDown(KeySpace, ms(20))
	if !a.CurrentIntent().StartRequested {
		t.Error("space while stopped should request start")
	}
}

func TestResetClearsSessionState(t *testing.T) {
	a := newTestAggregator()
	a.OnKeyDown(KeyRight, ms(0))
	a.PollGamepad(Snapshot{AxisX: -1, Button0: true}, ms(0))

	a.Reset()
	in := a.CurrentIntent()
	if in.MoveLeft || in.MoveRight || in.Fire {
		t.Errorf("intent after Reset = %v, expected idle", in)
	}

	// Button still held is not a new edge, stick is re-detected on poll
	a.PollGamepad(Snapshot{AxisX: -1, Button0: true}, ms(16))
	in = a.CurrentIntent()
	if in.Fire {
		t.Error("button held across Reset should not fire")
	}
	if !in.MoveLeft {
		t.Error("stick still deflected should be re-detected on next poll")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{KeyNone, "None"},
		{KeyLeft, "Left"},
		{KeyRight, "Right"},
		{KeySpace, "Space"},
		{Key(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.key.String(); got != tc.expected {
			t.Errorf("Key(%d).String() = %q, expected %q", tc.key, got, tc.expected)
		}
	}
}

func TestGamepadLost(t *testing.T) {
	tests := []struct {
		name    string
		axis    float64
		keyLeft bool
		left    bool
	}{
		{"deflected left", -1, false, false},
		{"deflected right", 1, false, false},
		{"keyboard still held", -1, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAggregator()
			if tc.keyLeft {
				a.OnKeyDown(KeyLeft, ms(0))
			}
			a.PollGamepad(Snapshot{AxisX: tc.axis, Button0: true}, ms(0))
			a.ConsumeFire()
			a.GamepadLost()
			in := a.CurrentIntent()
			if in.MoveLeft != tc.left || in.MoveRight {
				t.Errorf("CurrentIntent() = %v, expected left=%t right=false", in, tc.left)
			}
			a.PollGamepad(Snapshot{Button0: true}, ms(100))
			if a.CurrentIntent().Fire {
				t.Errorf("CurrentIntent().Fire after reconnect with held button = true, expected false")
			}
		})
	}
}
