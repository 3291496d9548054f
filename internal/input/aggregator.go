package input

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/clock"
)

// Default policy values.
const (
	DefaultAxisThreshold = 0.5
	DefaultStartCooldown = 500 * time.Millisecond
	DefaultFireCooldown  = 50 * time.Millisecond
)

// Options configures an Aggregator.
type Options struct {
	AxisThreshold float64       // |axis| beyond which the stick counts as held
	StartCooldown time.Duration // minimum spacing of accepted start pulses
	FireCooldown  time.Duration // minimum spacing of accepted fire pulses
}

// DefaultOptions returns the stock thresholds and cooldowns.
func DefaultOptions() Options {
	return Options{
		AxisThreshold: DefaultAxisThreshold,
		StartCooldown: DefaultStartCooldown,
		FireCooldown:  DefaultFireCooldown,
	}
}

// StartGate reports whether a keyboard start press may be accepted.
// Space doubles as fire, so it only requests a start when no game is running.
type StartGate func() bool

// Aggregator owns raw device state and derives the Intent from it.
// It is not safe for concurrent use; all calls come from the game's
// cooperative scheduler.
type Aggregator struct {
	opts Options

	held map[Key]bool
	pad  Snapshot // last polled gamepad state, also the edge-detection reference

	firePending  bool
	startPending bool

	fireCooldown  clock.Cooldown
	startCooldown clock.Cooldown

	startGate StartGate
}

// NewAggregator creates an aggregator with the given options.
func NewAggregator(opts Options) *Aggregator {
	if opts.AxisThreshold <= 0 {
		opts.AxisThreshold = DefaultAxisThreshold
	}
	return &Aggregator{
		opts:          opts,
		held:          make(map[Key]bool),
		fireCooldown:  clock.NewCooldown(opts.FireCooldown),
		startCooldown: clock.NewCooldown(opts.StartCooldown),
	}
}

// SetStartGate installs the predicate consulted for keyboard start presses.
// A nil gate accepts every press.
func (a *Aggregator) SetStartGate(g StartGate) {
	a.startGate = g
}

// OnKeyDown records a key press. Repeated presses of a key that is already
// held are ignored, so auto-repeat never re-fires.
func (a *Aggregator) OnKeyDown(k Key, now time.Time) {
	if k == KeyNone || a.held[k] {
		return
	}
	a.held[k] = true

	if k != KeySpace {
		return
	}
	a.latchFire(now)
	if a.startGate == nil || a.startGate() {
		a.latchStart(now)
	}
}

// OnKeyUp records a key release.
func (a *Aggregator) OnKeyUp(k Key, _ time.Time) {
	delete(a.held, k)
}

// Held reports whether the key is currently down.
func (a *Aggregator) Held(k Key) bool {
	return a.held[k]
}

// PollGamepad ingests a fresh snapshot. Rising edges of the fire and start
// buttons are computed against the previous poll.
func (a *Aggregator) PollGamepad(s Snapshot, now time.Time) {
	prev := a.pad
	a.pad = s

	if s.Button0 && !prev.Button0 {
		a.latchFire(now)
	}
	if s.Button11 && !prev.Button11 {
		a.latchStart(now)
	}
}

// GamepadLost centers the stick. Button history is kept, so a button held
// across a reconnect yields no edge.
func (a *Aggregator) GamepadLost() {
	a.pad.AxisX = 0
}

func (a *Aggregator) latchFire(now time.Time) {
	if a.fireCooldown.Trigger(now) {
		a.firePending = true
	}
}

func (a *Aggregator) latchStart(now time.Time) {
	if a.startCooldown.Trigger(now) {
		a.startPending = true
	}
}

// CurrentIntent derives the intent from current raw state. It has no side
// effects; pulses stay set until ConsumeFire or ResetStartButton.
func (a *Aggregator) CurrentIntent() Intent {
	return Intent{
		MoveLeft:       a.held[KeyLeft] || a.pad.AxisX < -a.opts.AxisThreshold,
		MoveRight:      a.held[KeyRight] || a.pad.AxisX > a.opts.AxisThreshold,
		Fire:           a.firePending,
		StartRequested: a.startPending,
	}
}

// ConsumeFire clears the fire pulse once a tick has acted on it.
func (a *Aggregator) ConsumeFire() {
	a.firePending = false
}

// ResetStartButton consumes a pending start pulse.
func (a *Aggregator) ResetStartButton() {
	a.startPending = false
}

// Reset drops session-scoped state: held keys, stick deflection and a pending
// fire pulse. Button history is kept so a button still held across the reset
// does not produce a fresh edge; the stick is re-read on the next poll.
func (a *Aggregator) Reset() {
	clear(a.held)
	a.pad.AxisX = 0
	a.firePending = false
	a.fireCooldown.Clear()
}
