// Package input fuses keyboard events and polled gamepad snapshots into a
// single per-tick Intent. Keyboard input is push-based (press/release),
// gamepad input is pull-based; edge detection for the gamepad is done by
// diffing successive snapshots.
package input

import "fmt"

// Intent is the aggregated player input for one tick.
//
// MoveLeft and MoveRight are level-triggered: they hold for every tick the
// source is held. Fire and StartRequested are edge-triggered pulses.
type Intent struct {
	MoveLeft       bool
	MoveRight      bool
	Fire           bool
	StartRequested bool
}

// String returns a compact representation for logs.
func (i Intent) String() string {
	return fmt.Sprintf("left=%t right=%t fire=%t start=%t", i.MoveLeft, i.MoveRight, i.Fire, i.StartRequested)
}

// Key identifies a keyboard key the game listens to.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeySpace
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// Snapshot is one poll of a gamepad: the horizontal axis of the first stick
// and the fire (index 0) and start (index 11) buttons.
type Snapshot struct {
	AxisX    float64
	Button0  bool
	Button11 bool
}

// Gamepad is a polled device. Snapshot returns ok=false when no device is
// connected; callers then center the stick via Aggregator.GamepadLost.
type Gamepad interface {
	Snapshot() (s Snapshot, ok bool)
}
