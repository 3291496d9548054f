// Package gamepad reads a Linux joystick device (/dev/input/js*) and exposes
// the latest state as an input.Snapshot. A missing or unplugged device is not
// an error for the game: Snapshot simply reports it as disconnected.
package gamepad

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vovakirdan/tui-invaders/internal/input"
)

// js_event types from linux/joystick.h.
const (
	eventButton = 0x01
	eventAxis   = 0x02
	eventInit   = 0x80 // set on the synthetic events sent when the device opens
)

// EventSize is the size of one js_event on the wire.
const EventSize = 8

const axisMax = 32767

// ErrShortEvent is returned when decoding fewer than EventSize bytes.
var ErrShortEvent = errors.New("gamepad: short event")

// Event is one joystick event.
type Event struct {
	Time   uint32 // milliseconds, device clock
	Value  int16
	Type   uint8
	Number uint8
}

// DecodeEvent parses a little-endian js_event.
func DecodeEvent(b []byte) (Event, error) {
	if len(b) < EventSize {
		return Event{}, fmt.Errorf("%w: %d bytes", ErrShortEvent, len(b))
	}
	return Event{
		Time:   binary.LittleEndian.Uint32(b[0:4]),
		Value:  int16(binary.LittleEndian.Uint16(b[4:6])), //#nosec G115 -- reinterpreting the wire's signed value
		Type:   b[6],
		Number: b[7],
	}, nil
}

// Mapping selects which device controls feed the snapshot.
type Mapping struct {
	Axis  uint8 // horizontal axis
	Fire  uint8 // button reported as Button0
	Start uint8 // button reported as Button11
}

// DefaultMapping follows the standard gamepad layout indices.
func DefaultMapping() Mapping {
	return Mapping{Axis: 0, Fire: 0, Start: 11}
}

// Joystick reads events in a background goroutine. Snapshot is safe to call
// from the game loop while events arrive.
type Joystick struct {
	mapping Mapping
	r       io.ReadCloser

	mu        sync.Mutex
	state     input.Snapshot
	connected bool
	err       error

	done chan struct{}
}

// Open opens a joystick device with the default mapping.
func Open(path string) (*Joystick, error) {
	f, err := os.Open(path) //#nosec G304 -- device path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("gamepad: open %s: %w", path, err)
	}
	return New(f, DefaultMapping()), nil
}

// New starts reading events from r.
func New(r io.ReadCloser, m Mapping) *Joystick {
	j := &Joystick{
		mapping:   m,
		r:         r,
		connected: true,
		done:      make(chan struct{}),
	}
	go j.readLoop()
	return j
}

func (j *Joystick) readLoop() {
	defer close(j.done)
	buf := make([]byte, EventSize)
	for {
		if _, err := io.ReadFull(j.r, buf); err != nil {
			j.mu.Lock()
			j.connected = false
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				j.err = fmt.Errorf("gamepad: read: %w", err)
			}
			j.mu.Unlock()
			return
		}
		ev, _ := DecodeEvent(buf)
		j.apply(ev)
	}
}

func (j *Joystick) apply(ev Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	switch ev.Type &^ eventInit {
	case eventButton:
		pressed := ev.Value != 0
		switch ev.Number {
		case j.mapping.Fire:
			j.state.Button0 = pressed
		case j.mapping.Start:
			j.state.Button11 = pressed
		}
	case eventAxis:
		if ev.Number == j.mapping.Axis {
			x := float64(ev.Value) / axisMax
			if x < -1 {
				x = -1
			}
			j.state.AxisX = x
		}
	}
}

// Snapshot returns the latest state and whether the device is still
// connected.
func (j *Joystick) Snapshot() (input.Snapshot, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state, j.connected
}

// Err returns the read error that disconnected the device, if any.
func (j *Joystick) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Done is closed when the reader goroutine exits.
func (j *Joystick) Done() <-chan struct{} {
	return j.done
}

// Close releases the device.
func (j *Joystick) Close() error {
	return j.r.Close()
}

var _ input.Gamepad = (*Joystick)(nil)
