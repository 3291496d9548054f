package tui

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/input"
)

// keyReleaser synthesizes key-up events. Terminals only report presses, so
// a key counts as held until no press has arrived for a while. The first
// timeout is longer to cover the delay before terminal auto-repeat starts.
type keyReleaser struct {
	initial time.Duration
	repeat  time.Duration
	held    map[input.Key]time.Time // key -> release deadline
}

func newKeyReleaser(initial, repeat time.Duration) *keyReleaser {
	return &keyReleaser{
		initial: initial,
		repeat:  repeat,
		held:    make(map[input.Key]time.Time),
	}
}

// press records a press and moves the key's release deadline.
func (r *keyReleaser) press(k input.Key, now time.Time) {
	if _, ok := r.held[k]; ok {
		r.held[k] = now.Add(r.repeat)
		return
	}
	r.held[k] = now.Add(r.initial)
}

// expired returns the keys whose deadline has passed and forgets them.
func (r *keyReleaser) expired(now time.Time) []input.Key {
	var out []input.Key
	for k, deadline := range r.held {
		if !now.Before(deadline) {
			out = append(out, k)
			delete(r.held, k)
		}
	}
	return out
}

// reset forgets every held key.
func (r *keyReleaser) reset() {
	clear(r.held)
}
