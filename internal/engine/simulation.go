// Package engine runs the game: a lifecycle controller that owns the
// simulation and the session epoch, and a loop driver that paces ticks,
// renders, applies player intent and advances the simulation.
//
// All entry points are called from one cooperative scheduler (see package
// sched), so nothing here takes locks.
package engine

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Surface is the drawing target handed to the simulation and the HUD.
// Coordinates are board cells.
type Surface interface {
	Width() int
	Height() int
	SetFillColor(c core.Color)
	FillRect(r core.Rect)
	SetFont(f core.Font)
	FillText(x, y int, text string)
}

// Defender is the player-controlled entity.
type Defender interface {
	// Power applies a movement delta in cells.
	Power(dx, dy float64)
	// FireBullet launches a bullet if the simulation allows one.
	FireBullet()
}

// Simulation is the game world. The engine treats it as opaque: it only
// draws it, advances it and reads the values shown in the HUD.
type Simulation interface {
	Draw(dst Surface)
	MoveInvaders()
	AddUFO()
	Step() error
	ToggleInvaders()

	Lives() int
	Score() int
	Level() int
	BoardWidth() int
	BoardHeight() int
	IsStarted() bool
	IsGameOver() bool

	Defender() Defender
}

// Factory constructs a fresh simulation for a new session.
type Factory func() (Simulation, error)
