// Package invaders implements the invaders simulation: a marching fleet,
// a defender with a bounded number of bullets, invader bombs and a bonus
// UFO. It knows nothing about timing or input devices; the engine drives it
// one tick at a time.
package invaders

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/engine"
)

// ErrBoardTooSmall is returned when the board cannot hold a single invader
// row above the defender.
var ErrBoardTooSmall = errors.New("board too small")

// Layout constants in cells.
const (
	invaderWidth   = 3
	invaderSpacing = 4 // horizontal pitch, sprite plus one gap
	rowSpacing     = 2
	fleetTop       = 3
	ufoRow         = 2
	defenderWidth  = 3
	sideMargin     = 1
	minFreeRows    = 10 // HUD, UFO lane, defender, ground and breathing room
)

// Game is one invaders session. It implements engine.Simulation.
type Game struct {
	cfg        config.BoardConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	width, height int
	rows, cols    int

	fleet    *Fleet
	defender *Defender
	bullets  []*Projectile
	bombs    []*Projectile
	ufo      *UFO

	score     int
	lives     int
	level     int
	tickCount int
	started   bool
	gameOver  bool
}

var _ engine.Simulation = (*Game)(nil)

// New creates a game sized to the board. The fleet shrinks to fit narrow or
// short boards.
func New(cfg config.BoardConfig, diff config.DifficultyConfig, width, height int, seed int64) (*Game, error) {
	cols := min(cfg.Cols, (width-2*sideMargin)/invaderSpacing)
	rows := min(cfg.Rows, (height-minFreeRows)/rowSpacing)
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("invaders: %dx%d: %w", width, height, ErrBoardTooSmall)
	}

	g := &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(diff),
		rng:        rand.New(rand.NewSource(seed)),
		width:      width,
		height:     height,
		rows:       rows,
		cols:       cols,
		lives:      cfg.Lives,
		level:      1,
	}
	g.defender = &Defender{
		game: g,
		X:    float64(width-defenderWidth) / 2,
		Y:    g.defenderRow(),
	}
	g.fleet = newFleet(rows, cols, fleetTop)
	return g, nil
}

// NewFactory returns an engine factory. size reports the board for each new
// game, so a resized terminal takes effect on the next session. Each game
// gets its own seed drawn from seed.
func NewFactory(cfg config.InvadersConfig, size func() (int, int), seed int64) engine.Factory {
	seeds := rand.New(rand.NewSource(seed))
	return func() (engine.Simulation, error) {
		w, h := size()
		g, err := New(cfg.Board, cfg.Difficulty, w, h, seeds.Int63())
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

func (g *Game) defenderRow() int {
	return g.height - 3
}

func (g *Game) groundRow() int {
	return g.height - 2
}

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Level returns the current wave, starting at 1.
func (g *Game) Level() int { return g.level }

// BoardWidth returns the board width in cells.
func (g *Game) BoardWidth() int { return g.width }

// BoardHeight returns the board height in cells.
func (g *Game) BoardHeight() int { return g.height }

// IsStarted reports whether the game has been stepped at least once.
func (g *Game) IsStarted() bool { return g.started }

// IsGameOver reports whether the game has ended.
func (g *Game) IsGameOver() bool { return g.gameOver }

// Defender returns the player entity.
func (g *Game) Defender() engine.Defender { return g.defender }

// ToggleInvaders flips the fleet's sprite frame.
func (g *Game) ToggleInvaders() {
	g.fleet.Frame ^= 1
}

// MoveInvaders marches the fleet one tick, dropping and reversing at the
// board edges.
func (g *Game) MoveInvaders() {
	if g.gameOver {
		return
	}
	g.fleet.march(g.fleetSpeed(), sideMargin, g.width-sideMargin, g.cfg.FleetDrop)
}

// fleetSpeed grows as invaders die, with each wave and with difficulty.
func (g *Game) fleetSpeed() float64 {
	base := g.cfg.FleetSpeed * (1 + 0.25*float64(g.level-1))
	total := g.rows * g.cols
	if alive := g.fleet.Alive(); alive > 0 && total > 0 {
		base *= 1 + 2*float64(total-alive)/float64(total)
	}
	return g.difficulty.FleetSpeed(base, g.score, g.tickCount)
}

// Step advances projectiles, resolves collisions and checks for the end of
// the wave or the game.
func (g *Game) Step() error {
	if g.gameOver {
		return nil
	}
	g.started = true
	g.tickCount++

	g.moveBullets()
	g.dropBomb()
	g.moveBombs()
	g.moveUFO()

	if g.lives <= 0 {
		g.gameOver = true
		return nil
	}
	if _, bottom, ok := g.fleet.Bounds(); ok && bottom >= g.defender.Y {
		g.lives = 0
		g.gameOver = true
		return nil
	}
	if g.fleet.Alive() == 0 {
		g.nextWave()
	}
	return nil
}

// nextWave spawns a fresh fleet one row lower, capped so it never starts
// within reach of the defender.
func (g *Game) nextWave() {
	g.level++
	top := fleetTop + (g.level - 1)
	if maxTop := g.defender.Y - g.rows*rowSpacing - 3; top > maxTop {
		top = max(maxTop, fleetTop)
	}
	g.fleet = newFleet(g.rows, g.cols, top)
	g.bullets = g.bullets[:0]
	g.bombs = g.bombs[:0]
}

func (g *Game) rowPoints(row int) int {
	if len(g.cfg.RowPoints) == 0 {
		return 10
	}
	if row >= len(g.cfg.RowPoints) {
		row = len(g.cfg.RowPoints) - 1
	}
	return g.cfg.RowPoints[row]
}
