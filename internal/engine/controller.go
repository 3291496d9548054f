package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-invaders/internal/input"
	"github.com/vovakirdan/tui-invaders/internal/sched"
)

// Default timings.
const (
	DefaultTickRate      = 60
	DefaultSpriteToggle  = 167 * time.Millisecond
	DefaultGameOverDelay = 600 * time.Millisecond
	DefaultDefenderSpeed = 0.4
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	TickRate      float64       // simulation ticks per second
	SpriteToggle  time.Duration // invader animation cadence
	GameOverDelay time.Duration // pause between the last tick and the game over panel
	DefenderSpeed float64       // cells per tick while a direction is held

	Gamepad input.Gamepad // nil for keyboard only
	Journal Journal       // nil disables the session journal
	Logger  *log.Logger   // nil discards log output
}

// Controller owns the lifecycle: the current phase, the epoch that
// invalidates stale callbacks, and the only writable simulation handle.
type Controller struct {
	sched   sched.Scheduler
	input   *input.Aggregator
	surface Surface
	factory Factory
	driver  *Driver

	pad     input.Gamepad
	journal Journal
	logger  *log.Logger

	spriteToggle  time.Duration
	gameOverDelay time.Duration

	phase Phase
	epoch uint64
	sim   Simulation
	muted bool

	toggle sched.Handle
	notify sched.Handle

	sessionID   string
	sessionOpen bool
	panelShown  bool

	onGameOver func(Summary)
}

// NewController builds a stopped controller with a fresh simulation and
// paints the welcome screen. If the factory fails the controller starts
// without a simulation.
func NewController(s sched.Scheduler, in *input.Aggregator, surface Surface, factory Factory, opts Options) (*Controller, error) {
	if factory == nil {
		return nil, fmt.Errorf("engine: %w: nil factory", ErrNoSimulation)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.SpriteToggle <= 0 {
		opts.SpriteToggle = DefaultSpriteToggle
	}
	if opts.GameOverDelay <= 0 {
		opts.GameOverDelay = DefaultGameOverDelay
	}
	if opts.DefenderSpeed <= 0 {
		opts.DefenderSpeed = DefaultDefenderSpeed
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Controller{
		sched:         s,
		input:         in,
		surface:       surface,
		factory:       factory,
		pad:           opts.Gamepad,
		journal:       opts.Journal,
		logger:        logger,
		spriteToggle:  opts.SpriteToggle,
		gameOverDelay: opts.GameOverDelay,
		phase:         PhaseStopped,
	}
	c.driver = newDriver(c, opts.TickRate, opts.DefenderSpeed)
	in.SetStartGate(c.acceptsKeyboardStart)

	// A board that cannot hold a simulation is not fatal; Start retries.
	if sim, err := factory(); err != nil {
		logger.Warn("could not create simulation", "error", err)
	} else {
		c.sim = sim
	}
	c.advanceEpoch()
	drawWelcome(surface)
	return c, nil
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Epoch returns the current session epoch.
func (c *Controller) Epoch() uint64 {
	return c.epoch
}

// Simulation returns the current simulation handle. It may be nil after a
// failed reconstruction.
func (c *Controller) Simulation() Simulation {
	return c.sim
}

// SessionID returns the identifier of the last started session.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Ticks returns the number of simulation ticks in the current session.
func (c *Controller) Ticks() uint64 {
	return c.driver.ticks
}

// Muted reports the audio flag.
func (c *Controller) Muted() bool {
	return c.muted
}

// ToggleAudio flips the audio flag and returns the new value.
func (c *Controller) ToggleAudio() bool {
	c.muted = !c.muted
	c.logger.Debug("audio toggled", "muted", c.muted)
	return c.muted
}

// OnGameOver installs a hook that runs after the game over panel is shown.
func (c *Controller) OnGameOver(fn func(Summary)) {
	c.onGameOver = fn
}

// GameOverShown reports whether the delayed game over notification fired.
func (c *Controller) GameOverShown() bool {
	return c.phase == PhaseGameOver && c.panelShown
}

// ResetStartButton acknowledges a pending start request.
func (c *Controller) ResetStartButton() {
	c.input.ResetStartButton()
}

// Start begins a session from Stopped.
func (c *Controller) Start() error {
	if c.phase != PhaseStopped {
		return c.invalid("start")
	}
	if c.sim == nil {
		sim, err := c.factory()
		if err != nil {
			return fmt.Errorf("engine: create simulation: %w", err)
		}
		c.sim = sim
	}

	c.advanceEpoch()
	c.phase = PhaseRunning
	c.panelShown = false
	now := c.sched.Now()
	c.input.ConsumeFire()
	c.driver.reset(now)
	c.driver.arm(c.epoch)
	c.toggle = c.driver.armToggle(c.epoch, c.spriteToggle)

	c.sessionID = uuid.NewString()
	c.sessionOpen = true
	if c.journal != nil {
		if err := c.journal.BeginSession(c.sessionID, c.epoch, now); err != nil {
			c.logger.Warn("could not record session start", "session", c.sessionID, "error", err)
		}
	}
	c.logger.Info("session started", "session", c.sessionID, "epoch", c.epoch)
	return nil
}

// Stop tears the session down and prepares a fresh simulation. It is valid
// from every phase.
func (c *Controller) Stop() error {
	c.endSession(EndStopped, nil)
	return c.teardown()
}

// Pause suspends ticking while the frame chain keeps running.
func (c *Controller) Pause() error {
	if c.phase != PhaseRunning {
		return c.invalid("pause")
	}
	c.phase = PhasePaused
	c.logger.Debug("paused", "session", c.sessionID)
	return nil
}

// Resume continues a paused session. The tick gate is re-based so the
// paused interval does not produce a catch-up tick.
func (c *Controller) Resume() error {
	if c.phase != PhasePaused {
		return c.invalid("resume")
	}
	c.phase = PhaseRunning
	c.driver.gate.Reset(c.sched.Now())
	c.input.ConsumeFire()
	c.logger.Debug("resumed", "session", c.sessionID)
	return nil
}

// Restart stops and starts a new session. Valid from GameOver or Stopped.
func (c *Controller) Restart() error {
	if c.phase != PhaseGameOver && c.phase != PhaseStopped {
		return c.invalid("restart")
	}
	if err := c.Stop(); err != nil {
		return err
	}
	return c.Start()
}

// HandleStartRequest services a pending start pulse: it starts from
// Stopped, restarts once the game over panel is up and toggles pause
// otherwise. It reports whether a pulse was pending.
func (c *Controller) HandleStartRequest() (bool, error) {
	if !c.input.CurrentIntent().StartRequested {
		return false, nil
	}
	c.ResetStartButton()

	switch c.phase {
	case PhaseStopped:
		return true, c.Start()
	case PhaseGameOver:
		if !c.panelShown {
			return true, nil
		}
		return true, c.Restart()
	case PhaseRunning:
		return true, c.Pause()
	case PhasePaused:
		return true, c.Resume()
	}
	return true, nil
}

// gameOver moves a running session to GameOver and schedules the delayed
// notification. The simulation is kept so its final state stays visible.
func (c *Controller) gameOver() {
	if c.phase != PhaseRunning {
		return
	}
	c.phase = PhaseGameOver
	c.cancelTimers()
	c.advanceEpoch()

	sim := c.sim
	c.driver.render(sim)
	summary := Summary{
		SessionID: c.sessionID,
		Score:     sim.Score(),
		Level:     sim.Level(),
		Ticks:     c.driver.ticks,
	}
	c.endSession(EndGameOver, nil)
	c.logger.Info("game over", "session", summary.SessionID, "score", summary.Score, "level", summary.Level)

	epoch := c.epoch
	c.notify = c.sched.After(c.gameOverDelay, func(time.Time) error {
		if epoch != c.epoch || c.phase != PhaseGameOver {
			return nil
		}
		c.notify = 0
		c.panelShown = true
		drawGameOver(c.surface, summary)
		if c.onGameOver != nil {
			c.onGameOver(summary)
		}
		return nil
	})
}

// fail handles an unrecoverable simulation error: the session is recorded
// as failed, torn down, and the error is returned to the loop host.
func (c *Controller) fail(cause error) error {
	id := c.sessionID
	c.logger.Error("simulation failed", "session", id, "epoch", c.epoch, "error", cause)
	c.endSession(EndFatal, cause)
	if err := c.teardown(); err != nil {
		cause = errors.Join(cause, err)
	}
	return fmt.Errorf("engine: session %s: %w", id, cause)
}

// teardown invalidates every callback of the current epoch, clears input
// and replaces the simulation with a fresh one.
func (c *Controller) teardown() error {
	c.cancelTimers()
	c.advanceEpoch()
	c.input.Reset()
	c.phase = PhaseStopped
	c.panelShown = false
	c.driver.reset(c.sched.Now())
	drawWelcome(c.surface)

	sim, err := c.factory()
	if err != nil {
		c.sim = nil
		return fmt.Errorf("engine: create simulation: %w", err)
	}
	c.sim = sim
	return nil
}

func (c *Controller) endSession(reason string, cause error) {
	if !c.sessionOpen {
		return
	}
	c.sessionOpen = false
	if c.journal == nil {
		return
	}
	var errText string
	if cause != nil {
		errText = cause.Error()
	}
	if err := c.journal.EndSession(c.sessionID, c.sched.Now(), reason, c.driver.ticks, errText); err != nil {
		c.logger.Warn("could not record session end", "session", c.sessionID, "error", err)
	}
}

func (c *Controller) cancelTimers() {
	if c.toggle != 0 {
		c.sched.Cancel(c.toggle)
		c.toggle = 0
	}
	if c.notify != 0 {
		c.sched.Cancel(c.notify)
		c.notify = 0
	}
}

// advanceEpoch bumps the epoch and re-arms the gamepad poll chain under it.
func (c *Controller) advanceEpoch() {
	c.epoch++
	if c.pad != nil {
		c.armPoll(c.epoch)
	}
}

func (c *Controller) armPoll(epoch uint64) {
	c.sched.NextFrame(func(now time.Time) error {
		if epoch != c.epoch {
			return nil
		}
		if s, ok := c.pad.Snapshot(); ok {
			c.input.PollGamepad(s, now)
		} else {
			c.input.GamepadLost()
		}
		c.armPoll(epoch)
		return nil
	})
}

// acceptsKeyboardStart gates space as a start key: only when no game is
// running or the previous one has ended.
func (c *Controller) acceptsKeyboardStart() bool {
	if c.phase == PhaseStopped || c.phase == PhaseGameOver {
		return true
	}
	return c.sim == nil || !c.sim.IsStarted() || c.sim.IsGameOver()
}

func (c *Controller) invalid(op string) error {
	return fmt.Errorf("engine: %s from %s: %w", op, c.phase, ErrInvalidTransition)
}
