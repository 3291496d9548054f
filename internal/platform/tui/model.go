package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/engine"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/input"
	"github.com/vovakirdan/tui-invaders/internal/logging"
	"github.com/vovakirdan/tui-invaders/internal/sched"
)

// pumpFrame is the scheduler's frame interval under Bubble Tea. It is
// shorter than any display frame, so every pump runs exactly one link of
// each frame chain.
const pumpFrame = time.Millisecond

// Options configures a game Model.
type Options struct {
	Config  config.InvadersConfig
	Width   int // terminal size; one row is kept for the help footer
	Height  int
	Seed    int64
	Journal engine.Journal // nil disables the journal
	Gamepad input.Gamepad  // nil for keyboard only
	Logger  *log.Logger    // nil discards
}

// boardSize is shared with the simulation factory so a resize applies to
// the next simulation it builds.
type boardSize struct {
	w, h int
}

// Model is the Bubble Tea model for the game.
type Model struct {
	cfg    config.InvadersConfig
	logger *log.Logger

	loop   *sched.Loop
	in     *input.Aggregator
	ctrl   *engine.Controller
	screen *core.Screen
	board  *boardSize

	keys     KeyMap
	help     help.Model
	releaser *keyReleaser

	err      error
	quitting bool
}

// NewModel builds the scheduler, input aggregator and controller for one
// player.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	cfg := opts.Config

	board := &boardSize{w: opts.Width, h: max(opts.Height-1, 0)}
	screen := core.NewScreen(board.w, board.h)
	factory := invaders.NewFactory(cfg, func() (int, int) { return board.w, board.h }, opts.Seed)

	loop := sched.New(time.Now(), pumpFrame)
	in := input.NewAggregator(input.Options{
		AxisThreshold: cfg.Input.AxisThreshold,
		StartCooldown: cfg.Input.StartCooldown(),
		FireCooldown:  cfg.Input.FireCooldown(),
	})
	ctrl, err := engine.NewController(loop, in, core.NewCanvas(screen), factory, engine.Options{
		TickRate:      cfg.Engine.TickRate,
		SpriteToggle:  cfg.Engine.SpriteToggle(),
		GameOverDelay: cfg.Engine.GameOverDelay(),
		DefenderSpeed: cfg.Engine.DefenderSpeed,
		Gamepad:       opts.Gamepad,
		Journal:       opts.Journal,
		Logger:        logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	ctrl.OnGameOver(func(s engine.Summary) {
		logger.Info("final score", "session", s.SessionID, "score", s.Score, "level", s.Level, "ticks", s.Ticks)
	})

	return Model{
		cfg:      cfg,
		logger:   logger,
		loop:     loop,
		in:       in,
		ctrl:     ctrl,
		screen:   screen,
		board:    board,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		releaser: newKeyReleaser(cfg.Input.KeyHoldInitial(), cfg.Input.KeyHoldRepeat()),
	}, nil
}

// Controller exposes the lifecycle controller.
func (m Model) Controller() *engine.Controller {
	return m.ctrl
}

// Err returns the fatal error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the pump.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Engine.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick pumps the scheduler up to now, then releases keys that have
// not repeated and services start requests.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if err := m.loop.RunUntil(now); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	for _, k := range m.releaser.expired(m.loop.Now()) {
		m.in.OnKeyUp(k, m.loop.Now())
	}
	m.serviceStart()
	return m, tickCmd(m.cfg.Engine.FrameRate)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.loop.Now()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if err := m.ctrl.Stop(); err != nil {
			m.logger.Warn("stop on quit", "error", err)
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.ctrl.ToggleAudio()
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.ctrl.Phase() == engine.PhaseStopped || m.ctrl.GameOverShown() {
			m.releaser.reset()
			m.transition("restart", m.ctrl.Restart())
		}
		return m, nil
	case key.Matches(msg, m.keys.Stop):
		m.releaser.reset()
		m.transition("stop", m.ctrl.Stop())
		return m, nil
	}

	switch k := m.keys.GameKey(msg); k {
	case input.KeySpace:
		// Auto-repeat keeps space held, so holding it fires once.
		m.releaser.press(k, now)
		m.in.OnKeyDown(k, now)
		m.serviceStart()
	case input.KeyLeft, input.KeyRight:
		m.releaser.press(k, now)
		m.in.OnKeyDown(k, now)
	}
	return m, nil
}

func (m Model) togglePause() {
	switch m.ctrl.Phase() {
	case engine.PhaseRunning:
		m.transition("pause", m.ctrl.Pause())
	case engine.PhasePaused:
		m.transition("resume", m.ctrl.Resume())
	}
}

func (m Model) serviceStart() {
	if _, err := m.ctrl.HandleStartRequest(); err != nil {
		m.transition("start request", err)
	}
}

func (m Model) transition(op string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, engine.ErrInvalidTransition) {
		m.logger.Debug("ignored", "op", op, "error", err)
		return
	}
	m.logger.Error("lifecycle", "op", op, "error", err)
}

// handleResize resizes the screen. A stopped game is rebuilt for the new
// board; a running one keeps its board until the next session.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.board.w = msg.Width
	m.board.h = max(msg.Height-1, 0)
	m.screen.Resize(m.board.w, m.board.h)
	m.help.Width = msg.Width

	if m.ctrl.Phase() == engine.PhaseStopped {
		m.transition("resize", m.ctrl.Stop())
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".invaders", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("invaders_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.ctrl.Simulation() == nil {
		return fmt.Sprintf("Terminal too small (%dx%d). Resize or press q to quit.\n", m.board.w, m.board.h+1)
	}
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	status := m.ctrl.Phase().String()
	if m.ctrl.Muted() {
		status += " · muted"
	}
	return m.help.View(m.keys) + "  " + status
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
