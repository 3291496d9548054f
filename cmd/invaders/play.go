package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/engine"
	"github.com/vovakirdan/tui-invaders/internal/input"
	"github.com/vovakirdan/tui-invaders/internal/logging"
	"github.com/vovakirdan/tui-invaders/internal/platform/gamepad"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagFPS    float64
	flagSeed   int64
	flagDevice string
	flagNoPad  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/Right, A/D  - Move
  Space            - Fire, or start when no game is running
  P/Esc            - Pause
  R                - Restart (after game over)
  X                - Stop
  M                - Mute
  ?                - Help
  Q/Ctrl+C         - Quit

A Linux joystick (button 0 fires, button 11 is start, the first axis moves)
is used when the device can be opened.

Difficulty options:
  easy   - Five lives, three bullets in flight
  normal - Starts at 30% difficulty
  hard   - Two lives, one bullet in flight
  fixed  - No progression

Examples:
  invaders play
  invaders play --difficulty easy
  invaders play --seed 42
  invaders play --config ./my-invaders.yaml --log ./invaders.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagFPS, "fps", 0, "Display frame rate (0 = config frame_rate)")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagDevice, "device", "", "Joystick device (default: config gamepad_device)")
	playCmd.Flags().BoolVar(&flagNoPad, "no-gamepad", false, "Keyboard only")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.Engine.FrameRate = flagFPS
	}

	// The terminal belongs to Bubble Tea, so logs go to a file or nowhere.
	logger, logFile, err := logging.OpenFile(flagLogPath, "invaders", flagLogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var pad input.Gamepad
	device := flagDevice
	if device == "" {
		device = cfg.Input.GamepadDevice
	}
	if !flagNoPad && device != "" {
		js, padErr := gamepad.Open(device)
		if padErr != nil {
			logger.Info("no gamepad, keyboard only", "device", device, "error", padErr)
		} else {
			defer js.Close()
			pad = js
			logger.Info("gamepad connected", "device", device)
		}
	}

	var journal engine.Journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		journal = store
	}

	runErr := tui.Run(tui.Options{
		Config:  cfg,
		Width:   width,
		Height:  height,
		Seed:    flagSeed,
		Journal: journal,
		Gamepad: pad,
		Logger:  logger,
	})
	if runErr != nil {
		if errors.Is(runErr, engine.ErrSimulationPanic) {
			return fmt.Errorf("game crashed: %w", runErr)
		}
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
