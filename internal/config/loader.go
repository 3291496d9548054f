package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// LoadInvaders loads the game configuration.
// Search order: customPath -> ~/.invaders/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. A custom path that cannot be read or parsed is an error; the
// implicit locations are skipped silently.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return InvadersConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return InvadersConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return InvadersConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("invaders.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/invaders.yaml"); err == nil {
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return InvadersConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "configs", filename)
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Board.Lives = 5
		cfg.Board.MaxBullets = 3
	case DifficultyHard:
		cfg.Board.Lives = 2
		cfg.Board.MaxBullets = 1
	}
}

// Validate checks that rates and periods are usable.
func (c InvadersConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Engine.TickRate > 0, "engine.tick_rate must be positive, got %v", c.Engine.TickRate)
	check(c.Engine.FrameRate > 0, "engine.frame_rate must be positive, got %v", c.Engine.FrameRate)
	check(c.Engine.SpriteToggleMS > 0, "engine.sprite_toggle_ms must be positive, got %d", c.Engine.SpriteToggleMS)
	check(c.Engine.GameOverDelayMS >= 0, "engine.game_over_delay_ms must not be negative, got %d", c.Engine.GameOverDelayMS)
	check(c.Engine.DefenderSpeed > 0, "engine.defender_speed must be positive, got %v", c.Engine.DefenderSpeed)
	check(c.Input.AxisThreshold > 0 && c.Input.AxisThreshold < 1, "input.axis_threshold must be in (0, 1), got %v", c.Input.AxisThreshold)
	check(c.Input.StartCooldownMS >= 0, "input.start_cooldown_ms must not be negative, got %d", c.Input.StartCooldownMS)
	check(c.Input.FireCooldownMS >= 0, "input.fire_cooldown_ms must not be negative, got %d", c.Input.FireCooldownMS)
	check(c.Input.KeyHoldInitialMS > 0, "input.key_hold_initial_ms must be positive, got %d", c.Input.KeyHoldInitialMS)
	check(c.Input.KeyHoldRepeatMS > 0, "input.key_hold_repeat_ms must be positive, got %d", c.Input.KeyHoldRepeatMS)
	check(c.Board.Rows > 0 && c.Board.Cols > 0, "board.rows and board.cols must be positive, got %dx%d", c.Board.Rows, c.Board.Cols)
	check(c.Board.Lives > 0, "board.lives must be positive, got %d", c.Board.Lives)
	check(c.Board.MaxBullets > 0, "board.max_bullets must be positive, got %d", c.Board.MaxBullets)
	check(len(c.Board.RowPoints) > 0, "board.row_points must not be empty")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
