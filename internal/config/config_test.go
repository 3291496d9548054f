package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML failed to parse: %v", err)
	}
	def := DefaultInvadersConfig()

	if cfg.Engine != def.Engine {
		t.Errorf("engine = %+v, expected %+v", cfg.Engine, def.Engine)
	}
	if cfg.Input != def.Input {
		t.Errorf("input = %+v, expected %+v", cfg.Input, def.Input)
	}
	if cfg.Board.Rows != def.Board.Rows || cfg.Board.Cols != def.Board.Cols || cfg.Board.Lives != def.Board.Lives {
		t.Errorf("board = %+v, expected %+v", cfg.Board, def.Board)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults fail validation: %v", err)
	}
}

func TestLoadCustomPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("engine:\n  tick_rate: 240\nboard:\n  lives: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders() failed: %v", err)
	}
	if cfg.Engine.TickRate != 240 {
		t.Errorf("TickRate = %v, expected 240", cfg.Engine.TickRate)
	}
	if cfg.Board.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Board.Lives)
	}
	// Untouched keys keep their defaults
	if cfg.Engine.SpriteToggleMS != 167 {
		t.Errorf("SpriteToggleMS = %d, expected default 167", cfg.Engine.SpriteToggleMS)
	}
}

func TestLoadCustomMissingFile(t *testing.T) {
	_, err := LoadInvaders(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadInvaders() with missing custom path should fail")
	}
}

func TestLoadCustomInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  tick_rate: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadInvaders(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadInvaders() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultInvadersConfig()

	tests := []struct {
		name     string
		got      time.Duration
		expected time.Duration
	}{
		{"sprite toggle", cfg.Engine.SpriteToggle(), 167 * time.Millisecond},
		{"game over delay", cfg.Engine.GameOverDelay(), 600 * time.Millisecond},
		{"start cooldown", cfg.Input.StartCooldown(), 500 * time.Millisecond},
		{"fire cooldown", cfg.Input.FireCooldown(), 50 * time.Millisecond},
		{"frame interval", cfg.Engine.FrameInterval(), time.Second / 120},
	}

	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
		lives   int
	}{
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.0, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			ApplyInvadersPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Board.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Board.Lives, tc.lives)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should be DifficultyHard")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestDifficultyManager(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, BombMultiplier: 2.0},
	})

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := d.Level(500, 0); got != 0.75 {
		t.Errorf("Level(500) = %v, expected 0.75", got)
	}
	if got := d.Level(5000, 0); got != 1.0 {
		t.Errorf("Level(5000) = %v, expected clamped 1.0", got)
	}
	if got := d.FleetSpeed(0.1, 5000, 0); got != 0.2 {
		t.Errorf("FleetSpeed at max = %v, expected 0.2", got)
	}
	if got := d.BombChance(0.5, 5000, 0); got != 1.0 {
		t.Errorf("BombChance should cap at 1.0, got %v", got)
	}
}

func TestDifficultyManagerDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
	})

	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	if got := d.Level(1000, 1000); got != 0.4 {
		t.Errorf("Level() with progression disabled = %v, expected 0.4", got)
	}
}
