package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the built-in configuration. It mirrors the
// embedded YAML and is used when that fails to parse.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Engine: EngineConfig{
			TickRate:        60,
			FrameRate:       120,
			SpriteToggleMS:  167,
			GameOverDelayMS: 600,
			DefenderSpeed:   0.4,
		},
		Input: InputConfig{
			AxisThreshold:    0.5,
			StartCooldownMS:  500,
			FireCooldownMS:   50,
			KeyHoldInitialMS: 250,
			KeyHoldRepeatMS:  90,
			GamepadDevice:    "/dev/input/js0",
		},
		Board: BoardConfig{
			Rows:        5,
			Cols:        11,
			Lives:       3,
			FleetSpeed:  0.06,
			FleetDrop:   1,
			BulletSpeed: 0.7,
			MaxBullets:  2,
			BombSpeed:   0.25,
			BombChance:  0.02,
			UFOChance:   0.002,
			UFOSpeed:    0.3,
			UFOPoints:   []int{50, 100, 150, 300},
			RowPoints:   []int{30, 20, 20, 10, 10},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				BombMultiplier:  1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
