// Package config provides YAML-based configuration loading and difficulty
// management for the invaders game.
package config

import "time"

// InvadersConfig contains all configuration for the game.
type InvadersConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Input      InputConfig      `yaml:"input"`
	Board      BoardConfig      `yaml:"board"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// EngineConfig defines loop pacing and lifecycle timing.
type EngineConfig struct {
	TickRate        float64 `yaml:"tick_rate"`          // Simulation ticks per second admitted by the gate
	FrameRate       float64 `yaml:"frame_rate"`         // Scheduler frame callbacks per second
	SpriteToggleMS  int     `yaml:"sprite_toggle_ms"`   // Invader animation period
	GameOverDelayMS int     `yaml:"game_over_delay_ms"` // Delay before the game over hook fires
	DefenderSpeed   float64 `yaml:"defender_speed"`     // Cells moved per tick while a direction is held
}

// InputConfig defines input thresholds and debounce timing.
type InputConfig struct {
	AxisThreshold    float64 `yaml:"axis_threshold"`
	StartCooldownMS  int     `yaml:"start_cooldown_ms"`
	FireCooldownMS   int     `yaml:"fire_cooldown_ms"`
	KeyHoldInitialMS int     `yaml:"key_hold_initial_ms"` // Release timeout before terminal auto-repeat kicks in
	KeyHoldRepeatMS  int     `yaml:"key_hold_repeat_ms"`  // Release timeout once auto-repeat is flowing
	GamepadDevice    string  `yaml:"gamepad_device"`      // Linux joystick device, empty disables
}

// BoardConfig defines the invader fleet, projectiles and scoring.
type BoardConfig struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Lives       int     `yaml:"lives"`
	FleetSpeed  float64 `yaml:"fleet_speed"`  // Cells per tick at full fleet strength
	FleetDrop   int     `yaml:"fleet_drop"`   // Rows dropped when the fleet hits an edge
	BulletSpeed float64 `yaml:"bullet_speed"` // Defender bullet cells per tick
	MaxBullets  int     `yaml:"max_bullets"`  // Defender bullets in flight at once
	BombSpeed   float64 `yaml:"bomb_speed"`   // Invader bomb cells per tick
	BombChance  float64 `yaml:"bomb_chance"`  // Probability per tick that the fleet drops a bomb
	UFOChance   float64 `yaml:"ufo_chance"`   // Probability per tick that a UFO appears
	UFOSpeed    float64 `yaml:"ufo_speed"`
	UFOPoints   []int   `yaml:"ufo_points"` // Bonus awarded for a UFO, picked at random
	RowPoints   []int   `yaml:"row_points"` // Points per invader, top row first
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to fleet speed at max difficulty
	BombMultiplier  float64 `yaml:"bomb_multiplier"`  // Added to bomb chance at max difficulty
}

// SpriteToggle returns the invader animation period.
func (e EngineConfig) SpriteToggle() time.Duration {
	return ms(e.SpriteToggleMS)
}

// GameOverDelay returns the delay before the game over hook fires.
func (e EngineConfig) GameOverDelay() time.Duration {
	return ms(e.GameOverDelayMS)
}

// FrameInterval returns the scheduler frame spacing.
func (e EngineConfig) FrameInterval() time.Duration {
	if e.FrameRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / e.FrameRate)
}

// StartCooldown returns the start button debounce.
func (i InputConfig) StartCooldown() time.Duration {
	return ms(i.StartCooldownMS)
}

// FireCooldown returns the fire button debounce.
func (i InputConfig) FireCooldown() time.Duration {
	return ms(i.FireCooldownMS)
}

// KeyHoldInitial returns the release timeout for a fresh key press.
func (i InputConfig) KeyHoldInitial() time.Duration {
	return ms(i.KeyHoldInitialMS)
}

// KeyHoldRepeat returns the release timeout while auto-repeat is flowing.
func (i InputConfig) KeyHoldRepeat() time.Duration {
	return ms(i.KeyHoldRepeatMS)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
