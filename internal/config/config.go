// Package config provides YAML/TOML game configuration loading, validation
// and difficulty management for the flappy game.
package config

import "time"

// FlappyConfig contains all tunables of the simulation.
// Distances are playfield units; per-tick quantities assume Physics.TickRate.
type FlappyConfig struct {
	Playfield  Playfield        `yaml:"playfield" toml:"playfield"`
	Physics    Physics          `yaml:"physics" toml:"physics"`
	Player     Player           `yaml:"player" toml:"player"`
	Obstacles  Obstacles        `yaml:"obstacles" toml:"obstacles"`
	Coins      Coins            `yaml:"coins" toml:"coins"`
	DayNight   DayNight         `yaml:"day_night" toml:"day_night"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// Playfield is the size of the simulated world.
type Playfield struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Physics defines the single constant-gravity/impulse model.
type Physics struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`           // Added to velocity per tick
	JumpImpulse float64 `yaml:"jump_impulse" toml:"jump_impulse"` // Velocity set on jump (negative = up)
	TickRate    float64 `yaml:"tick_rate" toml:"tick_rate"`       // Ticks per second the constants are tuned for
	// MaxStepScale caps how many nominal ticks one Update may integrate.
	MaxStepScale float64 `yaml:"max_step_scale" toml:"max_step_scale"`
}

// Player defines the bird hitbox and spawn point.
type Player struct {
	X      float64 `yaml:"x" toml:"x"`
	StartY float64 `yaml:"start_y" toml:"start_y"` // 0 centres the bird vertically
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Obstacles defines pipe geometry and spawning.
type Obstacles struct {
	Width         float64 `yaml:"width" toml:"width"`
	Gap           float64 `yaml:"gap" toml:"gap"`
	Speed         float64 `yaml:"speed" toml:"speed"`                   // Leftward movement per tick
	SpawnInterval int     `yaml:"spawn_interval" toml:"spawn_interval"` // Ticks between pipes
	MinHeight     float64 `yaml:"min_height" toml:"min_height"`         // Minimum top and bottom segment
}

// CoinPolicy selects how the coin spawn probability is computed.
type CoinPolicy string

const (
	CoinPolicyFixed CoinPolicy = "fixed" // Always Coins.Chance
	CoinPolicyScore CoinPolicy = "score" // BaseChance + PerScore*score, capped at MaxChance
)

// Coins defines collectible size, placement and spawn probability.
type Coins struct {
	Size       float64    `yaml:"size" toml:"size"`
	Margin     float64    `yaml:"margin" toml:"margin"` // Minimum distance from the gap edges
	Jitter     float64    `yaml:"jitter" toml:"jitter"` // Max vertical offset from the gap centre
	SpinRate   float64    `yaml:"spin_rate" toml:"spin_rate"`
	Policy     CoinPolicy `yaml:"policy" toml:"policy"`
	Chance     float64    `yaml:"chance" toml:"chance"`
	BaseChance float64    `yaml:"base_chance" toml:"base_chance"`
	PerScore   float64    `yaml:"per_score" toml:"per_score"`
	MaxChance  float64    `yaml:"max_chance" toml:"max_chance"`
}

// SpawnChance returns the coin probability for the given run score.
func (c Coins) SpawnChance(score int) float64 {
	if c.Policy == CoinPolicyFixed {
		return clampF(c.Chance, 0, 1)
	}
	chance := c.BaseChance + c.PerScore*float64(score)
	if chance > c.MaxChance {
		chance = c.MaxChance
	}
	return clampF(chance, 0, 1)
}

// DayNight defines the decorative day/night cycle.
type DayNight struct {
	DaySeconds     float64 `yaml:"day_seconds" toml:"day_seconds"`
	NightSeconds   float64 `yaml:"night_seconds" toml:"night_seconds"`
	TransitionRate float64 `yaml:"transition_rate" toml:"transition_rate"` // Blend change per second
}

// DayDuration returns the length of the day phase.
func (d DayNight) DayDuration() time.Duration {
	return seconds(d.DaySeconds)
}

// NightDuration returns the length of the night phase.
func (d DayNight) NightDuration() time.Duration {
	return seconds(d.NightSeconds)
}

// DifficultyConfig defines the optional pipe-speed progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Added to speed at max difficulty
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
