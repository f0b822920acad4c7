package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It matches the
// embedded defaults/flappy.yaml and is used when that cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Playfield: Playfield{
			Width:  800,
			Height: 600,
		},
		Physics: Physics{
			Gravity:      0.5,
			JumpImpulse:  -8,
			TickRate:     60,
			MaxStepScale: 3,
		},
		Player: Player{
			X:      80,
			StartY: 0,
			Width:  40,
			Height: 30,
		},
		Obstacles: Obstacles{
			Width:         60,
			Gap:           160,
			Speed:         2,
			SpawnInterval: 100,
			MinHeight:     50,
		},
		Coins: Coins{
			Size:       26,
			Margin:     10,
			Jitter:     20,
			SpinRate:   0.1,
			Policy:     CoinPolicyScore,
			Chance:     0.6,
			BaseChance: 0.5,
			PerScore:   0.02,
			MaxChance:  0.9,
		},
		DayNight: DayNight{
			DaySeconds:     10,
			NightSeconds:   10,
			TransitionRate: 0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
