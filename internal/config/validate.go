package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// ErrGapTooLarge reports a playfield too short to hold the pipe gap and both
// minimum segments; the spawner could not place a valid pipe.
var ErrGapTooLarge = fmt.Errorf("%w: pipe gap does not fit the playfield", ErrInvalid)

// Validate checks cfg once, up front, so nothing can fail mid-run.
func Validate(cfg FlappyConfig) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(cfg.Playfield.Width > 0, "playfield.width must be positive, got %v", cfg.Playfield.Width)
	check(cfg.Playfield.Height > 0, "playfield.height must be positive, got %v", cfg.Playfield.Height)
	check(cfg.Physics.TickRate > 0, "physics.tick_rate must be positive, got %v", cfg.Physics.TickRate)
	check(cfg.Physics.MaxStepScale >= 0, "physics.max_step_scale must not be negative")
	check(cfg.Player.Width > 0 && cfg.Player.Height > 0, "player size must be positive")
	check(cfg.Player.Height < cfg.Playfield.Height, "player.height must be below playfield.height")
	check(cfg.Obstacles.Width > 0, "obstacles.width must be positive")
	check(cfg.Obstacles.Gap > 0, "obstacles.gap must be positive")
	check(cfg.Obstacles.Speed >= 0, "obstacles.speed must not be negative")
	check(cfg.Obstacles.SpawnInterval > 0, "obstacles.spawn_interval must be positive, got %d", cfg.Obstacles.SpawnInterval)
	check(cfg.Obstacles.MinHeight >= 0, "obstacles.min_height must not be negative")
	check(cfg.Coins.Size > 0, "coins.size must be positive")
	check(cfg.Coins.Margin >= 0 && cfg.Coins.Jitter >= 0, "coins.margin and coins.jitter must not be negative")
	check(cfg.Coins.Size+2*cfg.Coins.Margin <= cfg.Obstacles.Gap, "coin (size %v + 2*margin %v) does not fit the gap %v",
		cfg.Coins.Size, cfg.Coins.Margin, cfg.Obstacles.Gap)
	check(cfg.Coins.Policy == CoinPolicyFixed || cfg.Coins.Policy == CoinPolicyScore,
		"coins.policy must be %q or %q, got %q", CoinPolicyFixed, CoinPolicyScore, cfg.Coins.Policy)
	if cfg.Physics.TickRate > 0 {
		tick := seconds(1 / cfg.Physics.TickRate)
		check(cfg.DayNight.DayDuration() >= tick && cfg.DayNight.NightDuration() >= tick,
			"day_night durations must be at least one tick (%v), got %vs and %vs",
			tick, cfg.DayNight.DaySeconds, cfg.DayNight.NightSeconds)
	}
	check(cfg.DayNight.TransitionRate > 0, "day_night.transition_rate must be positive")

	if err := CheckPlayfield(cfg, cfg.Playfield.Width, cfg.Playfield.Height); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CheckPlayfield verifies that a playfield of the given size can hold pipes
// built from cfg. Used by Validate and again on every runtime resize.
func CheckPlayfield(cfg FlappyConfig, width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: playfield %vx%v", ErrInvalid, width, height)
	}
	if need := cfg.Obstacles.Gap + 2*cfg.Obstacles.MinHeight; need > height {
		return fmt.Errorf("%w (gap %v + 2*min_height %v > height %v)",
			ErrGapTooLarge, cfg.Obstacles.Gap, cfg.Obstacles.MinHeight, height)
	}
	return nil
}
