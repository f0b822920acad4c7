package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// DayNight drives the decorative sky cycle. The phase flips after the
// configured day or night duration has elapsed since the previous flip, and
// Blend eases toward 1 at night and 0 during the day.
type DayNight struct {
	cfg        config.DayNight
	night      bool
	blend      float64
	elapsed    time.Duration
	phaseStart time.Duration
}

// NewDayNight creates a cycle starting at full day.
func NewDayNight(cfg config.DayNight) *DayNight {
	return &DayNight{cfg: cfg}
}

// Reset returns the cycle to full day.
func (d *DayNight) Reset() {
	d.night = false
	d.blend = 0
	d.elapsed = 0
	d.phaseStart = 0
}

// Night reports whether the night phase is active.
func (d *DayNight) Night() bool {
	return d.night
}

// Blend returns the sky blend, 0 for day colours and 1 for night colours.
func (d *DayNight) Blend() float64 {
	return d.blend
}

// Advance moves the cycle forward by dt. A step that crosses a phase
// boundary is split so the blend turns around exactly at the flip.
// A cycle with no length never flips.
func (d *DayNight) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if d.cfg.DayDuration() <= 0 || d.cfg.NightDuration() <= 0 {
		d.blend = StepBlend(d.blend, d.night, d.cfg.TransitionRate, dt)
		d.elapsed += dt
		return
	}
	for dt > 0 {
		phase := d.phaseDuration()
		left := phase - (d.elapsed - d.phaseStart)
		if left <= 0 {
			d.flip()
			continue
		}

		step := min(dt, left)
		d.blend = StepBlend(d.blend, d.night, d.cfg.TransitionRate, step)
		d.elapsed += step
		dt -= step

		if d.elapsed-d.phaseStart >= phase {
			d.flip()
		}
	}
}

func (d *DayNight) flip() {
	d.night = !d.night
	d.phaseStart = d.elapsed
}

func (d *DayNight) phaseDuration() time.Duration {
	if d.night {
		return d.cfg.NightDuration()
	}
	return d.cfg.DayDuration()
}

// StepBlend moves blend toward 1 (night) or 0 (day) by rate per second.
// The result is always within [0, 1].
func StepBlend(blend float64, night bool, rate float64, dt time.Duration) float64 {
	delta := rate * dt.Seconds()
	if night {
		blend += delta
	} else {
		blend -= delta
	}
	switch {
	case blend < 0:
		return 0
	case blend > 1:
		return 1
	default:
		return blend
	}
}
