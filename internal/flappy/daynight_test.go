package flappy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func testCycle() config.DayNight {
	return config.DayNight{DaySeconds: 10, NightSeconds: 10, TransitionRate: 0.5}
}

func TestStepBlendStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	blend := 0.0
	for i := 0; i < 5000; i++ {
		night := rng.Intn(2) == 0
		dt := time.Duration(rng.Int63n(int64(3 * time.Second)))
		blend = StepBlend(blend, night, 0.5, dt)
		assert.GreaterOrEqual(t, blend, 0.0)
		assert.LessOrEqual(t, blend, 1.0)
	}
}

func TestStepBlendMonotonic(t *testing.T) {
	b := 0.3
	next := StepBlend(b, true, 0.5, 100*time.Millisecond)
	assert.Greater(t, next, b)

	next = StepBlend(b, false, 0.5, 100*time.Millisecond)
	assert.Less(t, next, b)

	assert.Equal(t, b, StepBlend(b, true, 0.5, 0))
}

func TestDayNightCycle(t *testing.T) {
	d := NewDayNight(testCycle())
	assert.False(t, d.Night())
	assert.Equal(t, 0.0, d.Blend())

	d.Advance(9 * time.Second)
	assert.False(t, d.Night())
	assert.Equal(t, 0.0, d.Blend())

	d.Advance(time.Second)
	assert.True(t, d.Night(), "flips after the day duration")

	// 1/rate seconds of continuous night reaches full night.
	d.Advance(2 * time.Second)
	assert.Equal(t, 1.0, d.Blend())

	d.Advance(8 * time.Second)
	assert.False(t, d.Night(), "flips after the night duration")
	assert.Equal(t, 1.0, d.Blend())

	d.Advance(2 * time.Second)
	assert.Equal(t, 0.0, d.Blend())
}

func TestDayNightSplitsLargeSteps(t *testing.T) {
	// One 11s step: 10s of day then 1s of night.
	d := NewDayNight(testCycle())
	d.Advance(11 * time.Second)
	assert.True(t, d.Night())
	assert.InDelta(t, 0.5, d.Blend(), 1e-9)

	// Same as many small steps.
	small := NewDayNight(testCycle())
	for i := 0; i < 110; i++ {
		small.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, d.Night(), small.Night())
	assert.InDelta(t, d.Blend(), small.Blend(), 1e-9)
}

func TestDayNightReset(t *testing.T) {
	d := NewDayNight(testCycle())
	d.Advance(15 * time.Second)
	d.Reset()
	assert.False(t, d.Night())
	assert.Equal(t, 0.0, d.Blend())

	d.Advance(9 * time.Second)
	assert.False(t, d.Night(), "timer restarts after reset")
}

func TestDayNightZeroLengthCycleReturns(t *testing.T) {
	d := NewDayNight(config.DayNight{DaySeconds: 1e-10, NightSeconds: 1e-10, TransitionRate: 0.5})

	done := make(chan struct{})
	go func() {
		d.Advance(20 * time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Advance did not return on a zero-length cycle")
	}
	assert.False(t, d.Night())
}

func TestNewSessionRejectsSubTickCycle(t *testing.T) {
	cfg := testConfig()
	cfg.DayNight.DaySeconds = 1e-10
	cfg.DayNight.NightSeconds = 1e-10

	_, err := NewSession(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
