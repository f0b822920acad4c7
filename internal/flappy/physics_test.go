package flappy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegrate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := Bird{Y: 300, Velocity: -8}

	for i := 0; i < 200; i++ {
		scale := rng.Float64() * 3
		prevV, prevY := b.Velocity, b.Y

		Integrate(&b, 0.5, scale)

		assert.InDelta(t, prevV+0.5*scale, b.Velocity, 1e-9)
		assert.InDelta(t, prevY+b.Velocity*scale, b.Y, 1e-9)
	}
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want Collision
	}{
		{"middle", 250, CollisionNone},
		{"touching top", 0, CollisionNone},
		{"touching bottom", 570, CollisionNone},
		{"above top", -0.1, CollisionCeiling},
		{"below bottom", 570.1, CollisionGround},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bird{X: 80, Y: tt.y, Width: 40, Height: 30}
			assert.Equal(t, tt.want, CheckBounds(b, 600))
		})
	}
}

func TestHitsPipe(t *testing.T) {
	// Gap spans y 200..360.
	p := Pipe{X: 100, Width: 60, Top: 200, Gap: 160, Bottom: 240}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside gap", 110, 250, false},
		{"hits top", 110, 190, true},
		{"hits bottom", 110, 340, true},
		{"flush with gap edges", 110, 200, false},
		{"left of pipe", 59, 0, false},
		{"touching left edge", 60, 0, false},
		{"overlapping left edge", 61, 0, true},
		{"right of pipe", 160, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bird{X: tt.x, Y: tt.y, Width: 40, Height: 30}
			if tt.name == "flush with gap edges" {
				b.Height = 160
			}
			assert.Equal(t, tt.want, HitsPipe(b, p))
		})
	}
}

func TestHasPassed(t *testing.T) {
	b := Bird{X: 80, Width: 40}
	assert.False(t, HasPassed(b, Pipe{X: 20, Width: 60}), "trailing edge level with bird")
	assert.True(t, HasPassed(b, Pipe{X: 19.5, Width: 60}))
}

func TestCull(t *testing.T) {
	pipes := CullPipes([]Pipe{
		{ID: 1, X: -60, Width: 60},
		{ID: 2, X: -59, Width: 60},
		{ID: 3, X: 400, Width: 60},
	})
	assert.Len(t, pipes, 2)
	assert.Equal(t, uint64(2), pipes[0].ID)

	coins := CullCoins([]Coin{
		{ID: 1, X: 10, Size: 26, Collected: true},
		{ID: 2, X: -26, Size: 26},
		{ID: 3, X: -25, Size: 26},
	})
	assert.Len(t, coins, 1)
	assert.Equal(t, uint64(3), coins[0].ID)
}

func TestCoinSpin(t *testing.T) {
	c := Coin{Scale: 1}
	for i := 0; i < 100; i++ {
		c.spin(0.1)
		assert.GreaterOrEqual(t, c.Scale, 0.4-1e-9)
		assert.LessOrEqual(t, c.Scale, 1.0+1e-9)
	}
	assert.InDelta(t, 10.0, c.Angle, 1e-9)
}
