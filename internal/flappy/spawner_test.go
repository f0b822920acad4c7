package flappy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestSpawnPipeBounds(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg.Obstacles, cfg.Coins, rand.New(rand.NewSource(42)))

	const H = 600.0
	m, G := cfg.Obstacles.MinHeight, cfg.Obstacles.Gap

	for i := 0; i < 1000; i++ {
		p := s.SpawnPipe(800, H)
		assert.GreaterOrEqual(t, p.Top, m)
		assert.LessOrEqual(t, p.Top, H-G-m)
		assert.Equal(t, H, p.Top+p.Gap+p.Bottom)
		assert.Equal(t, 800.0, p.X)
	}
}

func TestSpawnPipeExtremes(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	low := NewSpawner(cfg.Obstacles, cfg.Coins, fixedRand(0)).SpawnPipe(800, 600)
	assert.Equal(t, 50.0, low.Top)

	high := NewSpawner(cfg.Obstacles, cfg.Coins, fixedRand(0.999999)).SpawnPipe(800, 600)
	assert.LessOrEqual(t, high.Top, 390.0)
	assert.Equal(t, 389.0, high.Top)

	// Playfield exactly gap + 2*margin: only one valid height.
	tight := NewSpawner(cfg.Obstacles, cfg.Coins, fixedRand(0.7)).SpawnPipe(800, 260)
	assert.Equal(t, 50.0, tight.Top)
	assert.Equal(t, 50.0, tight.Bottom)
}

func TestSpawnIDsUnique(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg.Obstacles, cfg.Coins, fixedRand(0))

	seen := map[uint64]bool{}
	for i := 0; i < 50; i++ {
		p := s.SpawnPipe(800, 600)
		c, ok := s.SpawnCoin(p, 0)
		require.True(t, ok)
		assert.False(t, seen[p.ID])
		assert.False(t, seen[c.ID])
		seen[p.ID], seen[c.ID] = true, true
	}
}

func TestSpawnCoinPlacement(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg.Obstacles, cfg.Coins, rand.New(rand.NewSource(3)))

	spawned := 0
	for i := 0; i < 1000; i++ {
		p := s.SpawnPipe(800, 600)
		c, ok := s.SpawnCoin(p, 100)
		if !ok {
			continue
		}
		spawned++
		assert.GreaterOrEqual(t, c.Y, p.GapTop()+cfg.Coins.Margin)
		assert.LessOrEqual(t, c.Y+c.Size, p.GapBottom()-cfg.Coins.Margin)
		assert.Equal(t, p.X+p.Width/2-c.Size/2, c.X)
		assert.False(t, c.Collected)
	}
	// Chance is capped at 0.9 for high scores.
	assert.InDelta(t, 900, spawned, 60)
}

func TestSpawnCoinClampsToGap(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Coins.Jitter = 500

	p := Pipe{X: 800, Width: 60, Top: 100, Gap: 160, Bottom: 340}

	// First value rolls the chance, second picks the offset.
	up := NewSpawner(cfg.Obstacles, cfg.Coins, &seqRand{vals: []float64{0, 0}})
	c, ok := up.SpawnCoin(p, 0)
	require.True(t, ok)
	assert.Equal(t, 110.0, c.Y)

	down := NewSpawner(cfg.Obstacles, cfg.Coins, &seqRand{vals: []float64{0, 0.999}})
	c, ok = down.SpawnCoin(p, 0)
	require.True(t, ok)
	assert.Equal(t, 260.0-26-10, c.Y)
}

func TestSpawnCoinChance(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	p := Pipe{X: 800, Width: 60, Top: 100, Gap: 160, Bottom: 340}

	tests := []struct {
		name   string
		policy config.CoinPolicy
		roll   float64
		score  int
		want   bool
	}{
		{"score policy at zero", config.CoinPolicyScore, 0.5, 0, true},
		{"score policy miss", config.CoinPolicyScore, 0.51, 0, false},
		{"score policy grows", config.CoinPolicyScore, 0.69, 10, true},
		{"score policy cap", config.CoinPolicyScore, 0.91, 1000, false},
		{"fixed policy hit", config.CoinPolicyFixed, 0.6, 50, true},
		{"fixed policy miss", config.CoinPolicyFixed, 0.61, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coins := cfg.Coins
			coins.Policy = tt.policy
			s := NewSpawner(cfg.Obstacles, coins, fixedRand(tt.roll))
			_, ok := s.SpawnCoin(p, tt.score)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestSpawnerDue(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewSpawner(cfg.Obstacles, cfg.Coins, nil)

	assert.True(t, s.Due(0))
	assert.False(t, s.Due(1))
	assert.False(t, s.Due(99))
	assert.True(t, s.Due(100))
	assert.True(t, s.Due(300))
}
