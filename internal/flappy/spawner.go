package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Rand is the randomness the spawner consumes. *rand.Rand satisfies it;
// tests inject scripted sequences.
type Rand interface {
	Float64() float64
}

// Spawner creates pipes on a fixed tick interval and decides whether each
// pipe carries a coin.
type Spawner struct {
	obstacles config.Obstacles
	coins     config.Coins
	rng       Rand
	nextID    uint64
}

// NewSpawner creates a spawner. A nil rng falls back to a time-independent
// source seeded with 1.
func NewSpawner(obstacles config.Obstacles, coins config.Coins, rng Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Spawner{
		obstacles: obstacles,
		coins:     coins,
		rng:       rng,
	}
}

// Due reports whether a pipe should spawn on the given tick.
func (s *Spawner) Due(tick int) bool {
	return tick%s.obstacles.SpawnInterval == 0
}

// SpawnPipe creates a pipe at the right edge of a width x height playfield.
// The top segment is uniform in [min, height-gap-min].
func (s *Spawner) SpawnPipe(width, height float64) Pipe {
	minH := s.obstacles.MinHeight
	maxH := height - s.obstacles.Gap - minH
	top := minH
	if maxH > minH {
		top = minH + math.Floor(s.rng.Float64()*(maxH-minH))
	}

	s.nextID++
	return Pipe{
		ID:     s.nextID,
		X:      width,
		Width:  s.obstacles.Width,
		Top:    top,
		Gap:    s.obstacles.Gap,
		Bottom: height - top - s.obstacles.Gap,
	}
}

// SpawnCoin rolls the coin chance for pipe p and, on success, places a coin
// near the gap centre. The coin always stays Margin away from both gap edges.
func (s *Spawner) SpawnCoin(p Pipe, score int) (Coin, bool) {
	if s.rng.Float64() > s.coins.SpawnChance(score) {
		return Coin{}, false
	}

	size := s.coins.Size
	center := p.GapTop() + p.Gap/2
	offset := s.rng.Float64()*2*s.coins.Jitter - s.coins.Jitter

	y := center + offset
	if lo := p.GapTop() + s.coins.Margin; y < lo {
		y = lo
	}
	if hi := p.GapBottom() - size - s.coins.Margin; y > hi {
		y = hi
	}

	s.nextID++
	return Coin{
		ID:    s.nextID,
		X:     p.X + p.Width/2 - size/2,
		Y:     y,
		Size:  size,
		Scale: 1,
	}, true
}
