package flappy

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	State  State
	Paused bool

	Width, Height float64

	Bird  Bird
	Pipes []Pipe
	Coins []Coin

	Score      int
	RunCoins   int
	Best       int
	TotalCoins int
	NewBest    bool
	Durable    bool

	Night bool
	Blend float64

	Tick  int
	Skin  Skin
	Death Collision
}

// Snapshot copies the current session state. The returned slices are not
// shared with the session.
func (s *Session) Snapshot() Snapshot {
	skin, _ := SkinByID(s.skin)

	pipes := make([]Pipe, len(s.pipes))
	copy(pipes, s.pipes)
	coins := make([]Coin, len(s.coins))
	copy(coins, s.coins)

	return Snapshot{
		State:      s.state,
		Paused:     s.paused,
		Width:      s.width,
		Height:     s.height,
		Bird:       s.bird,
		Pipes:      pipes,
		Coins:      coins,
		Score:      s.score.Score(),
		RunCoins:   s.score.Coins(),
		Best:       s.score.Best(),
		TotalCoins: s.score.Total(),
		NewBest:    s.score.NewBest(),
		Durable:    s.score.Durable(),
		Night:      s.cycle.Night(),
		Blend:      s.cycle.Blend(),
		Tick:       s.tick,
		Skin:       skin,
		Death:      s.death,
	}
}
