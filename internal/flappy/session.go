package flappy

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Session errors.
var (
	ErrInvalidState = errors.New("flappy: operation not allowed in current state")
	ErrInvalidSkin  = errors.New("flappy: unknown skin")
)

// State is the top-level session state.
type State int

const (
	StateMenu State = iota
	StateRunning
	StateOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// TickResult summarises what one Update did.
type TickResult struct {
	Ticked    bool      // False when the update was skipped
	Spawned   bool      // A pipe was created
	Passed    int       // Pipes scored this tick
	Collected int       // Coins collected this tick
	Collision Collision // Non-zero when the run ended this tick
}

// Session owns one player's game: the bird, pipes, coins, scores, the
// day/night cycle and the Menu/Running/Over state machine.
// A Session is not safe for concurrent use.
type Session struct {
	cfg    config.FlappyConfig
	rng    Rand
	logger *log.Logger
	bus    *Bus

	spawner    *Spawner
	difficulty *config.DifficultyManager
	score      *Scorekeeper
	cycle      *DayNight

	width, height float64
	playerX       float64

	state  State
	paused bool
	skin   int
	bird   Bird
	pipes  []Pipe
	coins  []Coin
	tick   int
	death  Collision
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for pipe and coin placement.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSeed seeds a private math/rand source.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithBus shares an existing event bus.
func WithBus(b *Bus) Option {
	return func(s *Session) { s.bus = b }
}

// WithSkin preselects a skin. Unknown ids are ignored.
func WithSkin(id int) Option {
	return func(s *Session) {
		if _, ok := SkinByID(id); ok {
			s.skin = id
		}
	}
}

// NewSession validates cfg and creates a session in the Menu state.
// store may be nil for a purely in-memory session.
func NewSession(cfg config.FlappyConfig, store KVStore, opts ...Option) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		width:   cfg.Playfield.Width,
		height:  cfg.Playfield.Height,
		playerX: cfg.Player.X,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.bus == nil {
		s.bus = NewBus()
	}

	s.spawner = NewSpawner(cfg.Obstacles, cfg.Coins, s.rng)
	s.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	s.score = NewScorekeeper(store, s.logger)
	s.cycle = NewDayNight(cfg.DayNight)
	s.reset()

	return s, nil
}

// Events returns the session's event bus.
func (s *Session) Events() *Bus {
	return s.bus
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Start begins a run from the menu.
func (s *Session) Start() error {
	if s.state != StateMenu {
		return fmt.Errorf("%w: start from %s", ErrInvalidState, s.state)
	}
	s.begin()
	return nil
}

// Retry begins a fresh run after a death.
func (s *Session) Retry() error {
	if s.state != StateOver {
		return fmt.Errorf("%w: retry from %s", ErrInvalidState, s.state)
	}
	s.begin()
	return nil
}

// Back returns to the menu after a death. The finished run stays visible in
// snapshots until the next Start.
func (s *Session) Back() error {
	if s.state != StateOver {
		return fmt.Errorf("%w: back from %s", ErrInvalidState, s.state)
	}
	s.state = StateMenu
	s.emit(EventMenu)
	return nil
}

// Pause toggles the pause flag of a running game and returns the new value.
// Outside a run it does nothing.
func (s *Session) Pause() bool {
	if s.state != StateRunning {
		return false
	}
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether the running game is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// SelectSkin changes the bird skin. Only allowed outside a run.
func (s *Session) SelectSkin(id int) error {
	if s.state == StateRunning {
		return fmt.Errorf("%w: select skin while running", ErrInvalidState)
	}
	if _, ok := SkinByID(id); !ok {
		return fmt.Errorf("%w: %d", ErrInvalidSkin, id)
	}
	if s.skin != id {
		s.skin = id
		s.emit(EventMenu)
	}
	return nil
}

// Resize changes the playfield size. The bird's horizontal position scales
// with the width; everything else keeps its coordinates.
func (s *Session) Resize(width, height float64) error {
	if err := config.CheckPlayfield(s.cfg, width, height); err != nil {
		return err
	}
	s.playerX = s.cfg.Player.X * width / s.cfg.Playfield.Width
	s.bird.X = s.playerX
	s.width = width
	s.height = height
	if s.state != StateRunning {
		s.bird.Y = s.startY()
	}
	return nil
}

// TriggerJump flaps the bird. It reports false when no run is active.
func (s *Session) TriggerJump() bool {
	if s.state != StateRunning || s.paused {
		return false
	}
	s.bird.Velocity = s.cfg.Physics.JumpImpulse
	s.emit(EventJump)
	return true
}

// Update advances the simulation by dt. One nominal tick is 1/TickRate
// seconds; longer frames integrate proportionally up to MaxStepScale ticks.
// Updates outside a run, while paused, or with dt <= 0 change nothing.
func (s *Session) Update(dt time.Duration) TickResult {
	var res TickResult
	if s.state != StateRunning || s.paused || dt <= 0 {
		return res
	}
	res.Ticked = true

	scale := dt.Seconds() * s.cfg.Physics.TickRate
	if limit := s.cfg.Physics.MaxStepScale; limit > 0 && scale > limit {
		scale = limit
		dt = time.Duration(scale / s.cfg.Physics.TickRate * float64(time.Second))
	}

	s.cycle.Advance(dt)

	Integrate(&s.bird, s.cfg.Physics.Gravity, scale)
	if c := CheckBounds(s.bird, s.height); c != CollisionNone {
		s.die(c)
		res.Collision = c
		return res
	}

	if s.spawner.Due(s.tick) {
		p := s.spawner.SpawnPipe(s.width, s.height)
		s.pipes = append(s.pipes, p)
		if c, ok := s.spawner.SpawnCoin(p, s.score.Score()); ok {
			s.coins = append(s.coins, c)
		}
		res.Spawned = true
	}

	dx := s.difficulty.Speed(s.cfg.Obstacles.Speed, s.score.Score(), s.tick) * scale
	for i := range s.pipes {
		s.pipes[i].X -= dx
	}
	for i := range s.coins {
		s.coins[i].X -= dx
		s.coins[i].spin(s.cfg.Coins.SpinRate * scale)
	}

	for _, p := range s.pipes {
		if HitsPipe(s.bird, p) {
			s.die(CollisionPipe)
			res.Collision = CollisionPipe
			return res
		}
	}

	for i := range s.pipes {
		p := &s.pipes[i]
		if p.Passed || !HasPassed(s.bird, *p) {
			continue
		}
		p.Passed = true
		credited, best := s.score.CreditPipe(p.ID)
		if !credited {
			continue
		}
		res.Passed++
		s.emit(EventScore)
		if best {
			s.emit(EventNewBest)
		}
	}

	for i := range s.coins {
		c := &s.coins[i]
		if c.Collected || !Touches(s.bird, *c) {
			continue
		}
		c.Collected = true
		if s.score.CreditCoin(c.ID) {
			res.Collected++
			s.emit(EventCoin)
		}
	}

	s.pipes = CullPipes(s.pipes)
	s.coins = CullCoins(s.coins)
	s.tick++

	return res
}

func (s *Session) begin() {
	s.reset()
	s.state = StateRunning
	s.logger.Debug("run started", "skin", s.skin, "best", s.score.Best())
	s.emit(EventMenu)
	s.emit(EventRunStart)
}

func (s *Session) reset() {
	s.bird = Bird{
		X:      s.playerX,
		Y:      s.startY(),
		Width:  s.cfg.Player.Width,
		Height: s.cfg.Player.Height,
	}
	s.pipes = nil
	s.coins = nil
	s.tick = 0
	s.paused = false
	s.death = CollisionNone
	s.score.BeginRun()
	s.cycle.Reset()
}

func (s *Session) startY() float64 {
	y := s.cfg.Player.StartY
	if y <= 0 || y+s.cfg.Player.Height > s.height {
		y = (s.height - s.cfg.Player.Height) / 2
	}
	return y
}

func (s *Session) die(c Collision) {
	s.state = StateOver
	s.paused = false
	s.death = c
	s.logger.Info("run over",
		"cause", c,
		"score", s.score.Score(),
		"coins", s.score.Coins(),
		"best", s.score.Best(),
		"ticks", s.tick,
	)
	s.emit(EventDeath)
}

func (s *Session) emit(kind EventKind) {
	s.bus.Emit(Event{
		Kind:  kind,
		Tick:  s.tick,
		Score: s.score.Score(),
		Coins: s.score.Coins(),
		Cause: s.death,
	})
}
