package flappy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestSession(t *testing.T, cfg config.FlappyConfig, store KVStore, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithRand(fixedRand(0.5))}, opts...)
	s, err := NewSession(cfg, store, opts...)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.Gap = 600

	_, err := NewSession(cfg, nil)
	assert.ErrorIs(t, err, config.ErrGapTooLarge)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestStateTransitions(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	assert.Equal(t, StateMenu, s.State())

	assert.ErrorIs(t, s.Retry(), ErrInvalidState)
	assert.ErrorIs(t, s.Back(), ErrInvalidState)

	require.NoError(t, s.Start())
	assert.Equal(t, StateRunning, s.State())
	assert.ErrorIs(t, s.Start(), ErrInvalidState)
	assert.ErrorIs(t, s.SelectSkin(1), ErrInvalidState)

	// Fall to the ground.
	for s.State() == StateRunning {
		s.Update(step)
	}
	assert.Equal(t, StateOver, s.State())
	assert.Equal(t, CollisionGround, s.Snapshot().Death)

	require.NoError(t, s.Back())
	assert.Equal(t, StateMenu, s.State())
	require.NoError(t, s.Start())
	assert.Equal(t, StateRunning, s.State())
}

func TestJumpIgnoredOutsideRun(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	rec := &recorder{}
	s.Events().Subscribe(rec.Handle)

	assert.False(t, s.TriggerJump())
	assert.Equal(t, 0.0, s.Snapshot().Bird.Velocity)

	require.NoError(t, s.Start())
	assert.True(t, s.TriggerJump())
	assert.Equal(t, -8.0, s.Snapshot().Bird.Velocity)
	assert.Equal(t, 1, rec.Count(EventJump))

	s.Pause()
	assert.False(t, s.TriggerJump())
	assert.Equal(t, 1, rec.Count(EventJump))
}

func TestUpdateZeroIsNoop(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	require.NoError(t, s.Start())
	s.TriggerJump()
	runTicks(s, 5)

	before := s.Snapshot()
	assert.False(t, s.Update(0).Ticked)
	assert.False(t, s.Update(0).Ticked)
	assert.Equal(t, before, s.Snapshot())
}

func TestUpdateMatchesPhysics(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	require.NoError(t, s.Start())
	s.TriggerJump()

	for i := 0; i < 30; i++ {
		prev := s.Snapshot().Bird
		dt := step / 2
		if i%3 == 0 {
			dt = step * 2
		}
		scale := dt.Seconds() * 50

		s.Update(dt)
		cur := s.Snapshot().Bird

		assert.InDelta(t, prev.Velocity+0.5*scale, cur.Velocity, 1e-9)
		assert.InDelta(t, prev.Y+cur.Velocity*scale, cur.Y, 1e-9)
		assert.Equal(t, prev.X, cur.X)
		assert.Equal(t, prev.Width, cur.Width)
	}
}

func TestUpdateClampsLongFrames(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	require.NoError(t, s.Start())

	s.Update(10 * time.Second)
	bird := s.Snapshot().Bird
	// MaxStepScale 3: v = 1.5, y += 4.5
	assert.InDelta(t, 1.5, bird.Velocity, 1e-9)
	assert.InDelta(t, 285+4.5, bird.Y, 1e-9)
}

func TestPausedSessionDoesNotAdvance(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	require.NoError(t, s.Start())
	runTicks(s, 3)

	assert.True(t, s.Pause())
	before := s.Snapshot()
	runTicks(s, 10)
	assert.Equal(t, before, s.Snapshot())

	assert.False(t, s.Pause())
	runTicks(s, 1)
	assert.Equal(t, before.Tick+1, s.Snapshot().Tick)
}

// Scenario A: a jump followed by free fall stays in bounds.
func TestScenarioJumpThenFall(t *testing.T) {
	cfg := testConfig()
	cfg.Player.StartY = 250
	s := newTestSession(t, cfg, nil)
	require.NoError(t, s.Start())
	assert.Equal(t, 250.0, s.Snapshot().Bird.Y)

	require.True(t, s.TriggerJump())
	runTicks(s, 10)

	snap := s.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.InDelta(t, -3.0, snap.Bird.Velocity, 1e-9)
	assert.InDelta(t, 197.5, snap.Bird.Y, 1e-9)

	// Once the impulse is spent the bird falls: y grows every tick.
	prevY := snap.Bird.Y
	for i := 0; i < 30; i++ {
		s.Update(step)
		y := s.Snapshot().Bird.Y
		if i >= 6 {
			assert.Greater(t, y, prevY)
		}
		prevY = y
	}

	snap = s.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.InDelta(t, 340.0, snap.Bird.Y, 1e-9)
	assert.Equal(t, 40, snap.Tick)
}

// Scenario B: flying through the ceiling ends the run.
func TestScenarioCeilingEndsRun(t *testing.T) {
	store := newMemStore(KeyBestScore, "3")
	cfg := testConfig()
	cfg.Player.StartY = 250
	s := newTestSession(t, cfg, store)
	rec := &recorder{}
	s.Events().Subscribe(rec.Handle)
	require.NoError(t, s.Start())

	var last TickResult
	for i := 0; i < 100 && s.State() == StateRunning; i++ {
		s.TriggerJump()
		last = s.Update(step)
	}

	require.Equal(t, StateOver, s.State())
	assert.Equal(t, CollisionCeiling, last.Collision)
	assert.Equal(t, 1, rec.Count(EventDeath))

	final := s.Snapshot()
	assert.Equal(t, 0, final.Score)
	assert.Equal(t, 3, final.Best, "best only moves when beaten")
	assert.Equal(t, "3", store.data[KeyBestScore])

	// Frozen.
	assert.False(t, s.Update(step).Ticked)
	assert.False(t, s.TriggerJump())
	assert.Equal(t, final, s.Snapshot())
}

// Scenario C: collecting a coin writes the total through immediately.
func TestScenarioCoinWritesThrough(t *testing.T) {
	store := newMemStore(KeyTotalCoins, "5")
	// Gap is 220..380 and the first coin sits at y 300; a bird at 290
	// overlaps it.
	s := newTestSession(t, hoverConfig(290), store)
	rec := &recorder{}
	s.Events().Subscribe(rec.Handle)
	require.NoError(t, s.Start())

	first := s.Update(step)
	require.True(t, first.Spawned)
	require.Len(t, s.Snapshot().Coins, 1)
	coin := s.Snapshot().Coins[0]
	assert.Equal(t, 300.0, coin.Y)

	// Coin x after n ticks is 817 - 2n; it reaches the bird's right edge
	// (120) on tick 349.
	results := runTicks(s, 347)
	for _, r := range results {
		assert.Zero(t, r.Collected)
	}
	assert.Equal(t, "5", store.data[KeyTotalCoins])

	r := s.Update(step)
	assert.Equal(t, 1, r.Collected)
	assert.Equal(t, "6", store.data[KeyTotalCoins])

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.RunCoins)
	assert.Equal(t, 6, snap.TotalCoins)
	assert.Equal(t, 1, rec.Count(EventCoin))
	for _, c := range snap.Coins {
		assert.NotEqual(t, coin.ID, c.ID, "collected coin is culled")
	}

	// Dying afterwards does not undo the total.
	for s.State() == StateRunning {
		s.TriggerJump()
		s.Update(step)
	}
	assert.Equal(t, "6", store.data[KeyTotalCoins])
}

func TestPipeScoredExactlyOnce(t *testing.T) {
	s := newTestSession(t, hoverConfig(250), newMemStore())
	rec := &recorder{}
	s.Events().Subscribe(rec.Handle)
	require.NoError(t, s.Start())

	// The first pipe's trailing edge is at 858 - 2n after n ticks and
	// falls behind the bird (x 80) on tick 391.
	runTicks(s, 390)
	snap := s.Snapshot()
	require.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 0, snap.Score)
	assert.False(t, snap.Pipes[0].Passed)

	r := s.Update(step)
	assert.Equal(t, 1, r.Passed)
	snap = s.Snapshot()
	assert.Equal(t, 1, snap.Score)
	assert.True(t, snap.Pipes[0].Passed)
	assert.True(t, snap.NewBest)
	assert.Equal(t, 1, rec.Count(EventNewBest))

	// The second pipe spawned on tick 100 is 100 ticks behind.
	results := runTicks(s, 99)
	for _, r := range results {
		assert.Zero(t, r.Passed)
	}
	assert.Equal(t, 1, s.Snapshot().Score)

	r = s.Update(step)
	assert.Equal(t, 1, r.Passed)
	assert.Equal(t, 2, s.Snapshot().Score)
	assert.Equal(t, 2, rec.Count(EventScore))
	assert.Equal(t, 1, rec.Count(EventNewBest), "new best fires once per run")
}

func TestPipeCollisionEndsRun(t *testing.T) {
	// The gap is 220..380; a bird at 100 flies straight into the top pipe.
	s := newTestSession(t, hoverConfig(100), nil)
	require.NoError(t, s.Start())

	var last TickResult
	for i := 0; i < 1000 && s.State() == StateRunning; i++ {
		last = s.Update(step)
	}
	assert.Equal(t, StateOver, s.State())
	assert.Equal(t, CollisionPipe, last.Collision)
	assert.Equal(t, CollisionPipe, s.Snapshot().Death)
}

func TestRetryResetsRun(t *testing.T) {
	store := newMemStore()
	s := newTestSession(t, hoverConfig(290), store)
	require.NoError(t, s.Start())

	// Collect the first coin, score the first pipe, then crash.
	runTicks(s, 391)
	snap := s.Snapshot()
	require.Equal(t, 1, snap.Score)
	require.Equal(t, 1, snap.RunCoins)
	for s.State() == StateRunning {
		s.TriggerJump()
		s.Update(step)
	}

	require.NoError(t, s.Retry())
	snap = s.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.RunCoins)
	assert.Equal(t, 0, snap.Tick)
	assert.Empty(t, snap.Pipes)
	assert.Empty(t, snap.Coins)
	assert.False(t, snap.NewBest)
	assert.Equal(t, 0.0, snap.Blend)
	assert.Equal(t, 290.0, snap.Bird.Y)
	assert.Equal(t, 0.0, snap.Bird.Velocity)

	assert.Equal(t, 1, snap.Best)
	assert.Equal(t, 1, snap.TotalCoins)
	assert.Equal(t, "1", store.data[KeyBestScore])
	assert.Equal(t, "1", store.data[KeyTotalCoins])
}

func TestSessionWithoutDurableStore(t *testing.T) {
	store := newMemStore()
	store.failSet = true
	s := newTestSession(t, hoverConfig(290), store)
	require.NoError(t, s.Start())

	runTicks(s, 391)
	snap := s.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, 1, snap.Best)
	assert.Equal(t, 1, snap.TotalCoins)
	assert.False(t, snap.Durable)
	assert.Empty(t, store.data)
}

func TestDefaultStartIsCentred(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	assert.Equal(t, 285.0, s.Snapshot().Bird.Y)
	assert.Equal(t, 80.0, s.Snapshot().Bird.X)
}

func TestResize(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)

	require.NoError(t, s.Resize(1600, 400))
	snap := s.Snapshot()
	assert.Equal(t, 160.0, snap.Bird.X)
	assert.Equal(t, 1600.0, snap.Width)
	assert.Equal(t, 185.0, snap.Bird.Y)

	err := s.Resize(800, 200)
	assert.ErrorIs(t, err, config.ErrGapTooLarge)
	assert.Equal(t, 1600.0, s.Snapshot().Width, "rejected resize keeps the old size")

	require.NoError(t, s.Start())
	s.Update(step)
	assert.Equal(t, 1600.0, s.Snapshot().Pipes[0].X+2, "pipes spawn at the new right edge")
}

func TestSelectSkin(t *testing.T) {
	s := newTestSession(t, testConfig(), nil, WithSkin(2))
	assert.Equal(t, "Cardinal", s.Snapshot().Skin.Name)

	require.NoError(t, s.SelectSkin(8))
	assert.Equal(t, 8, s.Snapshot().Skin.ID)

	assert.ErrorIs(t, s.SelectSkin(9), ErrInvalidSkin)
	assert.ErrorIs(t, s.SelectSkin(-1), ErrInvalidSkin)
	assert.Equal(t, 8, s.Snapshot().Skin.ID)
	assert.Len(t, Skins(), 9)
}

func TestSessionEvents(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	rec := &recorder{}
	s.Events().Subscribe(rec.Handle)

	require.NoError(t, s.Start())
	s.TriggerJump()
	for s.State() == StateRunning {
		s.Update(step)
	}
	require.NoError(t, s.Back())

	var kinds []EventKind
	for _, e := range rec.Events() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventMenu, EventRunStart, EventJump, EventDeath, EventMenu}, kinds)

	death := rec.Events()[3]
	assert.Equal(t, CollisionGround, death.Cause)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	require.NoError(t, s.Start())
	s.Update(step)

	snap := s.Snapshot()
	require.NotEmpty(t, snap.Pipes)
	snap.Pipes[0].X = -1000

	assert.NotEqual(t, -1000.0, s.Snapshot().Pipes[0].X)
}

func TestDayNightRunsDuringSession(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.MaxStepScale = 0
	cfg.Physics.Gravity = 0
	s := newTestSession(t, cfg, nil)
	require.NoError(t, s.Start())

	// 12 seconds in one frame: 10s day, then 2s of night at rate 0.5.
	s.Update(12 * time.Second)
	snap := s.Snapshot()
	require.Equal(t, StateRunning, snap.State)
	assert.True(t, snap.Night)
	assert.InDelta(t, 1.0, snap.Blend, 1e-9)
}
