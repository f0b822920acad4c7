package flappy

import (
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// step is one nominal tick at testConfig's tick rate (scale exactly 1).
const step = 20 * time.Millisecond

// fixedRand returns the same value forever.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// seqRand replays vals in a loop.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// memStore is an in-memory KVStore that can be told to fail.
type memStore struct {
	data     map[string]string
	failGet  bool
	failSet  bool
	setCalls int
}

var errStore = errors.New("store unavailable")

func newMemStore(kv ...string) *memStore {
	m := &memStore{data: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		m.data[kv[i]] = kv[i+1]
	}
	return m
}

func (m *memStore) Get(key string) (string, bool, error) {
	if m.failGet {
		return "", false, errStore
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.setCalls++
	if m.failSet {
		return errStore
	}
	m.data[key] = value
	return nil
}

// testConfig is the default config with a tick rate that makes step an
// exact nominal tick.
func testConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.TickRate = 50
	return cfg
}

// hoverConfig disables gravity so the bird holds its height, which makes
// long deterministic runs through pipe gaps possible.
func hoverConfig(startY float64) config.FlappyConfig {
	cfg := testConfig()
	cfg.Physics.Gravity = 0
	cfg.Player.StartY = startY
	return cfg
}

func runTicks(s *Session, n int) (results []TickResult) {
	for i := 0; i < n; i++ {
		results = append(results, s.Update(step))
	}
	return results
}

// recorder is a Handler that keeps every event it sees.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

// Handle records e.
func (r *recorder) Handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of kind k were recorded.
func (r *recorder) Count(k EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
