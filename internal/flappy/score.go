package flappy

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
)

// Persistent keys.
const (
	KeyBestScore  = "best_score"
	KeyTotalCoins = "total_currency"
)

// KVStore is the string key-value persistence the scorekeeper writes
// through to. storage.Store and storage.Bucket satisfy it.
type KVStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Counter is implemented by stores that can update a numeric value in one
// atomic step. Several sessions sharing a store (one player on two SSH
// connections) then never overwrite each other's progress. Stores without
// it get a read-modify-write through Get and Set.
type Counter interface {
	// Add increments key by delta and returns the new value.
	Add(key string, delta int) (int, error)
	// Raise stores max(current, n) under key and returns the stored value.
	Raise(key string, n int) (int, error)
}

// Scorekeeper tracks the run score and coin count and keeps the best score
// and lifetime coin total in sync with a KVStore. Each pipe and coin is
// credited at most once per run, keyed by its ID.
//
// When the store fails the scorekeeper logs a warning and carries on with
// in-memory values; Durable reports whether every write so far succeeded.
type Scorekeeper struct {
	store  KVStore
	logger *log.Logger

	score   int
	coins   int
	best    int
	total   int
	newBest bool
	durable bool

	pipes *intmap.Map[uint64, struct{}]
	taken *intmap.Map[uint64, struct{}]
}

// NewScorekeeper creates a scorekeeper and loads the persisted values.
// A nil store keeps everything in memory.
func NewScorekeeper(store KVStore, logger *log.Logger) *Scorekeeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	k := &Scorekeeper{
		store:   store,
		logger:  logger,
		durable: store != nil,
	}
	k.best = k.load(KeyBestScore)
	k.total = k.load(KeyTotalCoins)
	k.BeginRun()
	return k
}

func (k *Scorekeeper) load(key string) int {
	if k.store == nil {
		return 0
	}
	raw, ok, err := k.store.Get(key)
	if err != nil {
		k.logger.Warn("failed to load value, using 0", "key", key, "err", err)
		k.durable = false
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		k.logger.Warn("ignoring malformed value", "key", key, "value", raw)
		return 0
	}
	return n
}

// raise persists n as the best score unless the store already holds more,
// and returns the best known value.
func (k *Scorekeeper) raise(n int) int {
	if k.store == nil {
		return max(k.best, n)
	}
	if c, ok := k.store.(Counter); ok {
		stored, err := c.Raise(KeyBestScore, n)
		if err != nil {
			k.fail(KeyBestScore, err)
			return max(k.best, n)
		}
		return max(stored, n)
	}

	stored := k.reload(KeyBestScore, k.best)
	if n <= stored {
		return stored
	}
	k.set(KeyBestScore, n)
	return n
}

// addCoin bumps the persisted coin total by one and returns the new total.
func (k *Scorekeeper) addCoin() int {
	if k.store == nil {
		return k.total + 1
	}
	if c, ok := k.store.(Counter); ok {
		total, err := c.Add(KeyTotalCoins, 1)
		if err != nil {
			k.fail(KeyTotalCoins, err)
			return k.total + 1
		}
		return total
	}

	total := max(k.reload(KeyTotalCoins, k.total), k.total) + 1
	k.set(KeyTotalCoins, total)
	return total
}

// reload reads key again so values written by other sessions are seen.
// It falls back to cached when the store cannot answer.
func (k *Scorekeeper) reload(key string, cached int) int {
	raw, ok, err := k.store.Get(key)
	if err != nil {
		k.fail(key, err)
		return cached
	}
	if !ok {
		return cached
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return cached
	}
	return max(n, cached)
}

func (k *Scorekeeper) set(key string, n int) {
	if err := k.store.Set(key, strconv.Itoa(n)); err != nil {
		k.fail(key, err)
	}
}

func (k *Scorekeeper) fail(key string, err error) {
	k.logger.Warn("failed to persist value, keeping it in memory", "key", key, "err", err)
	k.durable = false
}

// BeginRun resets the per-run counters. Best and total survive.
func (k *Scorekeeper) BeginRun() {
	k.score = 0
	k.coins = 0
	k.newBest = false
	k.pipes = intmap.New[uint64, struct{}](16)
	k.taken = intmap.New[uint64, struct{}](16)
}

// CreditPipe adds one point for pipe id. It returns false if the pipe was
// already credited this run. newBest is true only on the pass that first
// beats the previous best.
func (k *Scorekeeper) CreditPipe(id uint64) (credited, newBest bool) {
	if _, ok := k.pipes.Get(id); ok {
		return false, false
	}
	k.pipes.Put(id, struct{}{})
	k.score++

	if k.score > k.best {
		k.best = k.raise(k.score)
		if k.score == k.best && !k.newBest {
			k.newBest = true
			return true, true
		}
	}
	return true, false
}

// CreditCoin adds coin id to the run count and the lifetime total.
// It returns false if the coin was already credited this run.
func (k *Scorekeeper) CreditCoin(id uint64) bool {
	if _, ok := k.taken.Get(id); ok {
		return false
	}
	k.taken.Put(id, struct{}{})
	k.coins++
	k.total = k.addCoin()
	return true
}

// Score returns the current run score.
func (k *Scorekeeper) Score() int { return k.score }

// Coins returns the coins collected this run.
func (k *Scorekeeper) Coins() int { return k.coins }

// Best returns the best score ever recorded.
func (k *Scorekeeper) Best() int { return k.best }

// Total returns the lifetime coin total.
func (k *Scorekeeper) Total() int { return k.total }

// NewBest reports whether this run has beaten the previous best.
func (k *Scorekeeper) NewBest() bool { return k.newBest }

// Durable reports whether values are persisted.
func (k *Scorekeeper) Durable() bool { return k.durable }
