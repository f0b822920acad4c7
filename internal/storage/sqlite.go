// Package storage provides SQLite-based persistence for the flappy game:
// a string key-value table for best score and coin totals, and a run
// history table for the scoreboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LocalPlayer is the player name used for runs played in the local terminal.
const LocalPlayer = "local"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID        int64
	Player    string
	Score     int
	Coins     int
	NewBest   bool
	Skin      string
	Ticks     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			new_best INTEGER NOT NULL DEFAULT 0,
			skin TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(player, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key. ok is false if the key is absent.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// Add increments the integer stored under key by delta and returns the new
// value. A missing or non-numeric value counts as 0.
func (s *Store) Add(key string, delta int) (int, error) {
	return s.upsertInt(key, delta, `CAST(kv.value AS INTEGER) + CAST(excluded.value AS INTEGER)`)
}

// Raise stores n under key unless the stored integer is already larger, and
// returns the value left in the table.
func (s *Store) Raise(key string, n int) (int, error) {
	return s.upsertInt(key, n, `MAX(CAST(kv.value AS INTEGER), CAST(excluded.value AS INTEGER))`)
}

// upsertInt inserts n or, when key exists, replaces the value with expr.
// The statement runs as one write, so concurrent callers never lose updates.
func (s *Store) upsertInt(key string, n int, expr string) (int, error) {
	var out int
	err := s.db.QueryRow(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = CAST(`+expr+` AS TEXT), updated_at = excluded.updated_at
		 RETURNING CAST(value AS INTEGER)`,
		key, n,
	).Scan(&out)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update %q: %w", key, err)
	}
	return out, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %q: %w", key, err)
	}
	return nil
}

// Keys lists the keys starting with prefix in lexical order.
func (s *Store) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key`,
		prefix, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return keys, nil
}

// Bucket is a namespaced view of the key-value table. Keys are stored as
// "<name>/<key>", so two buckets never see each other's values.
type Bucket struct {
	store *Store
	name  string
}

// Bucket returns the key-value namespace for name.
func (s *Store) Bucket(name string) *Bucket {
	return &Bucket{store: s, name: name}
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Get returns the value stored under key in this bucket.
func (b *Bucket) Get(key string) (string, bool, error) {
	return b.store.Get(b.key(key))
}

// Set stores value under key in this bucket.
func (b *Bucket) Set(key, value string) error {
	return b.store.Set(b.key(key), value)
}

// Add increments key in this bucket. See Store.Add.
func (b *Bucket) Add(key string, delta int) (int, error) {
	return b.store.Add(b.key(key), delta)
}

// Raise keeps the larger of n and the stored value. See Store.Raise.
func (b *Bucket) Raise(key string, n int) (int, error) {
	return b.store.Raise(b.key(key), n)
}

func (b *Bucket) key(k string) string {
	return b.name + "/" + k
}

// Buckets lists the bucket names that hold at least one key. Bucket keys
// never contain "/", so the name is everything before the last one.
func (s *Store) Buckets() ([]string, error) {
	keys, err := s.Keys("")
	if err != nil {
		return nil, err
	}
	var names []string
	seen := map[string]bool{}
	for _, k := range keys {
		i := strings.LastIndex(k, "/")
		if i < 0 {
			continue
		}
		name := k[:i]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Player == "" {
		r.Player = LocalPlayer
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (player, score, coins, new_best, skin, ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Player, r.Score, r.Coins, r.NewBest, r.Skin, r.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best runs, highest score first. An empty player
// ranks runs of all players together.
func (s *Store) TopRuns(player string, limit int) ([]Run, error) {
	return s.queryRuns(player, "score DESC, id ASC", limit)
}

// RecentRuns retrieves the latest runs, newest first.
func (s *Store) RecentRuns(player string, limit int) ([]Run, error) {
	return s.queryRuns(player, "id DESC", limit)
}

func (s *Store) queryRuns(player, order string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, coins, new_best, skin, ticks, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY `+order+`
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Coins, &r.NewBest, &r.Skin, &r.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes the run history of player, or of everyone when player
// is empty. Key-value entries are kept.
func (s *Store) ClearRuns(player string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR player = ?", player, player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// PlayerStats contains aggregated statistics over a player's runs.
type PlayerStats struct {
	Player     string
	Runs       int
	Best       int
	AvgScore   float64
	Coins      int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for player.
func (s *Store) Stats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(coins), 0), MAX(created_at)
		 FROM runs WHERE player = ?`,
		player,
	).Scan(&stats.Runs, &stats.Best, &stats.AvgScore, &stats.Coins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every player that has a run.
func (s *Store) AllStats() ([]PlayerStats, error) {
	rows, err := s.db.Query(
		`SELECT player, COUNT(*), MAX(score), AVG(score), SUM(coins), MAX(created_at)
		 FROM runs
		 GROUP BY player
		 ORDER BY MAX(score) DESC, player`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all player stats: %w", err)
	}
	defer rows.Close()

	var all []PlayerStats
	for rows.Next() {
		var ps PlayerStats
		var lastPlayed any
		if err := rows.Scan(&ps.Player, &ps.Runs, &ps.Best, &ps.AvgScore, &ps.Coins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		all = append(all, ps)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return all, nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
