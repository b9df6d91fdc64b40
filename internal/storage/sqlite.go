// Package storage persists finished runs in a local SQLite database.
// The ranking is best-effort: a missing or corrupt database never takes
// the game down, callers degrade to an empty ranking instead.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// RunEntry is one finished run in the ranking.
type RunEntry struct {
	ID        int64
	Name      string
	Score     int
	Distance  int
	Crystals  int
	Seed      int64
	EndReason string
	CreatedAt time.Time
}

// Store wraps the SQLite database holding the run ranking.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. A leading ~ is
// expanded to the user's home directory.
func Open(path string) (*Store, error) {
	path = expandHome(path)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		score      INTEGER NOT NULL,
		distance   INTEGER NOT NULL,
		crystals   INTEGER NOT NULL,
		seed       INTEGER NOT NULL,
		end_reason TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("storage: migrate schema: %w", err)
	}
	return nil
}

// SaveRun inserts a finished run and returns its id.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		name = "anonymous"
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (name, score, distance, crystals, seed, end_reason) VALUES (?, ?, ?, ?, ?, ?)`,
		name, e.Score, e.Distance, e.Crystals, e.Seed, e.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: last insert id: %w", err)
	}
	return id, nil
}

// TopRuns returns up to limit runs ordered by score descending, newest
// first among ties. Rows that fail to scan are skipped rather than
// failing the whole ranking.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 12
	}
	rows, err := s.db.Query(
		`SELECT id, name, score, distance, crystals, seed, end_reason, created_at
		 FROM runs ORDER BY score DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query top runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var created any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Distance, &e.Crystals, &e.Seed, &e.EndReason, &created); err != nil {
			continue
		}
		e.CreatedAt = parseTimestamp(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return entries, fmt.Errorf("storage: iterate top runs: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score on record, zero for an empty store.
func (s *Store) HighScore() (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(score) FROM runs`).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearRuns deletes the entire ranking.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("storage: clear runs: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// parseTimestamp copes with the driver returning either time.Time or
// the raw SQLite text representation.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case []byte:
		return parseTimestamp(string(t))
	}
	return time.Time{}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
