// Package localstore is the CLI's embedded persistence, used in place
// of internal/db's Postgres+Redis pair when there is no server to talk
// to. It records one row per solvegen solve attempt so `solvegen stats`
// can report history across runs without a Postgres instance.
package localstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a single embedded sqlite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping local store: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS solve_attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		grid_path TEXT NOT NULL,
		dictionary_hash TEXT NOT NULL,
		status TEXT NOT NULL,
		steps INTEGER NOT NULL,
		prefilter_reduction REAL NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_solve_attempts_grid_path ON solve_attempts(grid_path);
	`)
	return err
}

// Attempt is one recorded solvegen run.
type Attempt struct {
	ID                 int64
	GridPath           string
	DictionaryHash     string
	Status             string
	Steps              int
	PrefilterReduction float64
	DurationMS         int64
	CreatedAt          time.Time
}

// RecordAttempt inserts one row after a solve/bench run completes.
func (s *Store) RecordAttempt(a Attempt) error {
	_, err := s.db.Exec(`
		INSERT INTO solve_attempts (grid_path, dictionary_hash, status, steps, prefilter_reduction, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.GridPath, a.DictionaryHash, a.Status, a.Steps, a.PrefilterReduction, a.DurationMS, a.CreatedAt,
	)
	return err
}

// Attempts returns the most recent attempts, newest first, optionally
// filtered to a single grid path (empty string means no filter).
func (s *Store) Attempts(gridPath string, limit int) ([]Attempt, error) {
	var rows *sql.Rows
	var err error
	if gridPath == "" {
		rows, err = s.db.Query(`
			SELECT id, grid_path, dictionary_hash, status, steps, prefilter_reduction, duration_ms, created_at
			FROM solve_attempts ORDER BY id DESC LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(`
			SELECT id, grid_path, dictionary_hash, status, steps, prefilter_reduction, duration_ms, created_at
			FROM solve_attempts WHERE grid_path = ? ORDER BY id DESC LIMIT ?`, gridPath, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.GridPath, &a.DictionaryHash, &a.Status, &a.Steps, &a.PrefilterReduction, &a.DurationMS, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Summary aggregates attempts by status, for the CLI's `stats` command.
type Summary struct {
	Status     string
	Count      int
	AvgSteps   float64
	AvgMillis  float64
}

func (s *Store) SummaryByStatus() ([]Summary, error) {
	rows, err := s.db.Query(`
		SELECT status, COUNT(*), AVG(steps), AVG(duration_ms)
		FROM solve_attempts GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.Status, &sm.Count, &sm.AvgSteps, &sm.AvgMillis); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}
