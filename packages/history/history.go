// Package history records completed invocations in a local SQLite
// database so past calls can be reviewed with the history subcommand.
// Recording is best-effort and never fails an invocation.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded invocation.
type Entry struct {
	ID         int64
	Time       time.Time
	Method     string
	URL        string
	StatusCode int
	DurationMs int64
}

// Store persists invocation history.
type Store struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS invocations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	time        TIMESTAMP NOT NULL,
	method      TEXT NOT NULL,
	url         TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
)`

// DefaultPath returns the on-disk location of the history database,
// honoring XDG_STATE_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "mealie-api", "history.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "mealie-api", "history.db"), nil
}

// Open opens the history database at path, creating the directory and
// schema when needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open history database: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot initialize history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one invocation.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO invocations (time, method, url, status_code, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		e.Time, e.Method, e.URL, e.StatusCode, e.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("cannot record invocation: %w", err)
	}
	return nil
}

// Recent returns the latest n invocations, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, time, method, url, status_code, duration_ms FROM invocations ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("cannot read history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Time, &e.Method, &e.URL, &e.StatusCode, &e.DurationMs); err != nil {
			return nil, fmt.Errorf("cannot scan history row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
