package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sqlx.DB for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProgressRepo returns a ProgressRepo backed by this store.
func (s *Store) ProgressRepo() ProgressRepo {
	return &progressRepo{db: s.db, seq: s.seq}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			learner_id TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			data TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_learner_ts ON snapshots (learner_id, timestamp)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT NOT NULL,
			learner_id TEXT NOT NULL,
			question_id TEXT NOT NULL,
			skill_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			correct INTEGER NOT NULL,
			choice_index INTEGER,
			attempt INTEGER NOT NULL,
			points INTEGER NOT NULL,
			time_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answer_events_skill ON answer_events (skill_id)`,
		`CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events (session_id)`,
		`CREATE TABLE IF NOT EXISTS badge_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp TIMESTAMP NOT NULL,
			session_id TEXT NOT NULL,
			learner_id TEXT NOT NULL,
			badge_id TEXT NOT NULL,
			badge_type TEXT NOT NULL,
			tier INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_badge_events_type ON badge_events (badge_type)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LETTERLY_DB environment variable
// 2. $XDG_DATA_HOME/letterly/letterly.db
// 3. ~/.local/share/letterly/letterly.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LETTERLY_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "letterly", "letterly.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
