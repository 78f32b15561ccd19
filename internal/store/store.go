package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arbor-sh/arbor/internal/defs"
	"github.com/arbor-sh/arbor/internal/resilience"
)

const (
	// openRetries is the number of retries after the initial open attempt.
	openRetries = 2

	// openRetryDelay is the fixed delay between open attempts.
	openRetryDelay = 250 * time.Millisecond
)

// Store wraps the SQLite database holding session and pending-delete state.
// One Store is opened per process and closed exactly once on exit; Close is
// safe to call from multiple teardown paths.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Open opens (creating if necessary) the database at path. Initialization
// failures are retried with a fixed backoff before giving up; a failure
// after all attempts aborts the invocation, unlike command-level errors
// which are reported as values.
func Open(ctx context.Context, path string) (*Store, error) {
	var st *Store

	policy := resilience.RetryPolicy{
		MaxRetries: openRetries,
		BaseDelay:  openRetryDelay,
		MaxDelay:   openRetryDelay,
		UseJitter:  false,
	}

	err := resilience.Retry(ctx, policy, func() error {
		s, openErr := open(path)
		if openErr != nil {
			return openErr
		}
		st = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	return st, nil
}

func open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection serializes all statements, which matches the
	// single-writer model and avoids SQLITE_BUSY inside the process.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{
		db:     db,
		path:   path,
		logger: slog.Default().With("module", "store"),
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		branch TEXT NOT NULL,
		path TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_branch ON sessions(branch);

	CREATE TABLE IF NOT EXISTS pending_delete (
		slot INTEGER PRIMARY KEY CHECK (slot = 1),
		branch TEXT NOT NULL,
		path TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		at TIMESTAMP NOT NULL,
		kind TEXT NOT NULL,
		branch TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_events_at ON events(at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close checkpoints the WAL and closes the database. It runs at most once;
// later calls return the first result. Every exit path of the process is
// expected to reach Close, so teardown must tolerate being invoked from a
// deferred call and a signal handler in the same run.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			s.logger.Warn("wal checkpoint failed",
				"path", s.path,
				"error", err)
		}
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
