package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Session is one tracked worktree session. A row is created when a worktree
// is successfully provisioned and removed when the worktree is deleted.
type Session struct {
	ID        string
	Branch    string
	Path      string
	CreatedAt time.Time
}

// AddSession inserts a session record. A zero CreatedAt is filled with the
// current time.
func (s *Store) AddSession(ctx context.Context, sess Session) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, branch, path, created_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Branch, sess.Path, sess.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("add session %s: %w", sess.ID, err)
	}
	return nil
}

// GetSession returns the session with the given id, or ErrSessionNotFound.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, branch, path, created_at FROM sessions WHERE id = ?`, id)
	return scanSession(row, id)
}

// GetSessionByBranch returns the session tracking the given branch, or
// ErrSessionNotFound.
func (s *Store) GetSessionByBranch(ctx context.Context, branch string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, branch, path, created_at FROM sessions WHERE branch = ?`, branch)
	return scanSession(row, branch)
}

// ListSessions returns all tracked sessions, oldest first.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, branch, path, created_at FROM sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Branch, &sess.Path, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

// RemoveSession deletes the session tracking the given branch. Removing a
// branch with no session is not an error.
func (s *Store) RemoveSession(ctx context.Context, branch string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE branch = ?`, branch)
	if err != nil {
		return fmt.Errorf("remove session for branch %s: %w", branch, err)
	}
	return nil
}

func scanSession(row *sql.Row, key string) (*Session, error) {
	var sess Session
	err := row.Scan(&sess.ID, &sess.Branch, &sess.Path, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", key, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &sess, nil
}
