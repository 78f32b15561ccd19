package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PendingDelete marks one worktree scheduled for teardown once its owning
// session goes idle. At most one marker exists at a time.
type PendingDelete struct {
	Branch string
	Path   string
}

// SetPendingDelete records pd as the pending delete, replacing any prior
// marker. The write is a single statement, so a concurrent reader sees
// either the old record or the new one, never a mix.
func (s *Store) SetPendingDelete(ctx context.Context, pd PendingDelete) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pending_delete (slot, branch, path) VALUES (1, ?, ?)`,
		pd.Branch, pd.Path,
	)
	if err != nil {
		return fmt.Errorf("set pending delete for branch %s: %w", pd.Branch, err)
	}
	return nil
}

// GetPendingDelete returns the pending delete marker, or nil when none is
// set. Absence is the normal state, not an error.
func (s *Store) GetPendingDelete(ctx context.Context) (*PendingDelete, error) {
	var pd PendingDelete
	err := s.db.QueryRowContext(ctx,
		`SELECT branch, path FROM pending_delete WHERE slot = 1`,
	).Scan(&pd.Branch, &pd.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pending delete: %w", err)
	}
	return &pd, nil
}

// ClearPendingDelete removes the pending delete marker if one exists.
func (s *Store) ClearPendingDelete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pending_delete`)
	if err != nil {
		return fmt.Errorf("clear pending delete: %w", err)
	}
	return nil
}
