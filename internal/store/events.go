package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event kinds recorded in the audit log.
const (
	EventCreate          = "create"
	EventDeleteRequested = "delete_requested"
	EventDelete          = "delete"
	EventPrune           = "prune"
)

// Event is one entry in the append-only worktree audit log.
type Event struct {
	ID     string
	At     time.Time
	Kind   string
	Branch string
	Detail string
}

// AppendEvent records an audit log entry. Failures here must not block the
// lifecycle operation that produced the event, so callers treat errors as
// log-only.
func (s *Store) AppendEvent(ctx context.Context, kind, branch, detail string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, at, kind, branch, detail) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), time.Now().UTC(), kind, branch, detail,
	)
	if err != nil {
		return fmt.Errorf("append %s event for branch %s: %w", kind, branch, err)
	}
	return nil
}

// RecentEvents returns up to limit events, newest first.
func (s *Store) RecentEvents(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, kind, branch, detail FROM events ORDER BY at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.At, &ev.Kind, &ev.Branch, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}

	return events, nil
}
