package worktree

import (
	"context"
	"os"

	"github.com/arbor-sh/arbor/internal/core/git"
	"github.com/arbor-sh/arbor/internal/store"
)

// Info joins one git worktree with its tracked session, if any.
type Info struct {
	git.Worktree

	// Session is the store record owning this worktree, nil when the
	// worktree was created outside arbor.
	Session *store.Session

	// PendingDelete marks the worktree scheduled for teardown.
	PendingDelete bool
}

// List returns every worktree of the repository, primary checkout first,
// each joined with its session record and pending-delete state.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	wts, err := m.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := m.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	byBranch := make(map[string]*store.Session, len(sessions))
	for i := range sessions {
		byBranch[sessions[i].Branch] = &sessions[i]
	}

	pd, err := m.store.GetPendingDelete(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(wts))
	for _, wt := range wts {
		info := Info{Worktree: wt}
		if wt.Branch != "" {
			info.Session = byBranch[wt.Branch]
			info.PendingDelete = pd != nil && pd.Branch == wt.Branch
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// StatusReport is a snapshot for the status command.
type StatusReport struct {
	Worktrees []Info
	Pending   *store.PendingDelete
	Events    []store.Event
}

// Status gathers the worktree list, the pending-delete marker, and the
// most recent lifecycle events.
func (m *Manager) Status(ctx context.Context) (*StatusReport, error) {
	infos, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	pd, err := m.store.GetPendingDelete(ctx)
	if err != nil {
		return nil, err
	}
	events, err := m.store.RecentEvents(ctx, 10)
	if err != nil {
		return nil, err
	}
	return &StatusReport{Worktrees: infos, Pending: pd, Events: events}, nil
}

// PruneResult reports what Prune cleaned up.
type PruneResult struct {
	Git             git.Result
	SessionsRemoved int
}

// Prune drops stale worktree administrative entries and removes session
// records whose worktree directory no longer exists on disk.
func (m *Manager) Prune(ctx context.Context) (*PruneResult, error) {
	result := &PruneResult{Git: m.git.PruneWorktrees(ctx)}

	sessions, err := m.store.ListSessions(ctx)
	if err != nil {
		return result, err
	}
	for _, sess := range sessions {
		if _, statErr := os.Stat(sess.Path); statErr == nil {
			continue
		}
		if err := m.store.RemoveSession(ctx, sess.Branch); err != nil {
			return result, err
		}
		result.SessionsRemoved++
		m.logger.Info("pruned orphaned session",
			"branch", sess.Branch,
			"path", sess.Path)
		if err := m.store.AppendEvent(ctx, store.EventPrune, sess.Branch, sess.Path); err != nil {
			m.logger.Warn("event log write failed", "error", err)
		}
	}
	return result, nil
}
