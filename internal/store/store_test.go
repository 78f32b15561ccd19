package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "worktree.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestOpen_CreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "worktree.db")
	st, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer st.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if st.Path() != path {
		t.Errorf("Path() = %q, want %q", st.Path(), path)
	}
}

func TestOpen_FailsWhenPathUnusable(t *testing.T) {
	t.Parallel()

	// A regular file where the state directory should be makes MkdirAll
	// fail on every attempt.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	_, err := Open(context.Background(), filepath.Join(blocker, "state", "worktree.db"))
	if err == nil {
		t.Fatal("Open() = nil error, want failure")
	}
}

func TestAddGetSession_RoundTrip(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	want := Session{
		ID:        "ses_abc123",
		Branch:    "feature/login",
		Path:      "/tmp/repo-worktrees/feature-login",
		CreatedAt: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
	}
	if err := st.AddSession(ctx, want); err != nil {
		t.Fatalf("AddSession() error: %v", err)
	}

	got, err := st.GetSession(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got.ID != want.ID || got.Branch != want.Branch || got.Path != want.Path {
		t.Errorf("GetSession() = %+v, want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestAddSession_FillsZeroCreatedAt(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	if err := st.AddSession(ctx, Session{ID: "ses_1", Branch: "b", Path: "/p"}); err != nil {
		t.Fatalf("AddSession() error: %v", err)
	}

	got, err := st.GetSession(ctx, "ses_1")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want filled timestamp")
	}
}

func TestAddSession_DuplicateID(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	sess := Session{ID: "ses_dup", Branch: "one", Path: "/one"}
	if err := st.AddSession(ctx, sess); err != nil {
		t.Fatalf("AddSession() error: %v", err)
	}
	if err := st.AddSession(ctx, sess); err == nil {
		t.Error("second AddSession() with same id = nil error, want failure")
	}
}

func TestGetSession_NotFound(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)

	_, err := st.GetSession(context.Background(), "ses_missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() error = %v, want ErrSessionNotFound", err)
	}
}

func TestGetSessionByBranch(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	if err := st.AddSession(ctx, Session{ID: "ses_b", Branch: "fix/crash", Path: "/wt"}); err != nil {
		t.Fatalf("AddSession() error: %v", err)
	}

	got, err := st.GetSessionByBranch(ctx, "fix/crash")
	if err != nil {
		t.Fatalf("GetSessionByBranch() error: %v", err)
	}
	if got.ID != "ses_b" {
		t.Errorf("GetSessionByBranch().ID = %q, want %q", got.ID, "ses_b")
	}

	if _, err := st.GetSessionByBranch(ctx, "no-such-branch"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSessionByBranch() error = %v, want ErrSessionNotFound", err)
	}
}

func TestRemoveSession_ByBranch(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	if err := st.AddSession(ctx, Session{ID: "ses_rm", Branch: "gone", Path: "/wt"}); err != nil {
		t.Fatalf("AddSession() error: %v", err)
	}
	if err := st.RemoveSession(ctx, "gone"); err != nil {
		t.Fatalf("RemoveSession() error: %v", err)
	}

	if _, err := st.GetSession(ctx, "ses_rm"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() after remove error = %v, want ErrSessionNotFound", err)
	}
}

func TestRemoveSession_MissingBranch(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)

	if err := st.RemoveSession(context.Background(), "never-existed"); err != nil {
		t.Errorf("RemoveSession() for missing branch error = %v, want nil", err)
	}
}

func TestListSessions_OldestFirst(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"ses_2", "ses_0", "ses_1"} {
		offset := map[string]int{"ses_0": 0, "ses_1": 1, "ses_2": 2}[id]
		if err := st.AddSession(ctx, Session{
			ID:        id,
			Branch:    id,
			Path:      "/wt",
			CreatedAt: base.Add(time.Duration(offset) * time.Minute),
		}); err != nil {
			t.Fatalf("AddSession() #%d error: %v", i, err)
		}
	}

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("len(sessions) = %d, want 3", len(sessions))
	}
	for i, wantID := range []string{"ses_0", "ses_1", "ses_2"} {
		if sessions[i].ID != wantID {
			t.Errorf("sessions[%d].ID = %q, want %q", i, sessions[i].ID, wantID)
		}
	}
}

func TestPendingDelete_AbsentReturnsNil(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)

	pd, err := st.GetPendingDelete(context.Background())
	if err != nil {
		t.Fatalf("GetPendingDelete() error: %v", err)
	}
	if pd != nil {
		t.Errorf("GetPendingDelete() = %+v, want nil", pd)
	}
}

func TestPendingDelete_SingleSlotReplaces(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SetPendingDelete(ctx, PendingDelete{Branch: "old", Path: "/old"}); err != nil {
		t.Fatalf("SetPendingDelete() error: %v", err)
	}
	if err := st.SetPendingDelete(ctx, PendingDelete{Branch: "new", Path: "/new"}); err != nil {
		t.Fatalf("SetPendingDelete() replace error: %v", err)
	}

	pd, err := st.GetPendingDelete(ctx)
	if err != nil {
		t.Fatalf("GetPendingDelete() error: %v", err)
	}
	if pd == nil || pd.Branch != "new" || pd.Path != "/new" {
		t.Errorf("GetPendingDelete() = %+v, want {new /new}", pd)
	}

	var count int
	if err := st.db.QueryRow(`SELECT COUNT(*) FROM pending_delete`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("pending_delete rows = %d, want 1", count)
	}
}

func TestClearPendingDelete(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	// Clearing an empty slot is fine.
	if err := st.ClearPendingDelete(ctx); err != nil {
		t.Fatalf("ClearPendingDelete() on empty error: %v", err)
	}

	if err := st.SetPendingDelete(ctx, PendingDelete{Branch: "b", Path: "/p"}); err != nil {
		t.Fatalf("SetPendingDelete() error: %v", err)
	}
	if err := st.ClearPendingDelete(ctx); err != nil {
		t.Fatalf("ClearPendingDelete() error: %v", err)
	}

	pd, err := st.GetPendingDelete(ctx)
	if err != nil {
		t.Fatalf("GetPendingDelete() error: %v", err)
	}
	if pd != nil {
		t.Errorf("GetPendingDelete() after clear = %+v, want nil", pd)
	}
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "worktree.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if err := st.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}

func TestReopen_Persists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "worktree.db")
	ctx := context.Background()

	st, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := st.AddSession(ctx, Session{ID: "ses_keep", Branch: "kept", Path: "/wt"}); err != nil {
		t.Fatalf("AddSession() error: %v", err)
	}
	if err := st.SetPendingDelete(ctx, PendingDelete{Branch: "kept", Path: "/wt"}); err != nil {
		t.Fatalf("SetPendingDelete() error: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	st2, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer st2.Close()

	got, err := st2.GetSession(ctx, "ses_keep")
	if err != nil {
		t.Fatalf("GetSession() after reopen error: %v", err)
	}
	if got.Branch != "kept" {
		t.Errorf("Branch = %q, want %q", got.Branch, "kept")
	}

	pd, err := st2.GetPendingDelete(ctx)
	if err != nil {
		t.Fatalf("GetPendingDelete() after reopen error: %v", err)
	}
	if pd == nil || pd.Branch != "kept" {
		t.Errorf("GetPendingDelete() after reopen = %+v, want branch kept", pd)
	}
}

func TestEvents_AppendAndRecent(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)
	ctx := context.Background()

	for _, kind := range []string{EventCreate, EventDeleteRequested, EventDelete} {
		if err := st.AppendEvent(ctx, kind, "feature/x", "detail for "+kind); err != nil {
			t.Fatalf("AppendEvent(%s) error: %v", kind, err)
		}
	}

	events, err := st.RecentEvents(ctx, 2)
	if err != nil {
		t.Fatalf("RecentEvents() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	seen := map[string]bool{}
	for _, ev := range events {
		if ev.ID == "" {
			t.Error("event ID is empty")
		}
		if seen[ev.ID] {
			t.Errorf("duplicate event ID %q", ev.ID)
		}
		seen[ev.ID] = true
		if ev.Branch != "feature/x" {
			t.Errorf("event Branch = %q, want feature/x", ev.Branch)
		}
	}
}

func TestRecentEvents_DefaultLimit(t *testing.T) {
	t.Parallel()

	st := openTestStore(t)

	events, err := st.RecentEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("RecentEvents(0) error: %v", err)
	}
	if events != nil {
		t.Errorf("RecentEvents(0) on empty store = %v, want nil", events)
	}
}
