package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeClient is an in-memory Client for fork tests.
type fakeClient struct {
	sessions map[string]*Session
	forkedID string
	forkErr  error
	getCalls int
	deleted  []string
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) GetSession(_ context.Context, id string) (*Session, error) {
	f.getCalls++
	sess, ok := f.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (f *fakeClient) ForkSession(_ context.Context, id string) (*Session, error) {
	if f.forkErr != nil {
		return nil, f.forkErr
	}
	return &Session{ID: f.forkedID, ParentID: id}, nil
}

func (f *fakeClient) DeleteSession(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) AppendLog(_ context.Context, _, _ string) error {
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent of %q: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
}

func TestResolveRootSession_NoParent(t *testing.T) {
	t.Parallel()

	client := &fakeClient{sessions: map[string]*Session{
		"ses_root": {ID: "ses_root"},
	}}
	f := NewForker(client, NewWorkspace(t.TempDir()))

	root, err := f.ResolveRootSession(context.Background(), "ses_root")
	if err != nil {
		t.Fatalf("ResolveRootSession() error: %v", err)
	}
	if root.ID != "ses_root" {
		t.Errorf("root.ID = %q, want ses_root", root.ID)
	}
}

func TestResolveRootSession_WalksChain(t *testing.T) {
	t.Parallel()

	client := &fakeClient{sessions: map[string]*Session{
		"ses_leaf": {ID: "ses_leaf", ParentID: "ses_mid"},
		"ses_mid":  {ID: "ses_mid", ParentID: "ses_root"},
		"ses_root": {ID: "ses_root"},
	}}
	f := NewForker(client, NewWorkspace(t.TempDir()))

	root, err := f.ResolveRootSession(context.Background(), "ses_leaf")
	if err != nil {
		t.Fatalf("ResolveRootSession() error: %v", err)
	}
	if root.ID != "ses_root" {
		t.Errorf("root.ID = %q, want ses_root", root.ID)
	}
}

func TestResolveRootSession_CycleTerminates(t *testing.T) {
	t.Parallel()

	client := &fakeClient{sessions: map[string]*Session{
		"ses_a": {ID: "ses_a", ParentID: "ses_b"},
		"ses_b": {ID: "ses_b", ParentID: "ses_a"},
	}}
	f := NewForker(client, NewWorkspace(t.TempDir()))

	if _, err := f.ResolveRootSession(context.Background(), "ses_a"); err != nil {
		t.Fatalf("ResolveRootSession() error: %v", err)
	}
	if client.getCalls > maxParentDepth+1 {
		t.Errorf("getCalls = %d, want at most %d", client.getCalls, maxParentDepth+1)
	}
}

func TestResolveRootSession_MissingParent(t *testing.T) {
	t.Parallel()

	client := &fakeClient{sessions: map[string]*Session{
		"ses_leaf": {ID: "ses_leaf", ParentID: "ses_gone"},
	}}
	f := NewForker(client, NewWorkspace(t.TempDir()))

	if _, err := f.ResolveRootSession(context.Background(), "ses_leaf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveRootSession() error = %v, want ErrNotFound", err)
	}
}

func TestFork_CopiesArtifacts(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir())
	client := &fakeClient{
		sessions: map[string]*Session{
			"ses_src":  {ID: "ses_src", ParentID: "ses_root"},
			"ses_root": {ID: "ses_root"},
		},
		forkedID: "ses_fork",
	}
	writeFile(t, ws.PlanPath("ses_root"), "# plan\n")
	writeFile(t, filepath.Join(ws.DelegationsDir("ses_root"), "task-1.md"), "task\n")

	result, err := NewForker(client, ws).Fork(context.Background(), "ses_src")
	if err != nil {
		t.Fatalf("Fork() error: %v", err)
	}

	if result.ForkedSession.ID != "ses_fork" {
		t.Errorf("ForkedSession.ID = %q, want ses_fork", result.ForkedSession.ID)
	}
	if result.RootSessionID != "ses_root" {
		t.Errorf("RootSessionID = %q, want ses_root", result.RootSessionID)
	}
	if !result.PlanCopied {
		t.Error("PlanCopied = false, want true")
	}
	if !result.DelegationsCopied {
		t.Error("DelegationsCopied = false, want true")
	}

	plan, err := os.ReadFile(ws.PlanPath("ses_fork"))
	if err != nil {
		t.Fatalf("read forked plan: %v", err)
	}
	if string(plan) != "# plan\n" {
		t.Errorf("forked plan = %q", plan)
	}
	if _, err := os.Stat(filepath.Join(ws.DelegationsDir("ses_fork"), "task-1.md")); err != nil {
		t.Errorf("forked delegation missing: %v", err)
	}
	if len(client.deleted) != 0 {
		t.Errorf("deleted = %v, want none", client.deleted)
	}
}

func TestFork_NoArtifacts(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir())
	client := &fakeClient{
		sessions: map[string]*Session{"ses_src": {ID: "ses_src"}},
		forkedID: "ses_fork",
	}

	result, err := NewForker(client, ws).Fork(context.Background(), "ses_src")
	if err != nil {
		t.Fatalf("Fork() error: %v", err)
	}

	if result.PlanCopied {
		t.Error("PlanCopied = true, want false")
	}
	if result.DelegationsCopied {
		t.Error("DelegationsCopied = true, want false")
	}
	if _, err := os.Stat(ws.Dir("ses_fork")); err != nil {
		t.Errorf("workspace dir missing: %v", err)
	}
	if _, err := os.Stat(ws.DelegationsDir("ses_fork")); err != nil {
		t.Errorf("delegations dir missing: %v", err)
	}
}

func TestFork_RollsBackOnProvisionFailure(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir())
	client := &fakeClient{
		sessions: map[string]*Session{"ses_src": {ID: "ses_src"}},
		forkedID: "ses_fork",
	}
	// A regular file where the forked workspace directory must go makes
	// provisioning fail after the host fork succeeded.
	writeFile(t, ws.Dir("ses_fork"), "in the way")

	_, err := NewForker(client, ws).Fork(context.Background(), "ses_src")
	if err == nil {
		t.Fatal("Fork() = nil error, want failure")
	}

	if len(client.deleted) != 1 || client.deleted[0] != "ses_fork" {
		t.Errorf("deleted = %v, want [ses_fork]", client.deleted)
	}
	if _, err := os.Lstat(ws.Dir("ses_fork")); !os.IsNotExist(err) {
		t.Errorf("workspace path still present after rollback, lstat err = %v", err)
	}
}

func TestFork_HostForkFails(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir())
	client := &fakeClient{
		sessions: map[string]*Session{"ses_src": {ID: "ses_src"}},
		forkErr:  errors.New("host unavailable"),
	}

	_, err := NewForker(client, ws).Fork(context.Background(), "ses_src")
	if err == nil {
		t.Fatal("Fork() = nil error, want failure")
	}
	if len(client.deleted) != 0 {
		t.Errorf("deleted = %v, want none before any fork succeeded", client.deleted)
	}
}

func TestFork_UsesInjectedResolver(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir())
	client := &fakeClient{
		sessions: map[string]*Session{"ses_src": {ID: "ses_src"}},
		forkedID: "ses_fork",
	}

	var resolvedFor string
	f := NewForker(client, ws, WithRootResolver(
		func(_ context.Context, id string) (*Session, error) {
			resolvedFor = id
			return &Session{ID: "ses_custom_root"}, nil
		},
	))

	result, err := f.Fork(context.Background(), "ses_src")
	if err != nil {
		t.Fatalf("Fork() error: %v", err)
	}
	if resolvedFor != "ses_src" {
		t.Errorf("resolver called for %q, want ses_src", resolvedFor)
	}
	if result.RootSessionID != "ses_custom_root" {
		t.Errorf("RootSessionID = %q, want ses_custom_root", result.RootSessionID)
	}
}
