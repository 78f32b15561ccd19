package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arbor-sh/arbor/internal/defs"
)

// Workspace computes per-session artifact locations under the project's
// .opencode directory. Workspaces live in the primary checkout, not inside
// any worktree, so they survive worktree deletion.
type Workspace struct {
	root string
}

// NewWorkspace returns a Workspace anchored at the given project root.
func NewWorkspace(projectRoot string) *Workspace {
	return &Workspace{root: filepath.Clean(projectRoot)}
}

// Dir returns the workspace directory for a session.
func (w *Workspace) Dir(sessionID string) string {
	return filepath.Join(w.root, defs.OpencodeDir, defs.WorkspacesSubdir, sessionID)
}

// DelegationsDir returns the delegations directory for a session.
func (w *Workspace) DelegationsDir(sessionID string) string {
	return filepath.Join(w.root, defs.OpencodeDir, defs.DelegationsSubdir, sessionID)
}

// PlanPath returns the plan.md location inside a session's workspace.
func (w *Workspace) PlanPath(sessionID string) string {
	return filepath.Join(w.Dir(sessionID), defs.PlanMD)
}

// EnsureDirs creates the workspace and delegations directories for a
// session. Session ids come from the host, so they are still checked
// before being joined into a path.
func (w *Workspace) EnsureDirs(sessionID string) error {
	if !validWorkspaceID(sessionID) {
		return fmt.Errorf("unsafe session id %q", sessionID)
	}
	for _, dir := range []string{w.Dir(sessionID), w.DelegationsDir(sessionID)} {
		if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// RemoveDirs deletes the workspace and delegations directories for a
// session. All removals are attempted; failures are joined.
func (w *Workspace) RemoveDirs(sessionID string) error {
	if !validWorkspaceID(sessionID) {
		return fmt.Errorf("unsafe session id %q", sessionID)
	}
	var errs []error
	for _, dir := range []string{w.Dir(sessionID), w.DelegationsDir(sessionID)} {
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}

func validWorkspaceID(id string) bool {
	if id == "" {
		return false
	}
	if strings.ContainsAny(id, `/\`) {
		return false
	}
	return !strings.Contains(id, "..")
}
