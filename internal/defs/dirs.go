package defs

import "os"

// Directory names and permissions used across the project.
const (
	// OpencodeDir is the per-project host directory that anchors all
	// project-local state (config, database, session workspaces).
	OpencodeDir = ".opencode"

	// StateSubdir holds persisted state (the worktree database) under
	// OpencodeDir.
	StateSubdir = "state"

	// WorkspacesSubdir holds per-session workspace directories (plan.md
	// and related artifacts) under OpencodeDir, keyed by session id.
	WorkspacesSubdir = "workspaces"

	// DelegationsSubdir holds per-session delegation trees under
	// OpencodeDir, keyed by session id.
	DelegationsSubdir = "delegations"

	// GlobalConfigDir is the arbor directory under the user config root
	// (e.g. ~/.config/arbor) holding global settings.
	GlobalConfigDir = "arbor"

	// WorktreesDirSuffix is appended to the repository name to form the
	// sibling directory that holds all provisioned worktrees.
	WorktreesDirSuffix = "-worktrees"
)

// Filesystem permissions for created directories and files.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)
