package config

// DefaultWorktreeConfig returns the all-empty worktree configuration used
// when no file exists or the file cannot be parsed.
func DefaultWorktreeConfig() *WorktreeConfig {
	return &WorktreeConfig{
		Sync: SyncConfig{
			CopyFiles:   []string{},
			SymlinkDirs: []string{},
			Exclude:     []string{},
		},
		Hooks: HooksConfig{
			PostCreate: []string{},
			PreDelete:  []string{},
		},
	}
}

// DefaultSettings returns the compiled-in global settings.
func DefaultSettings() *Settings {
	return &Settings{
		Host:   HostSettings{URL: ""},
		Update: UpdateSettings{Check: true},
		Log:    LogSettings{Level: "info"},
	}
}

// worktreeTemplate is written verbatim when no worktree.jsonc exists yet.
// The comments survive because the file is JSONC, not plain JSON.
const worktreeTemplate = `// Worktree configuration.
// All lists are best-effort: unsafe entries are skipped with a warning,
// missing sources are ignored.
{
  "sync": {
    // Files copied from the primary checkout into each new worktree,
    // relative to the repository root (e.g. ".env.local").
    "copyFiles": [],
    // Directories symlinked from the primary checkout into each new
    // worktree (e.g. "node_modules").
    "symlinkDirs": [],
    // Entries excluded from copyFiles and symlinkDirs.
    "exclude": []
  },
  "hooks": {
    // Shell commands run inside a worktree right after it is created.
    "postCreate": [],
    // Shell commands run inside a worktree before it is deleted.
    "preDelete": []
  }
}
`
