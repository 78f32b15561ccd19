package defs

// Common file names used across the project.
const (
	// WorktreeConfigJSONC is the per-project worktree configuration file,
	// located under the project's .opencode directory.
	WorktreeConfigJSONC = "worktree.jsonc"

	// WorktreeDB is the SQLite database tracking worktree sessions.
	WorktreeDB = "worktree.db"

	// PlanMD is the per-session plan artifact copied on session fork.
	PlanMD = "plan.md"

	// SettingsYAML is the global user settings file.
	SettingsYAML = "settings.yaml"
)
