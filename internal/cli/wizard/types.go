// Package wizard provides the interactive questionnaire behind arbor
// init, seeding the project's worktree configuration.
package wizard

import "errors"

// Result holds the user's answers.
type Result struct {
	// CopyFiles are files copied from the primary checkout into each new
	// worktree.
	CopyFiles []string

	// SymlinkDirs are directories symlinked into each new worktree.
	SymlinkDirs []string

	// PostCreate are shell commands run inside a worktree after creation.
	PostCreate []string

	// PreDelete are shell commands run inside a worktree before deletion.
	PreDelete []string

	// HostURL is the host assistant API address, empty for the default.
	HostURL string
}

// Question defines one wizard prompt. Every question is a free-text
// input; list questions split their answer on commas.
type Question struct {
	ID          string
	Title       string
	Description string
	Placeholder string

	// List marks answers that parse into a comma-separated list.
	List bool
}

// Sentinel errors for the wizard package.
var (
	// ErrCancelled indicates the user aborted the questionnaire.
	ErrCancelled = errors.New("wizard cancelled by user")

	// ErrNoQuestions indicates Run was called with nothing to ask.
	ErrNoQuestions = errors.New("wizard has no questions")
)
