package git

import "errors"

// Sentinel errors for the git layer. Command failures are not errors here;
// they are carried inside Result values. These sentinels cover the cases
// where no command could run at all or a name never reached git.
var (
	// ErrSystemGitNotFound indicates no usable git binary is on PATH.
	ErrSystemGitNotFound = errors.New("git: system git binary not found")

	// ErrNotRepository indicates the directory is not inside a git repository.
	ErrNotRepository = errors.New("git: not a git repository")

	// ErrInvalidBranchName indicates a branch name failed validation.
	ErrInvalidBranchName = errors.New("git: invalid branch name")
)
