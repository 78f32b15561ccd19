package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbor-sh/arbor/internal/defs"
)

// FindProjectRoot locates the project root directory by searching for the
// .opencode directory. It starts from the current working directory and
// traverses upward until it finds one.
// Returns the absolute path to the project root, or ErrNotInProject.
//
// Anchoring on the root keeps the worktree database, configuration, and
// workspace directories in one place regardless of where the command runs.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return FindProjectRootFrom(dir)
}

// FindProjectRootFrom is like FindProjectRoot but starts the upward search
// from dir instead of the current working directory.
func FindProjectRootFrom(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		marker := filepath.Join(absDir, defs.OpencodeDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return absDir, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("%w: searched from %s", ErrNotInProject, dir)
		}
		absDir = parent
	}
}

// FindProjectRootOrCurrent is like FindProjectRoot but returns the current
// directory instead of an error when no project marker exists. Useful for
// commands that can run before a project is initialized.
func FindProjectRootOrCurrent() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if root, err := FindProjectRootFrom(dir); err == nil {
		return root, nil
	}

	return filepath.Abs(dir)
}
