package filesync

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IsPathSafe reports whether entry is a relative path that stays strictly
// inside sourceDir. Absolute paths, anything containing "..", entries that
// resolve to the source directory itself, and paths whose resolved form
// escapes the source directory are rejected. Every sync entry passes
// through this guard before any filesystem call.
func IsPathSafe(sourceDir, entry string) bool {
	if entry == "" {
		return false
	}
	if filepath.IsAbs(entry) {
		return false
	}
	if strings.Contains(entry, "..") {
		return false
	}
	// "." (and variants that clean to it) names the directory itself, not
	// an entry inside it. Letting it through would make the sync target
	// the worktree root and RemoveAll would delete the whole worktree.
	if filepath.Clean(entry) == "." {
		return false
	}

	sourceAbs, err := filepath.Abs(sourceDir)
	if err != nil {
		return false
	}
	resolved, err := filepath.Abs(filepath.Join(sourceDir, entry))
	if err != nil {
		return false
	}

	// Normalize both sides to Unicode NFC before comparison. macOS stores
	// paths in NFD form while callers may hand over NFC, and the mismatch
	// makes filepath.Rel report a false ".." escape for non-ASCII names.
	nfcSource := norm.NFC.String(sourceAbs)
	nfcResolved := norm.NFC.String(resolved)

	rel, err := filepath.Rel(nfcSource, nfcResolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return true
}
