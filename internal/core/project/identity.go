package project

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"unicode"
)

// ID returns a stable identifier for the project rooted at root. It combines
// a readable slug of the directory name with a short hash of the absolute
// path, so two checkouts with the same directory name do not collide.
//
// The identifier is safe for tmux session names and file names: lowercase
// letters, digits, and dashes only.
func ID(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	abs = filepath.Clean(abs)

	sum := sha256.Sum256([]byte(abs))
	return Slug(filepath.Base(abs)) + "-" + hex.EncodeToString(sum[:])[:8]
}

// Slug lowercases name and replaces every run of characters outside
// [a-z0-9] with a single dash. Leading and trailing dashes are trimmed.
// An empty result becomes "project".
func Slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "project"
	}
	return s
}
