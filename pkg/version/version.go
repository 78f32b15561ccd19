// Package version exposes the build identity stamped in at release time.
package version

import "fmt"

// Injected via -ldflags by goreleaser; the defaults identify a local
// build.
var (
	Version = "v0.4.2"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the release tag.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit hash.
func GetCommit() string {
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	return Date
}

// GetFullVersion returns the tag with commit and build date.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
