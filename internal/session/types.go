// Package session talks to the host assistant's HTTP API: fetching and
// forking conversation sessions, deleting them, and appending log entries.
// It also owns the per-session workspace layout and the fork orchestration
// that provisions a workspace for a forked session with compensating
// cleanup on partial failure.
package session

// Session is a conversation session as reported by the host.
type Session struct {
	ID       string `json:"id"`
	ParentID string `json:"parentID,omitempty"`
	Title    string `json:"title,omitempty"`
}

// ForkResult reports what a fork produced. It is returned to the caller
// and never persisted.
type ForkResult struct {
	ForkedSession     Session
	RootSessionID     string
	PlanCopied        bool
	DelegationsCopied bool
}
