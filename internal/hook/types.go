// Package hook receives lifecycle events from the host assistant and
// dispatches them to registered handlers. The host invokes the binary with
// a JSON event envelope on stdin and reads a JSON reply from stdout; the
// only event this component acts on is session.idle, which drives the
// worktree delete lifecycle. Events with no registered handler produce an
// empty reply.
package hook

import (
	"context"
	"io"
	"slices"
)

// EventType identifies a host lifecycle event.
type EventType string

const (
	// EventSessionIdle fires when a session stops producing output. A
	// pending worktree delete is processed on this event.
	EventSessionIdle EventType = "session.idle"

	// EventSessionCreated fires when the host starts a new session.
	EventSessionCreated EventType = "session.created"

	// EventSessionError fires when a session ends with an error.
	EventSessionError EventType = "session.error"
)

// ValidEventTypes returns every event type the dispatcher accepts.
func ValidEventTypes() []EventType {
	return []EventType{
		EventSessionIdle,
		EventSessionCreated,
		EventSessionError,
	}
}

// IsValidEventType reports whether et is a known event type.
func IsValidEventType(et EventType) bool {
	return slices.Contains(ValidEventTypes(), et)
}

// Event is the JSON envelope the host writes to stdin.
type Event struct {
	Type       EventType       `json:"type"`
	Properties EventProperties `json:"properties"`
}

// EventProperties carries the event payload. Fields are a union across
// event types; absent fields are empty.
type EventProperties struct {
	// SessionID is the session the event concerns.
	SessionID string `json:"sessionID,omitempty"`

	// Directory is the working directory of the session, when the host
	// reports one.
	Directory string `json:"directory,omitempty"`

	// Error is the failure description for session.error events.
	Error string `json:"error,omitempty"`
}

// Output is the JSON reply written to stdout. An all-zero Output encodes
// as {} and means the event was observed but required no action.
type Output struct {
	// Message is a human-readable summary the host may surface.
	Message string `json:"message,omitempty"`

	// Handled reports that a handler acted on the event.
	Handled bool `json:"handled,omitempty"`
}

// Handler processes one event type.
type Handler interface {
	// Handle processes the event. A returned error aborts the dispatch
	// chain; best-effort work inside a handler must not become an error.
	Handle(ctx context.Context, event *Event) (*Output, error)

	// EventType returns the event type this handler processes.
	EventType() EventType
}

// Registry manages handler registration and event dispatch.
type Registry interface {
	// Register adds a handler under its declared event type.
	Register(handler Handler)

	// Dispatch runs every handler registered for the event's type in
	// registration order, bounded only by ctx (and a registry timeout,
	// when one was configured).
	Dispatch(ctx context.Context, event *Event) (*Output, error)

	// Handlers returns the handlers registered for an event type.
	Handlers(event EventType) []Handler
}

// Protocol reads event envelopes and writes replies.
type Protocol interface {
	ReadInput(r io.Reader) (*Event, error)
	WriteOutput(w io.Writer, output *Output) error
}
