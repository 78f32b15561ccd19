package hook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arbor-sh/arbor/internal/core/worktree"
)

// IdleProcessor is the lifecycle operation the session-idle handler
// drives. Satisfied by *worktree.Manager.
type IdleProcessor interface {
	ProcessIdle(ctx context.Context, sessionID string) (*worktree.IdleResult, error)
}

// SessionIdleHandler runs the worktree delete lifecycle when the owning
// session goes idle. With no pending delete the event is a no-op.
type SessionIdleHandler struct {
	processor IdleProcessor
	logger    *slog.Logger
}

var _ Handler = (*SessionIdleHandler)(nil)

// NewSessionIdleHandler creates the session.idle handler.
func NewSessionIdleHandler(processor IdleProcessor) *SessionIdleHandler {
	return &SessionIdleHandler{
		processor: processor,
		logger:    slog.Default().With("module", "hook.session_idle"),
	}
}

// EventType returns the event type this handler processes.
func (h *SessionIdleHandler) EventType() EventType {
	return EventSessionIdle
}

// Handle processes the idle event. Hook and commit failures inside the
// teardown are already non-fatal at the lifecycle layer; the error return
// here is reserved for store failures.
func (h *SessionIdleHandler) Handle(ctx context.Context, event *Event) (*Output, error) {
	result, err := h.processor.ProcessIdle(ctx, event.Properties.SessionID)
	if err != nil {
		return nil, fmt.Errorf("process idle: %w", err)
	}

	if !result.Processed {
		h.logger.Debug("idle event ignored",
			"session", event.Properties.SessionID,
			"reason", result.SkipReason)
		return &Output{}, nil
	}

	msg := fmt.Sprintf("Removed worktree for branch %s", result.Branch)
	if !result.Removed {
		msg = fmt.Sprintf("Cleared worktree state for branch %s, but removal failed: %s; run prune to clean up %s",
			result.Branch, result.RemoveError, result.Path)
	}
	return &Output{Message: msg, Handled: true}, nil
}
