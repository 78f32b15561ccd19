package hook

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// registry is the default Registry: sequential dispatch in registration
// order. Unknown or unhandled event types yield an empty output, which is
// how every event except session.idle is ignored.
type registry struct {
	handlers map[EventType][]Handler
	timeout  time.Duration
	logger   *slog.Logger
}

var _ Registry = (*registry)(nil)

// NewRegistry creates a Registry without a dispatch deadline. The
// session-idle chain runs user preDelete hooks, which carry no timeout;
// the teardown must never be cut short mid-sequence by the dispatcher.
func NewRegistry() Registry {
	return NewRegistryWithTimeout(0)
}

// NewRegistryWithTimeout creates a Registry that bounds each dispatch to
// timeout. Zero means no deadline.
func NewRegistryWithTimeout(timeout time.Duration) Registry {
	return &registry{
		handlers: make(map[EventType][]Handler),
		timeout:  timeout,
		logger:   slog.Default().With("module", "hook"),
	}
}

// Register adds a handler under its declared event type.
func (r *registry) Register(handler Handler) {
	event := handler.EventType()
	r.handlers[event] = append(r.handlers[event], handler)
	r.logger.Debug("handler registered",
		"event", string(event),
		"handler_count", len(r.handlers[event]))
}

// Dispatch runs the handlers for event.Type sequentially. The last
// non-empty output wins; a handler error aborts the chain and is returned
// to the caller, which maps it to a non-zero exit.
func (r *registry) Dispatch(ctx context.Context, event *Event) (*Output, error) {
	handlers := r.handlers[event.Type]
	if len(handlers) == 0 {
		r.logger.Debug("no handlers for event", "event", string(event.Type))
		return &Output{}, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	final := &Output{}
	for i, h := range handlers {
		output, err := h.Handle(ctx, event)

		if ctx.Err() != nil {
			if r.timeout > 0 {
				r.logger.Error("hook dispatch timed out",
					"event", string(event.Type),
					"handler_index", i,
					"timeout", r.timeout.String())
				return nil, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
			}
			return nil, fmt.Errorf("dispatch %s: %w", event.Type, ctx.Err())
		}
		if err != nil {
			return nil, fmt.Errorf("handler %d for event %s: %w", i, event.Type, err)
		}
		if output != nil && (output.Handled || output.Message != "") {
			final = output
		}
	}

	return final, nil
}

// Handlers returns the handlers registered for an event type.
func (r *registry) Handlers(event EventType) []Handler {
	return r.handlers[event]
}
