// Package tmux opens tmux sessions rooted in worktree directories, so a
// provisioned worktree is one command away from an attached shell.
package tmux

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// sessionPrefix namespaces arbor-created sessions so they are easy to
// spot and clean up in tmux list-session output.
const sessionPrefix = "arbor-"

// OpenConfig describes the session to open.
type OpenConfig struct {
	// Name is the session name without the arbor prefix. Required.
	Name string

	// Dir is the working directory for the session's first window.
	Dir string

	// Command, when set, is sent to the new session's first pane.
	Command string
}

// OpenResult reports what Open did.
type OpenResult struct {
	// SessionName is the full (prefixed) tmux session name.
	SessionName string

	// Created reports whether a new session was started; false means an
	// existing one was reused.
	Created bool

	// Attached reports whether the terminal was attached to the session.
	Attached bool
}

// Manager opens and attaches tmux sessions.
type Manager struct {
	run    RunFunc
	attach func(ctx context.Context, args ...string) error
	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRunFunc sets a custom command runner (used for testing).
func WithRunFunc(fn RunFunc) ManagerOption {
	return func(m *Manager) {
		m.run = fn
	}
}

// WithAttachFunc sets a custom attach runner (used for testing).
func WithAttachFunc(fn func(ctx context.Context, args ...string) error) ManagerOption {
	return func(m *Manager) {
		m.attach = fn
	}
}

// NewManager creates a Manager executing real tmux commands.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		run:    defaultRun,
		attach: attachRun,
		logger: slog.Default().With("module", "tmux"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open ensures a tmux session for cfg exists and attaches the terminal
// to it. An existing session with the same name is reused. Inside a tmux
// client the session is switched to instead of nested.
func (m *Manager) Open(ctx context.Context, cfg OpenConfig) (*OpenResult, error) {
	if cfg.Name == "" {
		return nil, ErrNoSessionName
	}

	name := sessionPrefix + cfg.Name
	result := &OpenResult{SessionName: name}

	if _, err := m.run(ctx, "has-session", "-t", name); err != nil {
		args := []string{"new-session", "-d", "-s", name}
		if cfg.Dir != "" {
			args = append(args, "-c", cfg.Dir)
		}
		if out, err := m.run(ctx, args...); err != nil {
			return nil, fmt.Errorf("tmux: create session %s: %w (%s)", name, err, out)
		}
		result.Created = true
		m.logger.Info("tmux session created",
			"session", name,
			"dir", cfg.Dir)

		if cfg.Command != "" {
			if out, err := m.run(ctx, "send-keys", "-t", name, cfg.Command, "Enter"); err != nil {
				m.logger.Warn("send initial command failed",
					"session", name,
					"error", err,
					"output", out)
			}
		}
	}

	if err := m.attachSession(ctx, name); err != nil {
		return result, fmt.Errorf("tmux: attach %s: %w", name, err)
	}
	result.Attached = true
	return result, nil
}

// attachSession attaches or, when already inside tmux, switches the
// current client.
func (m *Manager) attachSession(ctx context.Context, name string) error {
	if os.Getenv("TMUX") != "" {
		return m.attach(ctx, "switch-client", "-t", name)
	}
	return m.attach(ctx, "attach-session", "-t", name)
}
