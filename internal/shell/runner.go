// Package shell runs user-configured lifecycle hook commands. Hook entries
// are whole command lines by contract and execute through the user's
// shell; branch and path values never pass through here, so no caller
// input is ever interpolated into a command string.
package shell

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// RunFunc executes one command line through a shell in dir with extra
// environment variables appended to the inherited environment.
type RunFunc func(ctx context.Context, dir, command string, env []string) (string, error)

// HookEnv is the environment exported to every hook command.
type HookEnv struct {
	// Worktree is the worktree directory the hook concerns.
	Worktree string

	// Branch is the worktree's branch.
	Branch string

	// Source is the primary checkout root.
	Source string
}

func (e HookEnv) vars() []string {
	return []string{
		"ARBOR_WORKTREE=" + e.Worktree,
		"ARBOR_BRANCH=" + e.Branch,
		"ARBOR_SOURCE=" + e.Source,
	}
}

// Runner executes hook command lists.
type Runner struct {
	run    RunFunc
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunFunc sets a custom command runner (used for testing).
func WithRunFunc(fn RunFunc) RunnerOption {
	return func(r *Runner) {
		r.run = fn
	}
}

// WithRunnerLogger sets the logger for the runner.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner executing through the user's shell.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		run:    defaultRun,
		logger: slog.Default().With("module", "shell"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunHooks executes each command in order inside dir with the hook
// environment exported. Hooks are best-effort: a failing command is logged
// with its output and the remaining hooks still run. Hooks carry no
// timeout; a long-running command runs to completion. Returns the number
// of commands that failed.
func (r *Runner) RunHooks(ctx context.Context, phase string, commands []string, dir string, env HookEnv) int {
	failed := 0
	for _, command := range commands {
		r.logger.Debug("running hook",
			"phase", phase,
			"command", command,
			"dir", dir)

		output, err := r.run(ctx, dir, command, env.vars())
		if err != nil {
			failed++
			r.logger.Warn("hook failed",
				"phase", phase,
				"command", command,
				"output", output,
				"error", err)
			continue
		}
	}
	return failed
}

// defaultRun executes a command line via the user's shell.
func defaultRun(ctx context.Context, dir, command string, env []string) (string, error) {
	cmd := exec.CommandContext(ctx, shellPath(), "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return strings.TrimRight(out.String(), "\n\r"), err
}

func shellPath() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
