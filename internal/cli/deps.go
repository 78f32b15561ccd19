// Package cli provides the cobra command tree and the dependency wiring
// for the arbor binary. This file is the composition root: the only
// place where concrete collaborators are constructed and connected.
// Project-scoped dependencies (git, store, lifecycle manager) are
// initialized lazily because several commands run before a project
// exists.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/core/git"
	"github.com/arbor-sh/arbor/internal/core/worktree"
	"github.com/arbor-sh/arbor/internal/defs"
	"github.com/arbor-sh/arbor/internal/hook"
	"github.com/arbor-sh/arbor/internal/session"
	"github.com/arbor-sh/arbor/internal/store"
	"github.com/arbor-sh/arbor/internal/tmux"
)

// Dependencies holds every service the commands use. Commands reach
// concrete types only through this struct, so tests can swap any part
// via SetDeps.
type Dependencies struct {
	Settings     *config.Settings
	HookProtocol hook.Protocol
	HookRegistry hook.Registry
	Tmux         *tmux.Manager
	Logger       *slog.Logger

	// Project-scoped, populated by EnsureProject.
	ProjectRoot   string
	Git           *git.Git
	Store         *store.Store
	Manager       *worktree.Manager
	Workspace     *session.Workspace
	SessionClient session.Client
}

// deps is the process-wide Dependencies instance.
var deps *Dependencies

// InitDependencies wires the project-independent services and the
// logging setup. Called once from Execute.
func InitDependencies() {
	settings, err := config.LoadSettings()
	if err != nil {
		settings = config.DefaultSettings()
	}

	logger := setupLogging(settings)
	if err != nil {
		logger.Warn("global settings unreadable, using defaults", "error", err)
	}

	deps = &Dependencies{
		Settings:     settings,
		HookProtocol: hook.NewProtocol(),
		HookRegistry: hook.NewRegistry(),
		Tmux:         tmux.NewManager(),
		Logger:       logger,
	}
}

// setupLogging installs the default slog handler. Logs go to stderr so
// stdout stays pure JSON for hook and tool invocations. ARBOR_LOG_LEVEL
// overrides the settings file.
func setupLogging(settings *config.Settings) *slog.Logger {
	level := settings.Log.Level
	if env := os.Getenv("ARBOR_LOG_LEVEL"); env != "" {
		level = env
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel maps a settings string to a slog level, defaulting to
// info on anything unrecognized.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetDeps returns the current Dependencies, nil before InitDependencies.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureProject lazily initializes the project-scoped dependencies:
// repository root, state store, session client, and the lifecycle
// manager. Subsequent calls are no-ops. Store initialization failure is
// the one infrastructure error that aborts a tool invocation, after the
// store's own bounded retry.
func (d *Dependencies) EnsureProject(ctx context.Context) error {
	if d.Manager != nil {
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	root, err := resolvePrimaryRoot(ctx, cwd)
	if err != nil {
		return err
	}
	d.ProjectRoot = root
	d.Git = git.New(root)

	st, err := store.Open(ctx, filepath.Join(root, defs.OpencodeDir, defs.StateSubdir, defs.WorktreeDB))
	if err != nil {
		return err
	}
	d.Store = st

	baseURL := session.ResolveBaseURL(d.Settings.Host.URL)
	d.SessionClient = session.NewClient(baseURL, nil)
	d.Workspace = session.NewWorkspace(root)
	forker := session.NewForker(d.SessionClient, d.Workspace)

	d.Manager = worktree.NewManager(worktree.ManagerConfig{
		Git:    d.Git,
		Store:  st,
		Forker: forker,
		Client: d.SessionClient,
	})

	d.HookRegistry.Register(hook.NewSessionIdleHandler(d.Manager))

	d.Logger.Debug("project dependencies initialized",
		"root", root,
		"store", st.Path())
	return nil
}

// resolvePrimaryRoot finds the primary checkout root for dir. Commands
// may run inside a linked worktree, whose own top level is not where
// .opencode lives, so the common git dir decides.
func resolvePrimaryRoot(ctx context.Context, dir string) (string, error) {
	root, err := git.ResolveRoot(ctx, dir)
	if err != nil {
		return "", err
	}

	g := git.New(root)
	res := g.Run(ctx, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if res.OK() && filepath.Base(res.Stdout) == ".git" {
		return filepath.Dir(filepath.Clean(res.Stdout)), nil
	}
	return root, nil
}

// Close tears down the project-scoped dependencies. The store close is
// idempotent, so reaching this from both the normal return path and a
// signal path is safe.
func (d *Dependencies) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}
