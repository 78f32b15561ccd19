package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/arbor-sh/arbor/internal/defs"
)

// WorktreeConfig mirrors <project>/.opencode/worktree.jsonc.
type WorktreeConfig struct {
	Sync  SyncConfig  `json:"sync"`
	Hooks HooksConfig `json:"hooks"`
}

// SyncConfig lists what the file sync step carries into a new worktree.
type SyncConfig struct {
	CopyFiles   []string `json:"copyFiles"`
	SymlinkDirs []string `json:"symlinkDirs"`
	Exclude     []string `json:"exclude"`
}

// HooksConfig lists user shell commands run at lifecycle points.
type HooksConfig struct {
	PostCreate []string `json:"postCreate"`
	PreDelete  []string `json:"preDelete"`
}

// WorktreeConfigPath returns the config file location for a project root.
func WorktreeConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, defs.OpencodeDir, defs.WorktreeConfigJSONC)
}

// LoadWorktreeConfig reads the project's worktree configuration. A missing
// file is created with commented empty defaults; an unreadable or
// unparseable file degrades to the empty defaults with a logged error.
// This function never fails the calling operation.
func LoadWorktreeConfig(projectRoot string) *WorktreeConfig {
	logger := slog.Default().With("module", "config")
	path := WorktreeConfigPath(projectRoot)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if writeErr := writeWorktreeTemplate(path); writeErr != nil {
			logger.Error("cannot create worktree config",
				"path", path,
				"error", writeErr)
		} else {
			logger.Info("created worktree config", "path", path)
		}
		return DefaultWorktreeConfig()
	}
	if err != nil {
		logger.Error("cannot read worktree config",
			"path", path,
			"error", err)
		return DefaultWorktreeConfig()
	}

	cfg, err := parseWorktreeConfig(data)
	if err != nil {
		logger.Error("invalid worktree config, using empty defaults",
			"path", path,
			"error", err)
		return DefaultWorktreeConfig()
	}
	return cfg
}

// parseWorktreeConfig parses JSONC by standardizing to plain JSON first.
func parseWorktreeConfig(data []byte) (*WorktreeConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize jsonc: %w", err)
	}

	cfg := DefaultWorktreeConfig()
	if err := json.Unmarshal(standardized, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return cfg, nil
}

// WriteWorktreeConfig persists cfg as the project's worktree
// configuration, replacing any existing file. Comments in a
// hand-edited file are lost; init uses this only when seeding from the
// wizard.
func WriteWorktreeConfig(projectRoot string, cfg *WorktreeConfig) error {
	path := WorktreeConfigPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal worktree config: %w", err)
	}
	data = append(data, '\n')
	return atomicWrite(path, data)
}

func writeWorktreeTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return atomicWrite(path, []byte(worktreeTemplate))
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".arbor-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
