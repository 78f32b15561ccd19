package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arbor-sh/arbor/internal/defs"
)

// Settings is the user-global configuration, shared across projects.
type Settings struct {
	Host   HostSettings   `yaml:"host"`
	Update UpdateSettings `yaml:"update"`
	Log    LogSettings    `yaml:"log"`
}

// HostSettings configures how the host assistant API is reached. The
// ARBOR_HOST_URL and OPENCODE_SERVER environment variables take priority
// over the file value.
type HostSettings struct {
	URL string `yaml:"url"`
}

// UpdateSettings controls the background release check.
type UpdateSettings struct {
	Check bool `yaml:"check"`
}

// LogSettings sets the default log level; ARBOR_LOG_LEVEL overrides it.
type LogSettings struct {
	Level string `yaml:"level"`
}

// SettingsPath returns the global settings file location.
func SettingsPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(base, defs.GlobalConfigDir, defs.SettingsYAML), nil
}

// LoadSettings reads the global settings file, merging it over the
// compiled defaults. A missing file yields the defaults.
func LoadSettings() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	return loadSettingsFrom(path)
}

func loadSettingsFrom(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, path, err)
	}
	return settings, nil
}

// SaveSettings writes the global settings file atomically, creating its
// directory when needed.
func SaveSettings(settings *Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return saveSettingsTo(path, settings)
}

func saveSettingsTo(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("config: marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("config: create settings directory: %w", err)
	}
	return atomicWrite(path, data)
}
