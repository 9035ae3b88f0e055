package config

import (
	"os"
	"path/filepath"
	"runtime"

	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/logging"
)

// File names inside the data directory
const (
	RecordFileName   = "cred.json"
	SettingsFileName = "settings.yaml"
)

// DataDirEnv overrides the data directory
const DataDirEnv = "PWCLIP_DATA_DIR"

const appDirName = "pwclip"

// Config holds the runtime configuration
type Config struct {
	// DataDir holds the record and settings files
	DataDir string
	// SettingsPath overrides <DataDir>/settings.yaml
	SettingsPath   string
	Logger         *logging.Logger
	NonInteractive bool
	Settings       *Settings
}

// RecordPath returns the credential record location
func (c *Config) RecordPath() string {
	return filepath.Join(c.DataDir, RecordFileName)
}

// SettingsFile returns the settings location
func (c *Config) SettingsFile() string {
	if c.SettingsPath != "" {
		return c.SettingsPath
	}
	return filepath.Join(c.DataDir, SettingsFileName)
}

// Load resolves the data directory if unset and reads the settings file.
// A missing settings file yields defaults.
func (c *Config) Load() error {
	if c.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}

	settings, err := LoadSettings(c.SettingsFile())
	if err != nil {
		return err
	}
	c.Settings = settings
	return nil
}

// LoadWithFallback is Load for commands that must keep working with a
// broken settings file: a read, parse or validation failure is logged as a
// warning and defaults are used instead. Only an unresolvable data directory
// is returned.
func (c *Config) LoadWithFallback() error {
	err := c.Load()
	if err == nil || c.DataDir == "" {
		return err
	}
	c.Logger.Warn("Ignoring settings file %s, using defaults: %v", c.SettingsFile(), err)
	c.Settings = DefaultSettings()
	return nil
}

// DefaultDataDir returns the per-user application data directory:
// $PWCLIP_DATA_DIR, then %LOCALAPPDATA%\pwclip on Windows, then the user
// config directory.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appDirName), nil
		}
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", dserrors.ConfigError{
			Field:      "data_dir",
			Message:    "cannot determine a per-user data directory",
			Suggestion: "Set " + DataDirEnv + " or pass --data-dir",
		}
	}
	return filepath.Join(base, appDirName), nil
}
