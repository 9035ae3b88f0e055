// Package testutil provides shared test helpers for pwclip: a settings
// builder, a capturing logger and security assertions.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/systmms/pwclip/internal/config"
)

// TestConfigBuilder provides a fluent API for building a loaded
// config.Config rooted in a temporary data directory.
//
// Example usage:
//
//	cfg := NewTestConfig(t).
//	    WithSettings(func(s *config.Settings) { s.AutoClearSecs = 5 }).
//	    Build()
type TestConfigBuilder struct {
	t              *testing.T
	dataDir        string
	settings       *config.Settings
	rawSettings    string
	nonInteractive bool
	logger         *TestLogger
}

// NewTestConfig creates a builder with default settings and a fresh
// temporary data directory.
func NewTestConfig(t *testing.T) *TestConfigBuilder {
	t.Helper()

	return &TestConfigBuilder{
		t:       t,
		dataDir: t.TempDir(),
		logger:  NewTestLogger(t),
	}
}

// WithSettings edits the settings written before Build loads them
func (b *TestConfigBuilder) WithSettings(fn func(*config.Settings)) *TestConfigBuilder {
	if b.settings == nil {
		b.settings = config.DefaultSettings()
	}
	fn(b.settings)
	return b
}

// WithSettingsYAML writes content verbatim as the settings file
func (b *TestConfigBuilder) WithSettingsYAML(content string) *TestConfigBuilder {
	b.rawSettings = content
	return b
}

// WithLogger replaces the capturing logger
func (b *TestConfigBuilder) WithLogger(l *TestLogger) *TestConfigBuilder {
	b.logger = l
	return b
}

// NonInteractive marks the config as non-interactive
func (b *TestConfigBuilder) NonInteractive() *TestConfigBuilder {
	b.nonInteractive = true
	return b
}

// DataDir returns the temporary data directory
func (b *TestConfigBuilder) DataDir() string {
	return b.dataDir
}

// Logs returns the capturing logger wired into the built config
func (b *TestConfigBuilder) Logs() *TestLogger {
	return b.logger
}

// Build writes any settings file and returns a loaded config
func (b *TestConfigBuilder) Build() *config.Config {
	b.t.Helper()

	path := filepath.Join(b.dataDir, config.SettingsFileName)
	switch {
	case b.rawSettings != "":
		if err := os.WriteFile(path, []byte(b.rawSettings), 0o600); err != nil {
			b.t.Fatalf("Failed to write settings: %v", err)
		}
	case b.settings != nil:
		data, err := yaml.Marshal(b.settings)
		if err != nil {
			b.t.Fatalf("Failed to marshal settings: %v", err)
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			b.t.Fatalf("Failed to write settings: %v", err)
		}
	}

	cfg := &config.Config{
		DataDir:        b.dataDir,
		Logger:         b.logger.Logger(),
		NonInteractive: b.nonInteractive,
	}
	if err := cfg.Load(); err != nil {
		b.t.Fatalf("Failed to load test config: %v", err)
	}
	return cfg
}
