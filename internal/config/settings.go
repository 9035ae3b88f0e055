package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/systmms/pwclip/internal/backend"
	dserrors "github.com/systmms/pwclip/internal/errors"
)

// Auto-clear bounds in seconds
const (
	MinAutoClearSecs     = 3
	MaxAutoClearSecs     = 300
	DefaultAutoClearSecs = 20
)

// Settings are the user preferences persisted next to the record
type Settings struct {
	AutoClear     bool   `yaml:"auto_clear"`
	AutoClearSecs int    `yaml:"auto_clear_secs"`
	Backend       string `yaml:"backend"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() *Settings {
	return &Settings{
		AutoClear:     true,
		AutoClearSecs: DefaultAutoClearSecs,
		Backend:       backend.PreferAuto,
	}
}

// TTL returns the auto-clear window
func (s *Settings) TTL() time.Duration {
	return time.Duration(s.AutoClearSecs) * time.Second
}

// Validate checks ranges and names
func (s *Settings) Validate() error {
	if s.AutoClearSecs < MinAutoClearSecs || s.AutoClearSecs > MaxAutoClearSecs {
		return dserrors.ConfigError{
			Field:      "auto_clear_secs",
			Value:      s.AutoClearSecs,
			Message:    "value out of range",
			Suggestion: fmt.Sprintf("Use a value between %d and %d", MinAutoClearSecs, MaxAutoClearSecs),
		}
	}
	if !backend.ValidPreference(s.Backend) {
		return dserrors.ConfigError{
			Field:      "backend",
			Value:      s.Backend,
			Message:    "unknown backend",
			Suggestion: fmt.Sprintf("Use one of: %s, %s, %s", backend.PreferAuto, backend.NameKeyring, backend.NameUserScoped),
		}
	}
	return nil
}

// Set updates one field by its YAML key, parsing value from text
func (s *Settings) Set(key, value string) error {
	next := *s
	switch key {
	case "auto_clear":
		if err := yaml.Unmarshal([]byte(value), &next.AutoClear); err != nil {
			return dserrors.ConfigError{Field: key, Value: value, Message: "expected true or false"}
		}
	case "auto_clear_secs":
		if err := yaml.Unmarshal([]byte(value), &next.AutoClearSecs); err != nil {
			return dserrors.ConfigError{Field: key, Value: value, Message: "expected a whole number of seconds"}
		}
	case "backend":
		next.Backend = value
	default:
		return dserrors.ConfigError{
			Field:      key,
			Message:    "unknown setting",
			Suggestion: "Known settings: auto_clear, auto_clear_secs, backend",
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// LoadSettings reads path, filling unset fields with defaults
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, dserrors.UserError{
			Message:    "Failed to read settings file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, dserrors.ConfigError{
			Message:    "invalid YAML syntax in settings file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}
	if s.Backend == "" {
		s.Backend = backend.PreferAuto
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes s to path atomically
func (s *Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return dserrors.Wrap(dserrors.KindPersistenceIO, "save settings", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return dserrors.Wrap(dserrors.KindPersistenceIO, "save settings", err)
	}
	return nil
}
