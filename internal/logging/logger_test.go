package logging_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/systmms/pwclip/internal/logging"
)

func TestSecretRedaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "secret is redacted", input: "my-secret-password"},
		{name: "empty secret is still redacted", input: ""},
		{name: "complex secret is redacted", input: "password123!@#"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, "[REDACTED]", logging.Secret(tt.input).String())
			assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", logging.Secret(tt.input)))
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, false, true)

	logger.Info("copied %s", "password")
	logger.Warn("secure store not available")
	logger.Error("write failed")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "✓ copied password")
	assert.Contains(t, out, "⚠ secure store not available")
	assert.Contains(t, out, "✗ write failed")
	assert.NotContains(t, out, "hidden")
	assert.False(t, logger.DebugEnabled())
}

func TestLoggerDebugMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, true, true)

	secretValue := "debug-secret-api-key-67890"
	logger.Debug("Processing secret: %s", logging.Secret(secretValue))

	out := buf.String()
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, secretValue)
}

func TestLoggerColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logging.NewWithWriter(&buf, false, false).Warn("careful")

	assert.Contains(t, buf.String(), "\033[33m")
}

func TestDiscardLogger(t *testing.T) {
	t.Parallel()

	// Must not panic.
	logging.Discard().Error("nothing to see")
}

// TestRedactFunction tests the Redact utility function
func TestRedactFunction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		secrets  []string
		expected string
	}{
		{
			name:     "single secret redacted",
			input:    "The password is secret123",
			secrets:  []string{"secret123"},
			expected: "The password is [REDACTED]",
		},
		{
			name:     "empty secret ignored",
			input:    "This has no secrets",
			secrets:  []string{""},
			expected: "This has no secrets",
		},
		{
			name:     "short secret ignored",
			input:    "Short secret: ab",
			secrets:  []string{"ab"},
			expected: "Short secret: ab",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, logging.Redact(tt.input, tt.secrets))
		})
	}
}
