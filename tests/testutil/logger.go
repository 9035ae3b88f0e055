package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/systmms/pwclip/internal/logging"
)

// TestLogger captures the output of a real logging.Logger for validation in
// tests.
//
// Example usage:
//
//	logs := NewTestLoggerWithDebug(t, true)
//	logs.Logger().Debug("Stored %s", logging.Secret("password123"))
//	logs.AssertRedacted(t, "password123")
type TestLogger struct {
	mu     sync.Mutex
	buffer bytes.Buffer
	logger *logging.Logger
}

// NewTestLogger creates a TestLogger with debug output disabled
func NewTestLogger(t *testing.T) *TestLogger {
	t.Helper()
	return NewTestLoggerWithDebug(t, false)
}

// NewTestLoggerWithDebug creates a TestLogger that also captures Debug calls
// when debug is true.
func NewTestLoggerWithDebug(t *testing.T, debug bool) *TestLogger {
	t.Helper()
	l := &TestLogger{}
	l.logger = logging.NewWithWriter(lockedWriter{l}, debug, true)
	return l
}

// Logger returns the logger to hand to the code under test
func (l *TestLogger) Logger() *logging.Logger {
	return l.logger
}

type lockedWriter struct {
	l *TestLogger
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.buffer.Write(p)
}

// GetOutput returns everything captured so far
func (l *TestLogger) GetOutput() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffer.String()
}

// Clear drops the captured output
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buffer.Reset()
}

// AssertContains asserts that the log output contains substr
func (l *TestLogger) AssertContains(t *testing.T, substr string) {
	t.Helper()
	assert.Contains(t, l.GetOutput(), substr, "Expected log output to contain %q", substr)
}

// AssertNotContains asserts that the log output does NOT contain substr
func (l *TestLogger) AssertNotContains(t *testing.T, substr string) {
	t.Helper()
	assert.NotContains(t, l.GetOutput(), substr, "Expected log output to NOT contain %q", substr)
}

// AssertRedacted asserts that secretValue never appears while a [REDACTED]
// marker does.
func (l *TestLogger) AssertRedacted(t *testing.T, secretValue string) {
	t.Helper()
	AssertSecretRedacted(t, l.GetOutput(), secretValue)
}

// AssertLogCount asserts how often a level marker appears.
//
// Level markers:
//   - Info: "✓"
//   - Warn: "⚠"
//   - Error: "✗"
//   - Debug: "[DEBUG]"
func (l *TestLogger) AssertLogCount(t *testing.T, level string, count int) {
	t.Helper()

	var marker string
	switch level {
	case "info":
		marker = "✓"
	case "warn":
		marker = "⚠"
	case "error":
		marker = "✗"
	case "debug":
		marker = "[DEBUG]"
	default:
		t.Fatalf("Unknown log level: %s", level)
	}

	actual := strings.Count(l.GetOutput(), marker)
	assert.Equal(t, count, actual, "Expected %d %s log messages, got %d", count, level, actual)
}

// Lines returns the non-empty output lines
func (l *TestLogger) Lines() []string {
	lines := strings.Split(l.GetOutput(), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}
