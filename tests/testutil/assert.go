package testutil

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSecretRedacted verifies that a secret value does not appear in a
// string and that the [REDACTED] marker does.
func AssertSecretRedacted(t *testing.T, output, secretValue string) {
	t.Helper()

	assert.NotContains(t, output, secretValue,
		"Secret value %q should be redacted, but appears in output", secretValue)
	assert.Contains(t, output, "[REDACTED]",
		"Expected [REDACTED] marker when secret is used")
}

// AssertNoSecretLeak verifies that none of secrets appears in output
func AssertNoSecretLeak(t *testing.T, output string, secrets []string) {
	t.Helper()

	for _, secret := range secrets {
		assert.NotContains(t, output, secret,
			"Secret %q should not appear in output", secret)
	}
}

// AssertFileNotContains verifies that path exists and does not contain substr.
// Used to check that no plaintext reaches disk.
func AssertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read file %s", path)
	assert.NotContains(t, string(data), substr, "File %s should not contain %q", path, substr)
}

// AssertFileMode verifies the permission bits of path. Skipped on Windows,
// where modes do not reflect ACLs.
func AssertFileMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()

	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	require.NoError(t, err, "Failed to stat %s", path)
	assert.Equal(t, want, info.Mode().Perm(), "Unexpected mode for %s", path)
}
