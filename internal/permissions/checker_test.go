package permissions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/pwclip/internal/logging"
)

func newUnixChecker() *PermissionChecker {
	c := NewPermissionChecker(logging.Discard())
	c.goos = "linux"
	return c
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mode    os.FileMode
		max     os.FileMode
		allowed bool
	}{
		{name: "private_file", mode: 0o600, max: PrivateFile, allowed: true},
		{name: "read_only_file", mode: 0o400, max: PrivateFile, allowed: true},
		{name: "group_readable", mode: 0o640, max: PrivateFile, allowed: false},
		{name: "world_readable", mode: 0o644, max: PrivateFile, allowed: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "cred.json")
			require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
			require.NoError(t, os.Chmod(path, tt.mode))

			res := newUnixChecker().Check(Request{Path: path, Max: tt.max})
			assert.Equal(t, tt.allowed, res.Allowed, res.Reason)
			assert.Equal(t, tt.mode, res.Mode)
		})
	}
}

func TestCheckMissingPasses(t *testing.T) {
	t.Parallel()

	res := newUnixChecker().Check(Request{Path: filepath.Join(t.TempDir(), "nope"), Max: PrivateFile})
	assert.True(t, res.Allowed)
	assert.Equal(t, "not present", res.Reason)
}

func TestCheckKindMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := newUnixChecker().Check(Request{Path: dir, Max: PrivateFile})
	assert.False(t, res.Allowed)
	assert.Contains(t, res.Reason, "expected a file")
}

func TestCheckWindowsSkipsModes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cred.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	require.NoError(t, os.Chmod(path, 0o644))

	c := NewPermissionChecker(nil)
	c.goos = "windows"
	res := c.Check(Request{Path: path, Max: PrivateFile})
	assert.True(t, res.Allowed)
}

func TestCheckDataFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "pwclip")
	require.NoError(t, os.Mkdir(dir, 0o700))
	record := filepath.Join(dir, "cred.json")
	require.NoError(t, os.WriteFile(record, []byte("{}"), 0o600))

	results := newUnixChecker().CheckDataFiles(dir, record, filepath.Join(dir, "settings.yaml"))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Allowed, "%s: %s", r.Path, r.Reason)
	}
}
