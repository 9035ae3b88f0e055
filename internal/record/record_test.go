package record_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/record"
)

func newFile(t *testing.T) *record.File {
	t.Helper()
	return record.NewFile(filepath.Join(t.TempDir(), "data", "cred.json"))
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	f := newFile(t)
	assert.False(t, f.Exists())

	want := record.Record{Label: "default", Backend: "keyring", Ciphertext: "pwclip/default"}
	require.NoError(t, f.Save(want))
	assert.True(t, f.Exists())

	got, err := f.Load()
	require.NoError(t, err)
	want.Version = record.CurrentVersion
	assert.Equal(t, want, got)
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()

	f := newFile(t)
	require.NoError(t, f.Save(record.Record{Label: "default", Backend: "passthrough", Ciphertext: "YQ=="}))
	require.NoError(t, f.Save(record.Record{Label: "default", Backend: "passthrough", Ciphertext: "Yg=="}))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "Yg==", got.Ciphertext)
}

func TestSaveFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions only")
	}
	t.Parallel()

	f := newFile(t)
	require.NoError(t, f.Save(record.Record{Label: "default", Backend: "passthrough", Ciphertext: "YQ=="}))

	info, err := os.Stat(f.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(f.Path()))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := newFile(t).Load()
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestLoadLegacyFormat(t *testing.T) {
	t.Parallel()

	f := newFile(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.Path()), 0o700))
	require.NoError(t, os.WriteFile(f.Path(), []byte(`{"label": "default", "dpapi": "AQID"}`), 0o600))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "user-scoped", got.Backend)
	assert.Equal(t, "AQID", got.Ciphertext)
	assert.Equal(t, 0, got.Version)
}

func TestDecodeCorrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "whitespace", data: "  \n"},
		{name: "not_json", data: "garbage{"},
		{name: "array", data: `["label"]`},
		{name: "missing_label", data: `{"backend": "keyring", "ciphertext": "x"}`},
		{name: "missing_ciphertext", data: `{"label": "default", "backend": "keyring"}`},
		{name: "empty_ciphertext", data: `{"label": "default", "backend": "keyring", "ciphertext": ""}`},
		{name: "wrong_type", data: `{"label": 7, "backend": "keyring", "ciphertext": "x"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := record.Decode([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, record.ErrCorrupt)
			assert.ErrorIs(t, err, dserrors.KindDecryption)
		})
	}
}

func TestDeleteIdempotent(t *testing.T) {
	t.Parallel()

	f := newFile(t)
	assert.NoError(t, f.Delete())
	assert.NoError(t, f.Delete())

	require.NoError(t, f.Save(record.Record{Label: "default", Backend: "passthrough", Ciphertext: "YQ=="}))
	assert.NoError(t, f.Delete())
	assert.False(t, f.Exists())
	assert.NoError(t, f.Delete())
}

func TestSaveIOFailure(t *testing.T) {
	t.Parallel()

	// Parent "directory" is a regular file.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	f := record.NewFile(filepath.Join(blocker, "cred.json"))
	err := f.Save(record.Record{Label: "default", Backend: "passthrough", Ciphertext: "YQ=="})
	require.Error(t, err)
	assert.ErrorIs(t, err, dserrors.KindPersistenceIO)
}
