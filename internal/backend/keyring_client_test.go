package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// Uses the go-keyring in-memory provider; not parallel because MockInit
// swaps a package-level provider.
func TestOSKeyringWithMockProvider(t *testing.T) {
	keyring.MockInit()

	client := NewOSKeyring()

	_, err := client.Get("pwclip-test", "default")
	assert.ErrorIs(t, err, ErrVaultItemNotFound)
	assert.ErrorIs(t, client.Delete("pwclip-test", "default"), ErrVaultItemNotFound)

	require.NoError(t, client.Set("pwclip-test", "default", "hunter2"))
	got, err := client.Get("pwclip-test", "default")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	v := NewVaultBackend(client, "pwclip-test", "default")
	require.NoError(t, v.Probe())
	plain, err := SafeDecrypt(v, "pwclip-test/default")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)

	require.NoError(t, v.Erase(""))
	_, err = client.Get("pwclip-test", "default")
	assert.ErrorIs(t, err, ErrVaultItemNotFound)
}
