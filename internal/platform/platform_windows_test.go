//go:build windows

package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/pwclip/internal/platform"
)

func TestProtectRoundTrip(t *testing.T) {
	t.Parallel()

	p := platform.Current()
	blob, err := p.Protect([]byte("P@ss1"))
	require.NoError(t, err)
	assert.NotEqual(t, []byte("P@ss1"), blob)

	plain, err := p.Unprotect(blob)
	require.NoError(t, err)
	assert.Equal(t, "P@ss1", string(plain))
}

func TestUnprotectRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := platform.Current().Unprotect([]byte("not a dpapi blob"))
	assert.Error(t, err)
}
