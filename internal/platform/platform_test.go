package platform_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/pwclip/internal/platform"
)

func TestCurrentMatchesGOOS(t *testing.T) {
	t.Parallel()

	p := platform.Current()
	require.NotNil(t, p)

	if runtime.GOOS == "windows" {
		assert.Equal(t, "windows", p.Name())
		assert.True(t, p.SupportsUserScope())
		return
	}

	assert.Equal(t, "generic", p.Name())
	assert.False(t, p.SupportsUserScope())

	_, err := p.Protect([]byte("data"))
	assert.ErrorIs(t, err, platform.ErrUnsupported)
	_, err = p.Unprotect([]byte("data"))
	assert.ErrorIs(t, err, platform.ErrUnsupported)
	assert.NoError(t, p.ForceClearClipboard())
}
