package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/pwclip/internal/app"
	"github.com/systmms/pwclip/internal/backend"
	"github.com/systmms/pwclip/internal/clipboard"
	"github.com/systmms/pwclip/internal/config"
	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/tests/fakes"
	"github.com/systmms/pwclip/tests/testutil"
)

type fixture struct {
	cfg      *config.Config
	keyring  *fakes.FakeKeyringClient
	platform *fakes.FakePlatform
	clip     *fakes.FakeClipboard
	clock    *fakes.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		cfg:      testutil.NewTestConfig(t).Build(),
		keyring:  fakes.NewFakeKeyringClient(),
		platform: fakes.NewFakePlatform("alice"),
		clip:     fakes.NewFakeClipboard(),
		clock:    fakes.NewFakeClock(),
	}
}

func (f *fixture) open() *app.App {
	return app.New(app.Options{
		Config:    f.cfg,
		Keyring:   f.keyring,
		Platform:  f.platform,
		Clipboard: f.clip,
		Clock:     f.clock,
	})
}

func TestNewSelectsVaultFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.open()
	assert.Equal(t, backend.NameKeyring, a.Selection().Backend.Name())
	assert.False(t, a.Selection().Insecure())
}

func TestNewHonoursPreference(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.cfg.Settings.Backend = backend.NameUserScoped

	a := f.open()
	assert.Equal(t, backend.NameUserScoped, a.Selection().Backend.Name())
}

func TestNewFallsBackToPassthrough(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.keyring.GetErr = fakes.ErrFakeKeyringNoSession
	f.platform.UserScope = false

	a := f.open()
	assert.True(t, a.Selection().Insecure())
	assert.Len(t, a.Selection().Reasons, 2)
	assert.True(t, a.Status().Insecure)
}

func TestRememberedSecretSurvivesRestart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	first := f.open()
	res, err := first.Set("P@ss1", true)
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	first.Close()

	second := f.open()
	st := second.Status()
	assert.True(t, st.HasSecret)
	assert.True(t, st.Remembered)

	require.NoError(t, second.Copy())
	assert.Equal(t, "P@ss1", f.clip.Text())
}

func TestCopyUsesSettings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.cfg.Settings.AutoClearSecs = 5

	a := f.open()
	_, err := a.Set("P@ss1", false)
	require.NoError(t, err)
	require.NoError(t, a.Copy())
	assert.Equal(t, clipboard.StateArmed, a.Clipboard().State())

	f.clock.Advance(4 * time.Second)
	assert.Equal(t, "P@ss1", f.clip.Text())
	f.clock.Advance(time.Second)
	assert.Empty(t, f.clip.Text())
}

func TestCopyWithoutSecret(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.open().CopyWith(true, time.Second)
	assert.ErrorIs(t, err, app.ErrNoSecret)
	assert.Empty(t, f.clip.Writes)
}

func TestSetEmptyRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.open().Set("", true)
	assert.ErrorIs(t, err, dserrors.ErrEmptySecret)
}

func TestForget(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.open()
	_, err := a.Set("P@ss1", true)
	require.NoError(t, err)

	require.NoError(t, a.Forget())
	assert.False(t, a.HasSecret())
	assert.False(t, f.open().HasSecret())

	require.NoError(t, a.Forget(), "forgetting twice is fine")
}

func TestClearMemoryLeavesTimerArmed(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.open()
	_, err := a.Set("P@ss1", false)
	require.NoError(t, err)
	require.NoError(t, a.CopyWith(true, 3*time.Second))

	a.ClearMemory()
	assert.False(t, a.HasSecret())
	assert.Equal(t, clipboard.StateArmed, a.Clipboard().State())

	f.clock.Advance(3 * time.Second)
	assert.Empty(t, f.clip.Text())
}

func TestCloseFlushesPendingClear(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.open()
	_, err := a.Set("P@ss1", false)
	require.NoError(t, err)
	require.NoError(t, a.CopyWith(true, time.Minute))

	a.Close()
	assert.Empty(t, f.clip.Text())
	assert.Equal(t, clipboard.StateIdle, a.Clipboard().State())
}

func TestPersistFailureKeepsSessionValue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.keyring.SetErr = fakes.ErrFakeKeyringAccessDenied

	a := f.open()
	res, err := a.Set("P@ss1", true)
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Error(t, res.Err)
	assert.True(t, a.HasSecret())
}
