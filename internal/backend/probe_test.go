package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/pwclip/internal/backend"
	"github.com/systmms/pwclip/tests/fakes"
)

func TestProbe(t *testing.T) {
	t.Parallel()

	noSession := func() *fakes.FakeKeyringClient {
		f := fakes.NewFakeKeyringClient()
		f.GetErr = fakes.ErrFakeKeyringNoSession
		return f
	}
	noScope := func() *fakes.FakePlatform {
		p := fakes.NewFakePlatform("s")
		p.UserScope = false
		return p
	}

	tests := []struct {
		name         string
		opts         backend.ProbeOptions
		wantBackend  string
		wantSecurity backend.Security
		wantInsecure bool
		wantReasons  int
	}{
		{
			name:         "vault_first",
			opts:         backend.ProbeOptions{Keyring: fakes.NewFakeKeyringClient(), Platform: fakes.NewFakePlatform("s")},
			wantBackend:  backend.NameKeyring,
			wantSecurity: backend.SecurityVault,
		},
		{
			name:         "user_scoped_when_vault_unreachable",
			opts:         backend.ProbeOptions{Keyring: noSession(), Platform: fakes.NewFakePlatform("s")},
			wantBackend:  backend.NameUserScoped,
			wantSecurity: backend.SecurityUserBound,
			wantReasons:  1,
		},
		{
			name:         "prefer_user_scoped",
			opts:         backend.ProbeOptions{Keyring: fakes.NewFakeKeyringClient(), Platform: fakes.NewFakePlatform("s"), Prefer: backend.NameUserScoped},
			wantBackend:  backend.NameUserScoped,
			wantSecurity: backend.SecurityUserBound,
		},
		{
			name:         "prefer_user_scoped_falls_back_to_vault",
			opts:         backend.ProbeOptions{Keyring: fakes.NewFakeKeyringClient(), Platform: noScope(), Prefer: backend.NameUserScoped},
			wantBackend:  backend.NameKeyring,
			wantSecurity: backend.SecurityVault,
			wantReasons:  1,
		},
		{
			name:         "passthrough_flagged_insecure",
			opts:         backend.ProbeOptions{Keyring: noSession(), Platform: noScope()},
			wantBackend:  backend.NamePassthrough,
			wantSecurity: backend.SecurityInsecure,
			wantInsecure: true,
			wantReasons:  2,
		},
		{
			name:         "nothing_configured",
			opts:         backend.ProbeOptions{},
			wantBackend:  backend.NamePassthrough,
			wantSecurity: backend.SecurityInsecure,
			wantInsecure: true,
			wantReasons:  2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.opts.Service = testService
			tt.opts.Account = testAccount
			sel := backend.Probe(tt.opts)

			assert.Equal(t, tt.wantBackend, sel.Backend.Name())
			assert.Equal(t, tt.wantSecurity, sel.Security)
			assert.Equal(t, tt.wantInsecure, sel.Insecure())
			assert.Len(t, sel.Reasons, tt.wantReasons)
			if tt.opts.Keyring != nil {
				require.NotNil(t, sel.Vault)
				assert.Equal(t, backend.NameKeyring, sel.Vault.Name())
			} else {
				assert.Nil(t, sel.Vault)
			}
		})
	}
}

func TestValidPreference(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"", "auto", "keyring", "user-scoped"} {
		assert.True(t, backend.ValidPreference(ok), ok)
	}
	for _, bad := range []string{"passthrough", "dpapi", "AUTO"} {
		assert.False(t, backend.ValidPreference(bad), bad)
	}
}
