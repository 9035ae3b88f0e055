package backend

import (
	"fmt"

	"github.com/systmms/pwclip/internal/contracts"
	"github.com/systmms/pwclip/internal/logging"
	"github.com/systmms/pwclip/internal/platform"
)

// Preference names accepted for ProbeOptions.Prefer
const (
	PreferAuto = "auto"
)

// ProbeOptions configures backend selection
type ProbeOptions struct {
	// Keyring is the vault client; nil disables the vault backend
	Keyring contracts.KeyringClient
	// Platform supplies user-scoped protection; nil disables it
	Platform platform.Platform
	// Prefer moves one secure variant to the front ("keyring", "user-scoped")
	Prefer string
	// Service and Account label the vault item
	Service string
	Account string
	Logger  *logging.Logger
}

// Selection is the outcome of Probe
type Selection struct {
	Backend  Backend
	Security Security
	// Reasons explains why each skipped candidate was rejected
	Reasons []string
	// Vault addresses the fixed vault item whenever a keyring client
	// exists, even if another backend was selected. Nil otherwise.
	Vault Backend
}

// Insecure reports whether the selected backend offers no confidentiality
func (s Selection) Insecure() bool {
	return s.Security == SecurityInsecure
}

type candidate struct {
	name  string
	build func() (Backend, error)
}

// Probe selects the most preferred available backend. Passthrough is only
// ever returned after every secure candidate failed, and the returned
// Selection says so explicitly.
func Probe(opts ProbeOptions) Selection {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var vault *VaultBackend
	if opts.Keyring != nil {
		vault = NewVaultBackend(opts.Keyring, opts.Service, opts.Account)
	}

	candidates := []candidate{
		{name: NameKeyring, build: func() (Backend, error) {
			if vault == nil {
				return nil, fmt.Errorf("no keyring client")
			}
			if err := vault.Probe(); err != nil {
				return nil, err
			}
			return vault, nil
		}},
		{name: NameUserScoped, build: func() (Backend, error) {
			if opts.Platform == nil || !opts.Platform.SupportsUserScope() {
				return nil, platform.ErrUnsupported
			}
			return NewUserScopedBackend(opts.Platform), nil
		}},
	}

	if opts.Prefer == NameUserScoped {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	var reasons []string
	for _, c := range candidates {
		b, err := c.build()
		if err != nil {
			reason := fmt.Sprintf("%s: %v", c.name, err)
			logger.Debug("Backend %s unavailable: %v", c.name, err)
			reasons = append(reasons, reason)
			continue
		}
		logger.Debug("Selected backend %s (%s)", b.Name(), b.Security())
		return Selection{Backend: b, Security: b.Security(), Reasons: reasons, Vault: vaultOrNil(vault)}
	}

	logger.Debug("No secure backend found, falling back to %s", NamePassthrough)
	p := NewPassthroughBackend()
	return Selection{Backend: p, Security: p.Security(), Reasons: reasons, Vault: vaultOrNil(vault)}
}

// vaultOrNil keeps a nil *VaultBackend from becoming a non-nil Backend
func vaultOrNil(v *VaultBackend) Backend {
	if v == nil {
		return nil
	}
	return v
}

// ValidPreference reports whether name is an accepted preference
func ValidPreference(name string) bool {
	switch name {
	case "", PreferAuto, NameKeyring, NameUserScoped:
		return true
	}
	return false
}
