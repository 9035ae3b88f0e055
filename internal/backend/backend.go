// Package backend implements the pluggable at-rest protection for the
// single pwclip secret.
//
// Three variants exist, tried in this order by Probe:
//
//   - keyring: the OS credential vault (macOS Keychain, Secret Service,
//     Windows Credential Manager) via zalando/go-keyring
//   - user-scoped: data protection bound to the logged-in user (DPAPI)
//   - passthrough: reversible base64, no confidentiality at all
//
// Probe runs once at startup and reports the chosen variant together with
// an explicit Security level so callers can warn about passthrough.
package backend

import (
	"errors"
	"fmt"

	dserrors "github.com/systmms/pwclip/internal/errors"
)

// ErrUnavailable is wrapped by every Decrypt failure. Wrong context,
// corrupted ciphertext and missing backend are not distinguished.
var ErrUnavailable = errors.New("secret unavailable")

// Backend encrypts and decrypts the secret within one storage context
type Backend interface {
	// Name is stored in the record file and identifies the variant
	Name() string

	// Security describes the protection this variant gives
	Security() Security

	// Encrypt returns an opaque, storable ciphertext
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt; all failures wrap ErrUnavailable
	Decrypt(ciphertext string) (string, error)

	// Erase removes anything the variant stored outside the record file
	Erase(ciphertext string) error
}

// Security is the tri-state protection level reported by backend selection
type Security int

const (
	// SecurityInsecure means the secret is only encoded, not encrypted
	SecurityInsecure Security = iota
	// SecurityUserBound means encryption tied to the current user session
	SecurityUserBound
	// SecurityVault means the OS credential vault holds the secret
	SecurityVault
)

func (s Security) String() string {
	switch s {
	case SecurityVault:
		return "vault"
	case SecurityUserBound:
		return "user-bound"
	default:
		return "insecure"
	}
}

// Backend names as written to the record file and accepted in settings
const (
	NameKeyring     = "keyring"
	NameUserScoped  = "user-scoped"
	NamePassthrough = "passthrough"
)

// SafeDecrypt calls b.Decrypt and converts any panic into ErrUnavailable
func SafeDecrypt(b Backend, ciphertext string) (plaintext string, err error) {
	defer func() {
		if r := recover(); r != nil {
			plaintext = ""
			err = unavailable(fmt.Errorf("backend %s panicked: %v", b.Name(), r))
		}
	}()
	plaintext, err = b.Decrypt(ciphertext)
	if err != nil && !errors.Is(err, ErrUnavailable) {
		err = unavailable(err)
	}
	return plaintext, err
}

func unavailable(cause error) error {
	return dserrors.Wrap(dserrors.KindDecryption, "decrypt", fmt.Errorf("%w: %v", ErrUnavailable, cause))
}

func encryptFailed(name string, cause error) error {
	return dserrors.Wrap(dserrors.KindEncryption, "encrypt", fmt.Errorf("%s: %w", name, cause))
}
