package backend

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/systmms/pwclip/internal/platform"
)

// UserScopedBackend encrypts with the platform's user-session protection.
// Ciphertext is base64 of the protected blob and only decrypts for the same
// user on the same device.
type UserScopedBackend struct {
	platform platform.Platform
}

// NewUserScopedBackend creates a user-scoped backend on top of p
func NewUserScopedBackend(p platform.Platform) *UserScopedBackend {
	return &UserScopedBackend{platform: p}
}

// Name returns the backend name
func (u *UserScopedBackend) Name() string {
	return NameUserScoped
}

// Security returns SecurityUserBound
func (u *UserScopedBackend) Security() Security {
	return SecurityUserBound
}

// Encrypt protects plaintext for the current user
func (u *UserScopedBackend) Encrypt(plaintext string) (string, error) {
	if !u.platform.SupportsUserScope() {
		return "", encryptFailed(u.Name(), platform.ErrUnsupported)
	}
	blob, err := u.platform.Protect([]byte(plaintext))
	if err != nil {
		return "", encryptFailed(u.Name(), err)
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt unprotects a ciphertext produced by Encrypt
func (u *UserScopedBackend) Decrypt(ciphertext string) (string, error) {
	if !u.platform.SupportsUserScope() {
		return "", unavailable(platform.ErrUnsupported)
	}
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", unavailable(fmt.Errorf("decode ciphertext: %w", err))
	}
	plain, err := u.platform.Unprotect(blob)
	if err != nil {
		return "", unavailable(err)
	}
	if len(plain) == 0 || !utf8.Valid(plain) {
		return "", unavailable(errors.New("protected blob is not a password"))
	}
	return string(plain), nil
}

// Erase is a no-op; nothing lives outside the record file
func (u *UserScopedBackend) Erase(string) error {
	return nil
}

var _ Backend = (*UserScopedBackend)(nil)
