package backend

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// PassthroughBackend only base64-encodes. It is selected when nothing
// secure exists and is always reported as SecurityInsecure.
type PassthroughBackend struct{}

// NewPassthroughBackend creates the insecure fallback backend
func NewPassthroughBackend() *PassthroughBackend {
	return &PassthroughBackend{}
}

// Name returns the backend name
func (p *PassthroughBackend) Name() string {
	return NamePassthrough
}

// Security returns SecurityInsecure
func (p *PassthroughBackend) Security() Security {
	return SecurityInsecure
}

// Encrypt encodes plaintext
func (p *PassthroughBackend) Encrypt(plaintext string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(plaintext)), nil
}

// Decrypt decodes ciphertext
func (p *PassthroughBackend) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", unavailable(fmt.Errorf("decode ciphertext: %w", err))
	}
	if len(raw) == 0 || !utf8.Valid(raw) {
		return "", unavailable(errors.New("decoded value is not a password"))
	}
	return string(raw), nil
}

// Erase is a no-op
func (p *PassthroughBackend) Erase(string) error {
	return nil
}

var _ Backend = (*PassthroughBackend)(nil)
