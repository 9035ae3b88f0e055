package backend

import (
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/systmms/pwclip/internal/contracts"
)

// osKeyring implements contracts.KeyringClient with zalando/go-keyring
type osKeyring struct{}

// NewOSKeyring returns the keyring client for the running platform
func NewOSKeyring() contracts.KeyringClient {
	return osKeyring{}
}

// Get retrieves a secret from the OS vault
func (osKeyring) Get(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrVaultItemNotFound
		}
		return "", err
	}
	return secret, nil
}

// Set stores a secret in the OS vault
func (osKeyring) Set(service, account, secret string) error {
	return keyring.Set(service, account, secret)
}

// Delete removes a secret from the OS vault
func (osKeyring) Delete(service, account string) error {
	if err := keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrVaultItemNotFound
		}
		return err
	}
	return nil
}

// Ensure osKeyring implements contracts.KeyringClient
var _ contracts.KeyringClient = osKeyring{}
