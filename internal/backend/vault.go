package backend

import (
	"fmt"
	"strings"

	"github.com/systmms/pwclip/internal/contracts"
)

// VaultBackend keeps the secret in the OS credential vault under a fixed
// service/account label. The ciphertext written to the record file is
// only the service/account reference.
type VaultBackend struct {
	service string
	account string
	client  contracts.KeyringClient
}

// NewVaultBackend creates a vault backend for service/account
func NewVaultBackend(client contracts.KeyringClient, service, account string) *VaultBackend {
	return &VaultBackend{
		service: service,
		account: account,
		client:  client,
	}
}

// Name returns the backend name
func (v *VaultBackend) Name() string {
	return NameKeyring
}

// Security returns SecurityVault
func (v *VaultBackend) Security() Security {
	return SecurityVault
}

// Probe checks that the vault answers. A missing item counts as reachable.
func (v *VaultBackend) Probe() error {
	_, err := v.client.Get(v.service, v.account)
	if err == nil || isVaultNotFoundError(err) {
		return nil
	}
	return &VaultError{Op: "probe", Service: v.service, Account: v.account, Err: err}
}

// Encrypt stores plaintext in the vault and returns its reference
func (v *VaultBackend) Encrypt(plaintext string) (string, error) {
	if err := v.client.Set(v.service, v.account, plaintext); err != nil {
		if isVaultAccessDeniedError(err) {
			err = ErrVaultAccessDenied
		}
		return "", encryptFailed(v.Name(), &VaultError{Op: "set", Service: v.service, Account: v.account, Err: err})
	}
	return v.reference(), nil
}

// Decrypt reads the referenced vault item
func (v *VaultBackend) Decrypt(ciphertext string) (string, error) {
	ref, err := ParseVaultReference(ciphertext)
	if err != nil {
		return "", unavailable(err)
	}
	if ref.Service != v.service || ref.Account != v.account {
		return "", unavailable(fmt.Errorf("record references foreign vault item %s/%s", ref.Service, ref.Account))
	}

	secret, err := v.client.Get(ref.Service, ref.Account)
	if err != nil {
		return "", unavailable(&VaultError{Op: "get", Service: ref.Service, Account: ref.Account, Err: err})
	}
	if secret == "" {
		return "", unavailable(ErrVaultItemNotFound)
	}
	return secret, nil
}

// Erase deletes the vault item. A missing item is not an error.
func (v *VaultBackend) Erase(string) error {
	if err := v.client.Delete(v.service, v.account); err != nil && !isVaultNotFoundError(err) {
		return &VaultError{Op: "delete", Service: v.service, Account: v.account, Err: err}
	}
	return nil
}

func (v *VaultBackend) reference() string {
	return v.service + "/" + v.account
}

// VaultReference represents a parsed vault item reference
type VaultReference struct {
	Service string
	Account string
}

// ParseVaultReference parses a vault reference string
// Format: service/account
func ParseVaultReference(key string) (*VaultReference, error) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("vault reference must be service/account format, got: %s", key)
	}

	service := strings.TrimSpace(parts[0])
	account := strings.TrimSpace(parts[1])

	if service == "" {
		return nil, fmt.Errorf("vault reference service cannot be empty")
	}
	if account == "" {
		return nil, fmt.Errorf("vault reference account cannot be empty")
	}

	return &VaultReference{
		Service: service,
		Account: account,
	}, nil
}

var _ Backend = (*VaultBackend)(nil)
