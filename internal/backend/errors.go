package backend

import (
	"errors"
	"fmt"
	"strings"
)

// VaultError wraps OS vault errors with context
type VaultError struct {
	Op      string // Operation: "get", "set", "delete", "probe"
	Service string
	Account string
	Err     error
}

func (e *VaultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vault %s error for %s/%s: %v", e.Op, e.Service, e.Account, e.Err)
	}
	return fmt.Sprintf("vault %s error for %s/%s", e.Op, e.Service, e.Account)
}

func (e *VaultError) Unwrap() error {
	return e.Err
}

// Vault sentinel errors
var (
	ErrVaultItemNotFound = errors.New("vault item not found")
	ErrVaultAccessDenied = errors.New("vault access denied")
)

// isVaultNotFoundError checks if an error indicates item not found
func isVaultNotFoundError(err error) bool {
	if errors.Is(err, ErrVaultItemNotFound) {
		return true
	}
	// Check for common "not found" patterns in error messages
	errStr := err.Error()
	return strings.Contains(errStr, "not found") ||
		strings.Contains(errStr, "itemNotFound")
}

// isVaultAccessDeniedError checks if an error indicates access was denied
func isVaultAccessDeniedError(err error) bool {
	if errors.Is(err, ErrVaultAccessDenied) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "access denied") ||
		strings.Contains(errStr, "user denied") ||
		strings.Contains(errStr, "canceled")
}
