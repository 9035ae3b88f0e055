package fakes

import (
	"sync"

	"github.com/systmms/pwclip/internal/contracts"
)

// FakeKeyringClient is a test double for contracts.KeyringClient
type FakeKeyringClient struct {
	mu sync.Mutex

	// Secrets is a map of service -> account -> value
	Secrets map[string]map[string]string

	// GetErr is returned by Get() if set (overrides Secrets lookup)
	GetErr error

	// SetErr is returned by Set() if set
	SetErr error

	// DeleteErr is returned by Delete() if set
	DeleteErr error

	// Deletes counts Delete calls
	Deletes int
}

// NewFakeKeyringClient creates a new fake keyring client with defaults
func NewFakeKeyringClient() *FakeKeyringClient {
	return &FakeKeyringClient{
		Secrets: make(map[string]map[string]string),
	}
}

// SetSecret adds a secret to the fake keyring
func (f *FakeKeyringClient) SetSecret(service, account, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.put(service, account, value)
}

// Secret returns a stored value directly
func (f *FakeKeyringClient) Secret(service, account string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.Secrets[service][account]
	return v, ok
}

// Get retrieves a secret from the fake keyring
func (f *FakeKeyringClient) Get(service, account string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetErr != nil {
		return "", f.GetErr
	}
	if accounts, ok := f.Secrets[service]; ok {
		if value, ok := accounts[account]; ok {
			return value, nil
		}
	}
	return "", ErrFakeKeyringItemNotFound
}

// Set stores a secret in the fake keyring
func (f *FakeKeyringClient) Set(service, account, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SetErr != nil {
		return f.SetErr
	}
	f.put(service, account, secret)
	return nil
}

// Delete removes a secret from the fake keyring
func (f *FakeKeyringClient) Delete(service, account string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Deletes++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.Secrets[service][account]; !ok {
		return ErrFakeKeyringItemNotFound
	}
	delete(f.Secrets[service], account)
	return nil
}

func (f *FakeKeyringClient) put(service, account, value string) {
	if f.Secrets == nil {
		f.Secrets = make(map[string]map[string]string)
	}
	if f.Secrets[service] == nil {
		f.Secrets[service] = make(map[string]string)
	}
	f.Secrets[service][account] = value
}

// ErrFakeKeyringItemNotFound is returned when a keyring item doesn't exist
var ErrFakeKeyringItemNotFound = &fakeKeyringError{code: "itemNotFound"}

// ErrFakeKeyringAccessDenied is returned when keyring access is denied
var ErrFakeKeyringAccessDenied = &fakeKeyringError{code: "accessDenied"}

// ErrFakeKeyringNoSession simulates a missing D-Bus session
var ErrFakeKeyringNoSession = &fakeKeyringError{code: "noSession"}

type fakeKeyringError struct {
	code string
}

func (e *fakeKeyringError) Error() string {
	switch e.code {
	case "itemNotFound":
		return "keyring item not found"
	case "accessDenied":
		return "keyring access denied"
	case "noSession":
		return "failed to connect to dbus session bus"
	default:
		return "keyring error: " + e.code
	}
}

// Ensure FakeKeyringClient implements contracts.KeyringClient
var _ contracts.KeyringClient = (*FakeKeyringClient)(nil)
