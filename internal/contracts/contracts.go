// Package contracts defines interfaces for the OS clients pwclip talks to.
// These interfaces enable dependency injection for testing.
package contracts

// KeyringClient abstracts the OS credential vault
type KeyringClient interface {
	// Get retrieves a secret from the vault
	Get(service, account string) (string, error)

	// Set stores or overwrites a secret in the vault
	Set(service, account, secret string) error

	// Delete removes a secret from the vault
	Delete(service, account string) error
}

// Clipboard abstracts the system clipboard
type Clipboard interface {
	// ReadAll returns the current text content
	ReadAll() (string, error)

	// WriteAll replaces the clipboard content with text
	WriteAll(text string) error

	// Clear empties the clipboard
	Clear() error
}
