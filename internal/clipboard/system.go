package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/systmms/pwclip/internal/contracts"
)

// systemClipboard implements contracts.Clipboard with atotto/clipboard
type systemClipboard struct{}

// NewSystemClipboard returns the OS clipboard
func NewSystemClipboard() contracts.Clipboard {
	return systemClipboard{}
}

// ReadAll returns the clipboard text
func (systemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text
func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Clear writes empty content; the helper tools have no separate clear verb
func (systemClipboard) Clear() error {
	return clipboard.WriteAll("")
}

// Available reports whether a clipboard helper is usable on this host
func Available() bool {
	return !clipboard.Unsupported
}

var _ contracts.Clipboard = systemClipboard{}
