package fakes

import (
	"sync"

	"github.com/systmms/pwclip/internal/contracts"
)

// FakeClipboard is an in-memory system clipboard
type FakeClipboard struct {
	mu sync.Mutex

	text string

	// ReadErr, WriteErr and ClearErr are returned by the matching call if set
	ReadErr  error
	WriteErr error
	ClearErr error

	// Writes records every successful WriteAll argument
	Writes []string
	// Clears counts successful Clear calls
	Clears int
}

// NewFakeClipboard creates an empty fake clipboard
func NewFakeClipboard() *FakeClipboard {
	return &FakeClipboard{}
}

// ReadAll returns the current content
func (f *FakeClipboard) ReadAll() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return "", f.ReadErr
	}
	return f.text, nil
}

// WriteAll replaces the content
func (f *FakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.text = text
	f.Writes = append(f.Writes, text)
	return nil
}

// Clear empties the content
func (f *FakeClipboard) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.text = ""
	f.Clears++
	return nil
}

// SetExternal simulates another application writing to the clipboard
func (f *FakeClipboard) SetExternal(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
}

// Text returns the content without going through ReadErr
func (f *FakeClipboard) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// Ensure FakeClipboard implements contracts.Clipboard
var _ contracts.Clipboard = (*FakeClipboard)(nil)
