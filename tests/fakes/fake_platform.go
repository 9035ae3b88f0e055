package fakes

import (
	"bytes"
	"errors"
	"sync"

	"github.com/systmms/pwclip/internal/platform"
)

// ErrFakeWrongContext is returned when unprotecting a blob from another session
var ErrFakeWrongContext = errors.New("blob protected for a different user session")

var fakeBlobMagic = []byte("FAKEDPAPI:")

// FakePlatform simulates user-scoped protection with a per-session XOR key
type FakePlatform struct {
	mu sync.Mutex

	// UserScope controls SupportsUserScope
	UserScope bool
	// Session identifies the simulated user/device context
	Session string

	ProtectErr    error
	ForceClearErr error

	// ForceClears counts ForceClearClipboard calls
	ForceClears int
}

// NewFakePlatform creates a platform with user-scoped protection enabled
func NewFakePlatform(session string) *FakePlatform {
	return &FakePlatform{UserScope: true, Session: session}
}

// Name returns "fake"
func (f *FakePlatform) Name() string {
	return "fake"
}

// SupportsUserScope reports the UserScope field
func (f *FakePlatform) SupportsUserScope() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.UserScope
}

// Protect binds data to Session
func (f *FakePlatform) Protect(data []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProtectErr != nil {
		return nil, f.ProtectErr
	}
	out := append([]byte{}, fakeBlobMagic...)
	out = append(out, []byte(f.Session)...)
	out = append(out, 0)
	return append(out, f.xor(data)...), nil
}

// Unprotect fails unless blob was protected under the same Session
func (f *FakePlatform) Unprotect(blob []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !bytes.HasPrefix(blob, fakeBlobMagic) {
		return nil, errors.New("not a protected blob")
	}
	rest := blob[len(fakeBlobMagic):]
	idx := bytes.IndexByte(rest, 0)
	if idx < 0 {
		return nil, errors.New("truncated blob")
	}
	if string(rest[:idx]) != f.Session {
		return nil, ErrFakeWrongContext
	}
	return f.xor(rest[idx+1:]), nil
}

// ForceClearClipboard records the call and returns ForceClearErr
func (f *FakePlatform) ForceClearClipboard() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ForceClears++
	return f.ForceClearErr
}

func (f *FakePlatform) xor(data []byte) []byte {
	key := []byte(f.Session + "#key")
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out
}

// Ensure FakePlatform implements platform.Platform
var _ platform.Platform = (*FakePlatform)(nil)
