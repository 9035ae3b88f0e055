// Package platform exposes the few native capabilities pwclip needs:
// user-scoped data protection and a forced clipboard flush. The concrete
// implementation is chosen once, at compile time, by build tags.
package platform

import "errors"

// ErrUnsupported is returned by capabilities the host platform lacks
var ErrUnsupported = errors.New("not supported on this platform")

// Platform is the native capability set
type Platform interface {
	// Name identifies the implementation ("windows", "generic")
	Name() string

	// SupportsUserScope reports whether Protect/Unprotect are usable
	SupportsUserScope() bool

	// Protect encrypts data bound to the current user session.
	// It must never raise an interactive prompt.
	Protect(data []byte) ([]byte, error)

	// Unprotect reverses Protect. It fails for blobs from another context.
	Unprotect(blob []byte) ([]byte, error)

	// ForceClearClipboard empties the native clipboard buffer. Best effort.
	ForceClearClipboard() error
}

// Current returns the implementation for the running platform
func Current() Platform {
	return current()
}
