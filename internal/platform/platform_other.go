//go:build !windows

package platform

type genericPlatform struct{}

func current() Platform {
	return genericPlatform{}
}

func (genericPlatform) Name() string {
	return "generic"
}

func (genericPlatform) SupportsUserScope() bool {
	return false
}

func (genericPlatform) Protect([]byte) ([]byte, error) {
	return nil, ErrUnsupported
}

func (genericPlatform) Unprotect([]byte) ([]byte, error) {
	return nil, ErrUnsupported
}

// ForceClearClipboard is a no-op; the portable clipboard clear already
// went through the helper binary.
func (genericPlatform) ForceClearClipboard() error {
	return nil
}

var _ Platform = genericPlatform{}
