//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procOpenClipboard  = user32.NewProc("OpenClipboard")
	procEmptyClipboard = user32.NewProc("EmptyClipboard")
	procCloseClipboard = user32.NewProc("CloseClipboard")
)

type windowsPlatform struct{}

func current() Platform {
	return windowsPlatform{}
}

func (windowsPlatform) Name() string {
	return "windows"
}

func (windowsPlatform) SupportsUserScope() bool {
	return true
}

// Protect wraps CryptProtectData with CRYPTPROTECT_UI_FORBIDDEN
func (windowsPlatform) Protect(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("dpapi: empty input")
	}
	in := windows.DataBlob{Size: uint32(len(data)), Data: &data[0]}
	var out windows.DataBlob
	if err := windows.CryptProtectData(&in, nil, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out); err != nil {
		return nil, fmt.Errorf("dpapi protect: %w", err)
	}
	return takeBlob(&out), nil
}

// Unprotect wraps CryptUnprotectData with CRYPTPROTECT_UI_FORBIDDEN
func (windowsPlatform) Unprotect(blob []byte) ([]byte, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("dpapi: empty input")
	}
	in := windows.DataBlob{Size: uint32(len(blob)), Data: &blob[0]}
	var out windows.DataBlob
	if err := windows.CryptUnprotectData(&in, nil, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out); err != nil {
		return nil, fmt.Errorf("dpapi unprotect: %w", err)
	}
	return takeBlob(&out), nil
}

// takeBlob copies a DPAPI output blob into Go memory and frees the original
func takeBlob(b *windows.DataBlob) []byte {
	if b.Data == nil || b.Size == 0 {
		return nil
	}
	defer windows.LocalFree(windows.Handle(uintptr(unsafe.Pointer(b.Data))))
	src := unsafe.Slice(b.Data, b.Size)
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

// ForceClearClipboard empties the Win32 clipboard directly
func (windowsPlatform) ForceClearClipboard() error {
	r, _, err := procOpenClipboard.Call(0)
	if r == 0 {
		return fmt.Errorf("OpenClipboard: %w", err)
	}
	defer func() { _, _, _ = procCloseClipboard.Call() }()

	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("EmptyClipboard: %w", err)
	}
	return nil
}

var _ Platform = windowsPlatform{}
