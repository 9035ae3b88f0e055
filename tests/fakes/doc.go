// Package fakes provides test doubles for pwclip's OS-facing interfaces.
//
// This package contains fake implementations of the keyring, clipboard,
// platform and clock abstractions so the store and the clipboard manager
// can be unit tested without a desktop session. Fakes are manually
// implemented (not generated) to provide precise control over test
// behavior.
//
// Usage:
//
//	kr := fakes.NewFakeKeyringClient()
//	kr.SetSecret("pwclip", "default", "hunter2")
//	sel := backend.Probe(backend.ProbeOptions{Keyring: kr, Service: "pwclip", Account: "default"})
//	// sel.Backend is the vault backend backed by the fake
package fakes
