// Package secure provides memory-safe handling of the session secret.
//
// It wraps the memguard library so that the cached password and the
// clipboard snapshot are:
//
//   - Encrypted at rest in memory (XSalsa20Poly1305)
//   - Protected from swapping via mlock
//   - Dropped on demand without leaving plaintext copies behind
//
// # Usage
//
//	var c secure.Cell
//	c.Seal("hunter2")
//	if v, ok := c.Reveal(); ok {
//	    // use v
//	}
//	c.Wipe()
//
// Reveal necessarily returns a Go string, which the runtime may copy; the
// cell only bounds how long the plaintext lives in ordinary heap memory.
// Call memguard.Purge (via secure.Purge) at process exit.
//
// It does NOT protect against:
//
//   - Attackers with root access to the running process
//   - Hardware-level attacks (cold boot, DMA)
package secure
