package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Cell holds at most one secret inside a memguard enclave.
// The zero value is an empty cell ready for use.
type Cell struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
}

// Seal replaces the cell's content with value. An empty value empties the cell.
func (c *Cell) Seal(value string) {
	buf := []byte(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(buf) == 0 {
		c.enclave = nil
		return
	}
	// NewEnclave wipes buf after copying it into protected memory.
	c.enclave = memguard.NewEnclave(buf)
}

// Reveal decrypts the cell. ok is false when the cell is empty or the
// enclave cannot be opened.
func (c *Cell) Reveal() (value string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.enclave == nil {
		return "", false
	}
	locked, err := c.enclave.Open()
	if err != nil {
		return "", false
	}
	defer locked.Destroy()

	return string(locked.Bytes()), true
}

// Equal reports whether the cell holds exactly value without handing the
// plaintext to the caller.
func (c *Cell) Equal(value string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.enclave == nil {
		return false
	}
	locked, err := c.enclave.Open()
	if err != nil {
		return false
	}
	defer locked.Destroy()

	return locked.EqualTo([]byte(value))
}

// Empty reports whether the cell holds nothing.
func (c *Cell) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enclave == nil
}

// Wipe drops the sealed value. Idempotent.
func (c *Cell) Wipe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enclave = nil
}

// Purge destroys all memguard-managed memory. Call once at process exit.
func Purge() {
	memguard.Purge()
}
