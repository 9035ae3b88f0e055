// Package clipboard exposes the secret through the system clipboard for a
// bounded window and revokes it afterwards.
//
// The clipboard is global state other applications write to at any time.
// The manager therefore only clears content that is still exactly the value
// it wrote itself; anything the user copied in the meantime is left alone.
package clipboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/systmms/pwclip/internal/contracts"
	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/logging"
	"github.com/systmms/pwclip/internal/metrics"
	"github.com/systmms/pwclip/internal/platform"
	"github.com/systmms/pwclip/internal/secure"
)

// MinTTL is the shortest auto-clear window honoured by Copy
const MinTTL = time.Second

// State of the manager
type State int

const (
	// StateIdle means no clear is pending
	StateIdle State = iota
	// StateArmed means a snapshot is held and its timer is running
	StateArmed
)

func (s State) String() string {
	if s == StateArmed {
		return "armed"
	}
	return "idle"
}

// EventKind classifies manager notifications
type EventKind int

const (
	// EventCopied follows a successful clipboard write
	EventCopied EventKind = iota
	// EventCleared means the snapshot was still on the clipboard and was removed
	EventCleared
	// EventSkipped means foreign content had replaced the snapshot
	EventSkipped
	// EventFailed means the clipboard could not be read or cleared
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventCopied:
		return "copied"
	case EventCleared:
		return "cleared"
	case EventSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Event is delivered to the Notifier after each transition
type Event struct {
	Kind EventKind
	// TTL and AutoClear describe the copy for EventCopied
	TTL       time.Duration
	AutoClear bool
	Err       error
}

// Notifier receives user-visible signals ("copied", "cleared", ...)
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Event)

// Notify calls f(e)
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// Options configures a Manager
type Options struct {
	Clipboard contracts.Clipboard
	// Platform provides the best-effort forced flush; may be nil
	Platform platform.Platform
	// Clock defaults to SystemClock
	Clock Clock
	// Notifier may be nil
	Notifier Notifier
	Logger   *logging.Logger
}

// Manager copies the secret and owns the single pending auto-clear.
// All state transitions happen under one mutex, so timer callbacks behave as
// if they ran on the caller's event loop.
type Manager struct {
	clip     contracts.Clipboard
	platform platform.Platform
	clock    Clock
	notifier Notifier
	logger   *logging.Logger

	mu       sync.Mutex
	state    State
	snapshot secure.Cell
	timer    Timer
	gen      uint64
	idle     chan struct{}
}

// New creates a Manager in StateIdle
func New(opts Options) *Manager {
	m := &Manager{
		clip:     opts.Clipboard,
		platform: opts.Platform,
		clock:    opts.Clock,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		idle:     closedChan(),
	}
	if m.clock == nil {
		m.clock = SystemClock()
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	return m
}

// Copy writes secret to the clipboard. When autoClear is set, a one-shot
// clear is scheduled after ttl; any earlier pending clear is superseded
// either way. A clipboard write failure leaves the manager unchanged.
func (m *Manager) Copy(secret string, autoClear bool, ttl time.Duration) error {
	if secret == "" {
		return dserrors.ErrEmptySecret
	}

	m.mu.Lock()
	if err := m.clip.WriteAll(secret); err != nil {
		m.mu.Unlock()
		wrapped := dserrors.Wrap(dserrors.KindClipboardAccess, "write", err)
		metrics.ClipboardEvent(EventFailed.String())
		m.logger.Debug("Clipboard write failed: %v", err)
		return wrapped
	}

	m.disarmLocked()
	if autoClear {
		if ttl < MinTTL {
			ttl = MinTTL
		}
		m.snapshot.Seal(secret)
		m.state = StateArmed
		m.idle = make(chan struct{})
		gen := m.gen
		m.timer = m.clock.AfterFunc(ttl, func() { m.fire(gen) })
	}
	m.mu.Unlock()

	m.emit(Event{Kind: EventCopied, TTL: ttl, AutoClear: autoClear})
	return nil
}

// State returns the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Flush runs a pending clear immediately. It reports whether one was pending.
func (m *Manager) Flush() bool {
	m.mu.Lock()
	if m.state != StateArmed {
		m.mu.Unlock()
		return false
	}
	gen := m.gen
	m.mu.Unlock()

	return m.fire(gen)
}

// Wait blocks until the manager is idle or ctx is done
func (m *Manager) Wait(ctx context.Context) error {
	for {
		m.mu.Lock()
		if m.state == StateIdle {
			m.mu.Unlock()
			return nil
		}
		ch := m.idle
		m.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels a pending clear without touching the clipboard
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disarmLocked()
}

// fire is the timer callback for generation gen. It reports whether it ran
// the clear.
func (m *Manager) fire(gen uint64) bool {
	m.mu.Lock()
	if gen != m.gen || m.state != StateArmed {
		// Superseded by a later copy, or already flushed.
		m.mu.Unlock()
		return false
	}
	ev := m.clearLocked()
	m.disarmLocked()
	m.mu.Unlock()

	m.emit(ev)
	return true
}

// clearLocked removes the snapshot from the clipboard if it is still there
func (m *Manager) clearLocked() Event {
	current, err := m.clip.ReadAll()
	if err != nil {
		return Event{Kind: EventFailed, Err: dserrors.Wrap(dserrors.KindClipboardAccess, "read", err)}
	}
	if !m.snapshot.Equal(current) {
		return Event{Kind: EventSkipped}
	}

	// Layered clear; individual helpers are unreliable on some desktops.
	errs := []error{
		m.clip.Clear(),
		m.clip.WriteAll(""),
		m.clip.Clear(),
	}
	if m.platform != nil {
		if err := m.platform.ForceClearClipboard(); err != nil {
			m.logger.Debug("Forced clipboard flush failed (ignored): %v", err)
		}
	}

	clearErr := errors.Join(errs...)

	after, readErr := m.clip.ReadAll()
	switch {
	case readErr == nil && !m.snapshot.Equal(after):
		return Event{Kind: EventCleared}
	case readErr == nil:
		if clearErr == nil {
			clearErr = errors.New("clipboard still holds the secret")
		}
	case clearErr == nil:
		// Every layer succeeded; the read-back is only a confirmation.
		return Event{Kind: EventCleared}
	}
	return Event{Kind: EventFailed, Err: dserrors.Wrap(dserrors.KindClipboardAccess, "clear", clearErr)}
}

// disarmLocked stops the timer, wipes the snapshot and returns to idle.
// Bumping gen invalidates any callback already in flight.
func (m *Manager) disarmLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.snapshot.Wipe()
	if m.state == StateArmed {
		close(m.idle)
	}
	m.state = StateIdle
}

func (m *Manager) emit(ev Event) {
	metrics.ClipboardEvent(ev.Kind.String())
	switch ev.Kind {
	case EventCleared:
		m.logger.Debug("Clipboard cleared")
	case EventSkipped:
		m.logger.Debug("Clipboard content changed since copy; left untouched")
	case EventFailed:
		m.logger.Debug("Clipboard clear failed: %v", ev.Err)
	}
	if m.notifier != nil {
		m.notifier.Notify(ev)
	}
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
