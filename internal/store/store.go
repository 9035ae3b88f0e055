// Package store owns the single pwclip credential: an in-memory cache in
// front of an optional encrypted record on disk.
//
// Only Set with an empty secret fails synchronously. Every storage problem
// is reported as a non-fatal status and the in-memory value stays
// authoritative for the session.
package store

import (
	"errors"
	"sync"

	"github.com/systmms/pwclip/internal/backend"
	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/logging"
	"github.com/systmms/pwclip/internal/metrics"
	"github.com/systmms/pwclip/internal/record"
	"github.com/systmms/pwclip/internal/secure"
)

// DefaultLabel is written to new records
const DefaultLabel = "default"

// ErrRecordNotFound is returned by Lookup when nothing is cached or stored
var ErrRecordNotFound = record.ErrNotFound

// Options configures a Store
type Options struct {
	// Selection is the probed backend; its Backend must be set
	Selection backend.Selection
	// Record is the on-disk credential file
	Record *record.File
	// Label defaults to DefaultLabel
	Label  string
	Logger *logging.Logger
}

// SetResult describes the non-fatal persistence outcome of Set
type SetResult struct {
	// Persisted is true when the record was written
	Persisted bool
	// Forgot is true when an earlier record was removed by remember=false
	Forgot bool
	// Err holds the swallowed persistence failure, if any
	Err error
}

// Store is the CredentialStore
type Store struct {
	selection backend.Selection
	file      *record.File
	label     string
	logger    *logging.Logger

	mu    sync.Mutex
	cache secure.Cell
}

// New creates a Store with an empty cache
func New(opts Options) *Store {
	s := &Store{
		selection: opts.Selection,
		file:      opts.Record,
		label:     opts.Label,
		logger:    opts.Logger,
	}
	if s.label == "" {
		s.label = DefaultLabel
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// Selection returns the backend chosen at startup
func (s *Store) Selection() backend.Selection {
	return s.selection
}

// Backend returns the active encryption backend
func (s *Store) Backend() backend.Backend {
	return s.selection.Backend
}

// Get returns the cached secret, loading and decrypting the record on a
// cache miss. Any failure yields ("", false).
func (s *Store) Get() (string, bool) {
	secret, err := s.Lookup()
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			s.logger.Debug("No secret available: %v", err)
		}
		return "", false
	}
	return secret, true
}

// Lookup is Get with the classified cause of a miss
func (s *Store) Lookup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if secret, ok := s.cache.Reveal(); ok {
		return secret, nil
	}

	rec, err := s.file.Load()
	if err != nil {
		return "", err
	}

	b := s.selection.Backend
	if rec.Backend != b.Name() {
		return "", dserrors.Wrap(dserrors.KindDecryption, "decrypt",
			errors.Join(backend.ErrUnavailable, &BackendMismatchError{Stored: rec.Backend, Active: b.Name()}))
	}

	secret, err := backend.SafeDecrypt(b, rec.Ciphertext)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", dserrors.Wrap(dserrors.KindDecryption, "decrypt", backend.ErrUnavailable)
	}

	s.cache.Seal(secret)
	return secret, nil
}

// Set replaces the cached secret. With remember the secret is also
// encrypted and written; without it any existing record is deleted.
func (s *Store) Set(secret string, remember bool) (SetResult, error) {
	if secret == "" {
		return SetResult{}, dserrors.ErrEmptySecret
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Seal(secret)

	if !remember {
		if !s.file.Exists() {
			return SetResult{}, nil
		}
		if err := s.clearDeviceLocked(); err != nil {
			s.persistFailed(err)
			return SetResult{Err: err}, nil
		}
		s.logger.Debug("Removed remembered secret at %s", s.file.Path())
		return SetResult{Forgot: true}, nil
	}

	b := s.selection.Backend
	ciphertext, err := b.Encrypt(secret)
	if err != nil {
		s.persistFailed(err)
		return SetResult{Err: err}, nil
	}

	// The new record replaces one the vault may still back.
	if s.file.Exists() {
		prev, loadErr := s.file.Load()
		s.eraseStaleVaultLocked(prev, loadErr)
	}

	rec := record.Record{
		Version:    record.CurrentVersion,
		Label:      s.label,
		Backend:    b.Name(),
		Ciphertext: ciphertext,
	}
	if err := s.file.Save(rec); err != nil {
		s.persistFailed(err)
		return SetResult{Err: err}, nil
	}

	s.logger.Debug("Stored secret %s with backend %s", logging.Secret(secret), b.Name())
	return SetResult{Persisted: true}, nil
}

// ClearDeviceStore deletes the persisted record and anything the backend
// keeps outside it. It is idempotent.
func (s *Store) ClearDeviceStore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearDeviceLocked()
}

// ClearMemory wipes the cached secret. A pending clipboard clear is not
// affected.
func (s *Store) ClearMemory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Wipe()
}

// Cached reports whether a secret is held in memory
func (s *Store) Cached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.cache.Empty()
}

// Remembered reports whether a record file exists
func (s *Store) Remembered() bool {
	return s.file.Exists()
}

func (s *Store) clearDeviceLocked() error {
	rec, loadErr := s.file.Load()

	ciphertext := ""
	if loadErr == nil && rec.Backend == s.selection.Backend.Name() {
		ciphertext = rec.Ciphertext
	}
	if err := s.selection.Backend.Erase(ciphertext); err != nil {
		s.logger.Debug("Backend erase failed (ignored): %v", err)
	}
	s.eraseStaleVaultLocked(rec, loadErr)

	return s.file.Delete()
}

// eraseStaleVaultLocked removes the vault item when the record on disk was
// written by the vault but another backend is active, or when the record
// cannot be read to tell.
func (s *Store) eraseStaleVaultLocked(rec record.Record, loadErr error) {
	vault := s.selection.Vault
	if vault == nil || s.selection.Backend.Name() == backend.NameKeyring {
		return
	}
	switch {
	case errors.Is(loadErr, record.ErrNotFound):
		return
	case loadErr == nil && rec.Backend != backend.NameKeyring:
		return
	}
	if err := vault.Erase(""); err != nil {
		s.logger.Debug("Vault erase failed (ignored): %v", err)
	}
}

func (s *Store) persistFailed(err error) {
	kind := "unknown"
	if k, ok := dserrors.KindOf(err); ok {
		kind = string(k)
	}
	metrics.PersistFailure(kind)
	s.logger.Debug("Persistence failed (secret kept in memory): %v", err)
}

// BackendMismatchError means the record was written by another backend
type BackendMismatchError struct {
	Stored string
	Active string
}

func (e *BackendMismatchError) Error() string {
	return "record written by backend " + e.Stored + ", active backend is " + e.Active
}
