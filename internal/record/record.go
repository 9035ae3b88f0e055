// Package record persists the encrypted credential as a small JSON file.
//
// File layout:
//
//	{"version": 1, "label": "default", "backend": "keyring", "ciphertext": "..."}
//
// Files written by the earlier tray tool ({"label": ..., "dpapi": ...}) are
// still read and reported as user-scoped records.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/xeipuuv/gojsonschema"

	dserrors "github.com/systmms/pwclip/internal/errors"
)

// CurrentVersion is written to every new record
const CurrentVersion = 1

// legacyBackend is the backend implied by a record with a "dpapi" field
const legacyBackend = "user-scoped"

var (
	// ErrNotFound means no record file exists
	ErrNotFound = errors.New("no stored credential")
	// ErrCorrupt means the file exists but is not a valid record
	ErrCorrupt = errors.New("credential file is corrupt")
)

// Record is the persisted, encrypted-at-rest credential
type Record struct {
	Version    int    `json:"version"`
	Label      string `json:"label"`
	Backend    string `json:"backend"`
	Ciphertext string `json:"ciphertext"`
}

type onDisk struct {
	Record
	Legacy string `json:"dpapi,omitempty"`
}

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "version":    {"type": "integer", "minimum": 0},
    "label":      {"type": "string"},
    "backend":    {"type": "string", "minLength": 1},
    "ciphertext": {"type": "string", "minLength": 1},
    "dpapi":      {"type": "string", "minLength": 1}
  },
  "required": ["label"],
  "anyOf": [
    {"required": ["backend", "ciphertext"]},
    {"required": ["dpapi"]}
  ]
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func recordSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	})
	return schema, schemaErr
}

// File is the single record file of an installation
type File struct {
	path string
}

// NewFile returns a record file at path
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file location
func (f *File) Path() string {
	return f.path
}

// Exists reports whether a record file is present
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load reads and validates the record. Absence yields ErrNotFound; any
// structural problem yields ErrCorrupt wrapped as a decryption failure.
func (f *File) Load() (Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, dserrors.Wrap(dserrors.KindPersistenceIO, "load", err)
	}
	return Decode(data)
}

// Decode validates and parses a record document
func Decode(data []byte) (Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Record{}, corrupt(errors.New("empty file"))
	}

	s, err := recordSchema()
	if err != nil {
		return Record{}, fmt.Errorf("record schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Record{}, corrupt(err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return Record{}, corrupt(fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; ")))
	}

	var raw onDisk
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, corrupt(err)
	}

	rec := raw.Record
	if rec.Ciphertext == "" && raw.Legacy != "" {
		rec.Backend = legacyBackend
		rec.Ciphertext = raw.Legacy
	}
	return rec, nil
}

// Save writes r atomically, creating the data directory (0700) if needed.
// The file is created with mode 0600.
func (f *File) Save(r Record) error {
	if r.Version == 0 {
		r.Version = CurrentVersion
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return dserrors.Wrap(dserrors.KindPersistenceIO, "save", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return dserrors.Wrap(dserrors.KindPersistenceIO, "save", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return dserrors.Wrap(dserrors.KindPersistenceIO, "save", err)
	}
	return nil
}

// Delete removes the record. A missing file is not an error.
func (f *File) Delete() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return dserrors.Wrap(dserrors.KindPersistenceIO, "delete", err)
	}
	return nil
}

func corrupt(cause error) error {
	return dserrors.Wrap(dserrors.KindDecryption, "load", fmt.Errorf("%w: %v", ErrCorrupt, cause))
}
