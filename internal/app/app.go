// Package app wires the credential store and the clipboard manager into
// the operations the CLI exposes.
package app

import (
	"time"

	"github.com/systmms/pwclip/internal/backend"
	"github.com/systmms/pwclip/internal/clipboard"
	"github.com/systmms/pwclip/internal/config"
	"github.com/systmms/pwclip/internal/contracts"
	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/logging"
	"github.com/systmms/pwclip/internal/metrics"
	"github.com/systmms/pwclip/internal/platform"
	"github.com/systmms/pwclip/internal/record"
	"github.com/systmms/pwclip/internal/store"
)

// Vault item identifiers
const (
	ServiceName = "pwclip"
	AccountName = "default"
)

// ErrNoSecret is returned by Copy when neither memory nor disk holds a secret
var ErrNoSecret = dserrors.UserError{
	Message:    "No password is set",
	Suggestion: "Run 'pwclip set' first",
}

// Options configures New. Nil clients disable the matching feature.
type Options struct {
	Config    *config.Config
	Keyring   contracts.KeyringClient
	Platform  platform.Platform
	Clipboard contracts.Clipboard
	Clock     clipboard.Clock
	Notifier  clipboard.Notifier
}

// App is one pwclip session
type App struct {
	cfg       *config.Config
	logger    *logging.Logger
	selection backend.Selection
	store     *store.Store
	clip      *clipboard.Manager
}

// New probes the backend and builds the store and clipboard manager.
// cfg must already be loaded.
func New(opts Options) *App {
	cfg := opts.Config
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	settings := cfg.Settings
	if settings == nil {
		settings = config.DefaultSettings()
		cfg.Settings = settings
	}

	sel := backend.Probe(backend.ProbeOptions{
		Keyring:  opts.Keyring,
		Platform: opts.Platform,
		Prefer:   settings.Backend,
		Service:  ServiceName,
		Account:  AccountName,
		Logger:   logger,
	})
	metrics.BackendSelected(sel.Backend.Name(), sel.Security.String())

	return &App{
		cfg:       cfg,
		logger:    logger,
		selection: sel,
		store: store.New(store.Options{
			Selection: sel,
			Record:    record.NewFile(cfg.RecordPath()),
			Label:     AccountName,
			Logger:    logger,
		}),
		clip: clipboard.New(clipboard.Options{
			Clipboard: opts.Clipboard,
			Platform:  opts.Platform,
			Clock:     opts.Clock,
			Notifier:  opts.Notifier,
			Logger:    logger,
		}),
	}
}

// Selection returns the backend chosen at startup
func (a *App) Selection() backend.Selection {
	return a.selection
}

// Store returns the credential store
func (a *App) Store() *store.Store {
	return a.store
}

// Clipboard returns the clipboard manager
func (a *App) Clipboard() *clipboard.Manager {
	return a.clip
}

// Settings returns the loaded settings
func (a *App) Settings() *config.Settings {
	return a.cfg.Settings
}

// HasSecret reports whether a secret can be produced
func (a *App) HasSecret() bool {
	_, ok := a.store.Get()
	return ok
}

// Set stores secret, logging any swallowed persistence failure as a warning
func (a *App) Set(secret string, remember bool) (store.SetResult, error) {
	res, err := a.store.Set(secret, remember)
	if err != nil {
		return res, err
	}
	if res.Err != nil {
		a.logger.Warn("Password kept for this session only: %v", dserrors.SimplifyError(res.Err))
	}
	return res, nil
}

// Copy puts the secret on the clipboard with the configured auto-clear
func (a *App) Copy() error {
	s := a.Settings()
	return a.CopyWith(s.AutoClear, s.TTL())
}

// CopyWith puts the secret on the clipboard with explicit auto-clear values
func (a *App) CopyWith(autoClear bool, ttl time.Duration) error {
	secret, ok := a.store.Get()
	if !ok {
		return ErrNoSecret
	}
	return a.clip.Copy(secret, autoClear, ttl)
}

// Forget removes the remembered record and wipes the cached secret
func (a *App) Forget() error {
	err := a.store.ClearDeviceStore()
	a.store.ClearMemory()
	return err
}

// ClearMemory wipes the cached secret only
func (a *App) ClearMemory() {
	a.store.ClearMemory()
}

// Status is a snapshot for display
type Status struct {
	HasSecret  bool   `json:"has_secret"`
	Remembered bool   `json:"remembered"`
	Backend    string `json:"backend"`
	Security   string `json:"security"`
	Insecure   bool   `json:"insecure"`
	Clipboard  string `json:"clipboard"`
	AutoClear  bool   `json:"auto_clear"`
	TTLSeconds int    `json:"auto_clear_secs"`
	RecordPath string `json:"record_path"`
}

// Status reports the current state
func (a *App) Status() Status {
	s := a.Settings()
	return Status{
		HasSecret:  a.HasSecret(),
		Remembered: a.store.Remembered(),
		Backend:    a.selection.Backend.Name(),
		Security:   a.selection.Security.String(),
		Insecure:   a.selection.Insecure(),
		Clipboard:  a.clip.State().String(),
		AutoClear:  s.AutoClear,
		TTLSeconds: s.AutoClearSecs,
		RecordPath: a.cfg.RecordPath(),
	}
}

// Close runs any pending clipboard clear and releases the manager
func (a *App) Close() {
	if a.clip.Flush() {
		a.logger.Debug("Flushed pending clipboard clear on exit")
	}
	a.clip.Close()
}
