package commands

import (
	"github.com/systmms/pwclip/internal/app"
	"github.com/systmms/pwclip/internal/backend"
	"github.com/systmms/pwclip/internal/clipboard"
	"github.com/systmms/pwclip/internal/config"
	"github.com/systmms/pwclip/internal/logging"
	"github.com/systmms/pwclip/internal/platform"
)

// AppFactory loads cfg and opens an application session
type AppFactory func(cfg *config.Config) (*app.App, error)

// DefaultAppFactory opens a session on the real OS keyring, platform and
// clipboard
func DefaultAppFactory(cfg *config.Config) (*app.App, error) {
	if err := cfg.LoadWithFallback(); err != nil {
		return nil, err
	}
	return app.New(app.Options{
		Config:    cfg,
		Keyring:   backend.NewOSKeyring(),
		Platform:  platform.Current(),
		Clipboard: clipboard.NewSystemClipboard(),
		Notifier:  NewLogNotifier(cfg.Logger),
	}), nil
}

// NewLogNotifier reports clipboard events through logger
func NewLogNotifier(logger *logging.Logger) clipboard.Notifier {
	return clipboard.NotifierFunc(func(e clipboard.Event) {
		switch e.Kind {
		case clipboard.EventCopied:
			if e.AutoClear {
				logger.Info("Copied to clipboard (clears in %s)", e.TTL)
			} else {
				logger.Info("Copied to clipboard")
			}
		case clipboard.EventCleared:
			logger.Info("Clipboard cleared")
		case clipboard.EventSkipped:
			logger.Info("Clipboard changed since copy, left as is")
		case clipboard.EventFailed:
			logger.Warn("Could not clear clipboard: %v", e.Err)
		}
	})
}

// warnInsecure tells the user that the passthrough backend is active
func warnInsecure(a *app.App, logger *logging.Logger) {
	sel := a.Selection()
	if sel.Insecure() {
		logger.Warn("No secure storage available; a remembered password is only encoded (backend: %s)", sel.Backend.Name())
	}
}
