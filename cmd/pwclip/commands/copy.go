package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/internal/app"
	"github.com/systmms/pwclip/internal/config"
	dserrors "github.com/systmms/pwclip/internal/errors"
)

func NewCopyCommand(cfg *config.Config, open AppFactory) *cobra.Command {
	var (
		ttlSecs     int
		noAutoClear bool
		remember    bool
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the password to the clipboard",
		Long: `Copy the password to the clipboard.

Unless auto-clear is disabled, the command waits until the clipboard has
been cleared. Clearing only happens if the clipboard still holds the
password; anything copied in the meantime is left alone. Interrupting the
wait clears the clipboard immediately.

If no password is set yet you are prompted for one.

Examples:
  pwclip copy
  pwclip copy --ttl 60
  pwclip copy --no-auto-clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttlSecs != 0 && (ttlSecs < config.MinAutoClearSecs || ttlSecs > config.MaxAutoClearSecs) {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Invalid --ttl %d", ttlSecs),
					Suggestion: fmt.Sprintf("Use a value between %d and %d seconds", config.MinAutoClearSecs, config.MaxAutoClearSecs),
				}
			}

			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.HasSecret() {
				if err := promptForSecret(cmd, cfg, a, remember); err != nil {
					return err
				}
			}

			settings := a.Settings()
			autoClear := settings.AutoClear && !noAutoClear
			ttl := settings.TTL()
			if ttlSecs != 0 {
				ttl = time.Duration(ttlSecs) * time.Second
			}

			if err := a.CopyWith(autoClear, ttl); err != nil {
				return err
			}
			if !autoClear {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := a.Clipboard().Wait(ctx); errors.Is(err, context.Canceled) {
				cfg.Logger.Info("Interrupted, clearing clipboard now")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ttlSecs, "ttl", 0, "Seconds before the clipboard is cleared (default: from settings)")
	cmd.Flags().BoolVar(&noAutoClear, "no-auto-clear", false, "Leave the password on the clipboard")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember a password entered at the prompt")

	return cmd
}

func promptForSecret(cmd *cobra.Command, cfg *config.Config, a *app.App, remember bool) error {
	if cfg.NonInteractive {
		return app.ErrNoSecret
	}
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	secret, err := p.Password("No password set. Password: ")
	if err != nil {
		return err
	}
	_, err = a.Set(secret, remember)
	return err
}
