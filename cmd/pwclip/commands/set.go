package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/internal/config"
	dserrors "github.com/systmms/pwclip/internal/errors"
)

func NewSetCommand(cfg *config.Config, open AppFactory) *cobra.Command {
	var (
		remember  bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the password",
		Long: `Set the password and, by default, remember it on this device.

The password is read from the terminal without echo, or as a single line
from stdin with --stdin.

With --remember=false the password is not written to disk, and a password
remembered earlier is deleted.

Examples:
  pwclip set
  printf '%s\n' "$PW" | pwclip set --stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			if fromStdin {
				p.file = nil
			} else if p.file == nil && cfg.NonInteractive {
				return dserrors.UserError{
					Message:    "No terminal to prompt for the password",
					Suggestion: "Pipe the password in with --stdin",
				}
			}

			secret, err := p.Password("Password: ")
			if err != nil {
				return err
			}

			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			warnInsecure(a, cfg.Logger)

			res, err := a.Set(secret, remember)
			if err != nil {
				return err
			}

			switch {
			case res.Persisted:
				cfg.Logger.Info("Password saved (%s)", a.Selection().Backend.Name())
			case res.Forgot:
				cfg.Logger.Info("Password set for this session; saved password removed")
			case res.Err == nil:
				cfg.Logger.Info("Password set for this session")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remember, "remember", true, "Remember the password on this device")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the password from stdin")

	return cmd
}
