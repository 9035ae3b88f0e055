package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/internal/config"
)

func NewForgetCommand(cfg *config.Config, open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Delete the saved password",
		Long: `Delete the password remembered on this device, including its OS keyring
entry. Running it when nothing is saved is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Forget(); err != nil {
				return err
			}
			cfg.Logger.Info("Saved password removed")
			return nil
		},
	}
}
