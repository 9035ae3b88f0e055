package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/systmms/pwclip/internal/config"
)

func NewSettingsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg.Settings)
			if err != nil {
				return fmt.Errorf("failed to encode settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting (auto_clear, auto_clear_secs, backend)",
		Example: `  pwclip settings set auto_clear_secs 45
  pwclip settings set backend user-scoped`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			if err := cfg.Settings.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Settings.Save(cfg.SettingsFile()); err != nil {
				return err
			}
			cfg.Logger.Info("Updated %s", args[0])
			return nil
		},
	})

	return cmd
}
