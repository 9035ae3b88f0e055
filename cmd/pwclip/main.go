package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/cmd/pwclip/commands"
	"github.com/systmms/pwclip/internal/config"
	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/logging"
	"github.com/systmms/pwclip/internal/secure"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := run()
	secure.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		dataDir        string
		settingsFile   string
		noColor        bool
		debug          bool
		nonInteractive bool
	)

	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "pwclip",
		Short: "Keep one password close and put it on the clipboard briefly",
		Long: `pwclip stores a single password encrypted for the current user, keeps it
in memory for the session and copies it to the clipboard on demand. The
clipboard is cleared again after a short delay unless you have copied
something else in the meantime.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Logger = logging.New(debug, noColor)
			cfg.DataDir = dataDir
			cfg.SettingsPath = settingsFile
			cfg.NonInteractive = nonInteractive
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: $"+config.DataDirEnv+" or the per-user config dir)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "Settings file path (default: <data-dir>/settings.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt")

	open := commands.DefaultAppFactory

	rootCmd.AddCommand(
		commands.NewSetCommand(cfg, open),
		commands.NewCopyCommand(cfg, open),
		commands.NewStatusCommand(cfg, open),
		commands.NewForgetCommand(cfg, open),
		commands.NewDoctorCommand(cfg, open),
		commands.NewSettingsCommand(cfg),
		commands.NewSessionCommand(cfg, open),
		commands.NewMetricsCommand(cfg, open),
	)

	return rootCmd.Execute()
}
