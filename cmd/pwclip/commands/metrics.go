package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/internal/config"
	"github.com/systmms/pwclip/internal/metrics"
)

func NewMetricsCommand(cfg *config.Config, open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print this process's counters",
		Long: `Print the in-process counters in text form. Counters are not kept across
runs; inside 'pwclip session' the 'metrics' command shows the whole
session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return metrics.WriteText(cmd.OutOrStdout())
		},
	}
}
