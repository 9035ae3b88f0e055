package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/internal/config"
)

func NewStatusCommand(cfg *config.Config, open AppFactory) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a password is available and how it is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			st := a.Status()
			out := cmd.OutOrStdout()

			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			password := "not set"
			if st.HasSecret {
				password = "set"
			}
			security := st.Security
			if st.Insecure {
				security += " (not encrypted)"
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "Password:\t%s\n", password)
			_, _ = fmt.Fprintf(w, "Remembered:\t%t\n", st.Remembered)
			_, _ = fmt.Fprintf(w, "Backend:\t%s\n", st.Backend)
			_, _ = fmt.Fprintf(w, "Security:\t%s\n", security)
			_, _ = fmt.Fprintf(w, "Auto-clear:\t%t (%ds)\n", st.AutoClear, st.TTLSeconds)
			_, _ = fmt.Fprintf(w, "Record:\t%s\n", st.RecordPath)
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
