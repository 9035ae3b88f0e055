package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systmms/pwclip/internal/app"
	"github.com/systmms/pwclip/internal/clipboard"
	"github.com/systmms/pwclip/internal/config"
	dserrors "github.com/systmms/pwclip/internal/errors"
	"github.com/systmms/pwclip/internal/permissions"
)

// clipboardAvailable is a test seam for clipboard.Available
var clipboardAvailable = clipboard.Available

func NewDoctorCommand(cfg *config.Config, open AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check storage backends and clipboard access",
		Long: `Report which encryption backend was selected, why the others were
skipped, and whether the clipboard can be used on this host.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			displayBackends(out, a)

			checker := permissions.NewPermissionChecker(cfg.Logger)
			results := checker.CheckDataFiles(cfg.DataDir, cfg.RecordPath(), cfg.SettingsFile())
			_, _ = fmt.Fprintln(out)
			displayPermissions(out, results)

			if a.Selection().Insecure() {
				cfg.Logger.Warn("Remembered passwords are stored without encryption")
			}

			if !clipboardAvailable() {
				return dserrors.UserError{
					Message:    "No clipboard helper found",
					Suggestion: "Install xclip, xsel or wl-clipboard",
				}
			}
			cfg.Logger.Info("Clipboard available")
			return nil
		},
	}

	return cmd
}

// displayBackends prints one row per backend candidate
func displayBackends(out io.Writer, a *app.App) {
	sel := a.Selection()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "BACKEND\tSTATUS\tMESSAGE\n")
	_, _ = fmt.Fprintf(w, "-------\t------\t-------\n")

	for _, reason := range sel.Reasons {
		name, msg, found := strings.Cut(reason, ": ")
		if !found {
			name, msg = reason, ""
		}
		_, _ = fmt.Fprintf(w, "%s\t✗ unavailable\t%s\n", name, msg)
	}
	_, _ = fmt.Fprintf(w, "%s\t✓ selected\tsecurity: %s\n", sel.Backend.Name(), sel.Security)

	_ = w.Flush()
}

// displayPermissions prints one row per checked path
func displayPermissions(out io.Writer, results []*permissions.PermissionResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "PATH\tSTATUS\tMESSAGE\n")
	_, _ = fmt.Fprintf(w, "----\t------\t-------\n")

	for _, r := range results {
		status := "✓ ok"
		if !r.Allowed {
			status = "✗ check"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, status, r.Reason)
	}

	_ = w.Flush()
}
