package cmd

import (
	"context"
	"os"
	"strings"

	"nlquery/cli/internal/httperrors"
	"nlquery/cli/internal/manifest"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// healthCmd checks that the backend is reachable and offers every endpoint
// the UI needs.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the query backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
		defer cancel()

		be := newBackend()
		var status string
		err := withSpinner("Contacting "+cfg.BaseURL, func() error {
			var err error
			status, err = be.Health(ctx)
			return err
		})
		if err != nil {
			httperrors.Present(os.Stderr, err, "checking backend health")
			return errReported
		}
		pterm.Success.Printfln("Backend %s is %s", cfg.BaseURL, status)

		m, err := be.Manifest(ctx)
		if err != nil {
			pterm.Warning.Printfln("Could not read the API listing: %s", httperrors.Describe(err))
			return nil
		}
		if m.Version != "" {
			pterm.Info.Printfln("API version %s", m.Version)
		}
		if missing := m.Missing(manifest.Default()); len(missing) > 0 {
			pterm.Warning.Printfln("The backend does not list: %s", strings.Join(missing, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
