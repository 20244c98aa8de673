package commands

import (
	"github.com/spf13/cobra"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/handlers"
)

// Sweep returns the command for sweeping all configured zones.
//
// For each zone the sweep creates an instance, installs and verifies the
// NVIDIA driver, deletes the instance again, and records the outcome. The
// sweep continues past zones that refuse the request and writes a JSON
// report at the end.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect gcevm.yaml)
//	--keep: Leave verified instances running instead of deleting them
//	--report, -r: Path of the JSON report (default: derived from the name prefix)
//	--no-tui: Plain log output instead of the interactive dashboard
func Sweep() *cobra.Command {
	var (
		configPath string
		keep       bool
		reportPath string
		noTUI      bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Try every configured zone and report the outcomes",
		Long: `Sweep the configured zones for GPU capacity.

Each zone gets a full create/bootstrap/verify/delete cycle. Zones that
refuse the request are classified (quota denied, GPU unavailable, zone
exhausted, name conflict) and the sweep moves on after the configured
pause. Results are written to a JSON report and can be uploaded to an
S3-compatible bucket when configured.

Examples:
  # Sweep all configured zones
  gcevm sweep

  # Keep the instances that verified successfully
  gcevm sweep --keep

  # Write the report to a specific file
  gcevm sweep -r results.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Sweep(cmd.Context(), handlers.SweepOptions{
				ConfigPath: configPath,
				Keep:       keep,
				ReportPath: reportPath,
				NoTUI:      noTUI,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: gcevm.yaml)")
	cmd.Flags().BoolVar(&keep, "keep", false, "Leave verified instances running")
	cmd.Flags().StringVarP(&reportPath, "report", "r", "", "Path of the JSON report")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Disable the interactive dashboard")

	return cmd
}
