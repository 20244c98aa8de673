package commands

import (
	"github.com/spf13/cobra"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/handlers"
)

// Doctor returns the command for diagnosing the local setup.
//
// This command validates the configuration file, checks for required
// client tools and credentials, and probes the Compute Engine API.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect gcevm.yaml)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and environment",
		Long: `Diagnose the gcevm setup.

Checks performed:
  - Configuration file loads and validates
  - Required client tools (gcloud) are installed
  - Application default credentials are present
  - SSH key files exist
  - The configured image family resolves via the Compute Engine API

Examples:
  # Diagnose the current setup
  gcevm doctor

  # Get results in JSON format
  gcevm doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: gcevm.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
