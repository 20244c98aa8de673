package commands

import (
	"github.com/spf13/cobra"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/handlers"
)

// Create returns the command for provisioning a single GPU instance.
//
// This command creates one instance in a single zone, installs the NVIDIA
// driver and CUDA toolkit over SSH, and verifies the GPU with nvidia-smi.
// The instance is left running; use 'gcevm delete' to remove it.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect gcevm.yaml)
//	--zone, -z: Zone to create the instance in (default: first configured zone)
//	--skip-bootstrap: Create the instance without installing drivers
func Create() *cobra.Command {
	var (
		configPath    string
		zone          string
		skipBootstrap bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a GPU instance in one zone",
		Long: `Create a GPU instance and install the NVIDIA driver stack.

The boot image is resolved to the newest image of the configured family,
the instance is created with the configured accelerator attached, and
the driver install runs over SSH once the instance is reachable.

If no config file is specified, gcevm.yaml in the current directory is
used. Use 'gcevm init' to create one.

Examples:
  # Create in the first configured zone
  gcevm create

  # Create in a specific zone
  gcevm create -z us-central1-a

  # Create without installing drivers
  gcevm create --skip-bootstrap`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Create(cmd.Context(), configPath, zone, skipBootstrap)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: gcevm.yaml)")
	cmd.Flags().StringVarP(&zone, "zone", "z", "", "Zone to create the instance in (default: first configured zone)")
	cmd.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "Skip the driver install after creation")

	return cmd
}
