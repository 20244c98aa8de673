package commands

import (
	"github.com/spf13/cobra"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/handlers"
)

// Bootstrap returns the command for installing drivers on an existing instance.
//
// This command runs the NVIDIA driver and CUDA toolkit install against an
// instance that was created earlier (for example with --skip-bootstrap),
// then verifies the GPU with nvidia-smi.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect gcevm.yaml)
//	--zone, -z: Zone of the instance (default: first configured zone)
//	--name, -n: Instance name (default: derived from the name prefix and zone)
func Bootstrap() *cobra.Command {
	var (
		configPath string
		zone       string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Install NVIDIA drivers on an existing instance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Bootstrap(cmd.Context(), configPath, zone, name)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: gcevm.yaml)")
	cmd.Flags().StringVarP(&zone, "zone", "z", "", "Zone of the instance (default: first configured zone)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Instance name (default: <prefix>-<zone>)")

	return cmd
}
