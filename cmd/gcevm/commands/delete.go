package commands

import (
	"github.com/spf13/cobra"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/handlers"
)

// Delete returns the command for deleting a provisioned instance.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect gcevm.yaml)
//	--zone, -z: Zone of the instance (default: first configured zone)
//	--name, -n: Instance name (default: derived from the name prefix and zone)
func Delete() *cobra.Command {
	var (
		configPath string
		zone       string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a GPU instance",
		Long: `Delete an instance created by gcevm.

The instance name defaults to the configured name prefix combined with
the zone, matching what 'gcevm create' produces. Deleting an instance
that does not exist is not an error.

Examples:
  # Delete the default instance in the first configured zone
  gcevm delete

  # Delete in a specific zone
  gcevm delete -z us-central1-a

  # Delete an explicitly named instance
  gcevm delete -z us-central1-a -n my-vm`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Delete(cmd.Context(), configPath, zone, name)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: gcevm.yaml)")
	cmd.Flags().StringVarP(&zone, "zone", "z", "", "Zone of the instance (default: first configured zone)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Instance name (default: <prefix>-<zone>)")

	return cmd
}
