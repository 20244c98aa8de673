package commands

import (
	"github.com/spf13/cobra"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/handlers"
)

// Keygen returns the command for generating the SSH key pair.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect gcevm.yaml)
//	--force: Overwrite existing key files
func Keygen() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the SSH key pair used for bootstrap",
		Long: `Generate the RSA key pair used to SSH into created instances.

Keys are written to the paths configured under ssh.private_key_path and
ssh.public_key_path. Existing keys are reused by create and sweep, so
this command refuses to overwrite them unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Keygen(cmd.Context(), configPath, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: gcevm.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing key files")

	return cmd
}
