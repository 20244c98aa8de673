package commands

import (
	"github.com/spf13/cobra"

	"github.com/rahilkadakia/gcevm/cmd/gcevm/handlers"
)

// Init returns the command for interactively creating a configuration file.
//
// This command guides users through creating a gcevm configuration YAML
// file using an interactive wizard with text inputs, single-select, and
// multi-select prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "gcevm.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a gcevm configuration file.

This command guides you through configuring your GPU instance
step by step. It will ask about:

  - Google Cloud project ID
  - Candidate zones for the sweep
  - Machine type and GPU (type and count)
  - SSH login user
  - Spot vs on-demand provisioning

The generated file can be edited by hand afterwards; see the
config reference for the full set of options.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "gcevm.yaml", "Output file path")

	return cmd
}
