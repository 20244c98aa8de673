package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/rahilkadakia/gcevm/internal/config"
)

// runWizard is replaceable in tests to avoid driving the interactive form.
var runWizard = config.RunWizard

// defaultConfigTemplate is written when the wizard cannot run because
// stdout is not an interactive terminal.
const defaultConfigTemplate = `# gcevm configuration
# Replace the project ID, then run 'gcevm doctor' to verify the setup.
project: my-project-123456

# Candidate zones, tried in order. 'gcevm sweep' attempts all of them.
zones:
  - us-central1-a
  - us-east1-c

instance:
  name_prefix: vm
  machine_type: g2-standard-4
  image:
    project: ubuntu-os-cloud
    family: ubuntu-2204-lts
  disk:
    type: pd-standard
    size_gb: 20
  gpu:
    type: nvidia-l4
    count: 1
  # spot: true
  # termination_action: STOP

ssh:
  user: ubuntu
  private_key_path: id_rsa
  public_key_path: id_rsa.pub

bootstrap:
  driver_version: 535

sweep:
  pause: 30s
`

// Init writes a gcevm.yaml. On an interactive terminal it runs the
// configuration wizard; otherwise it writes a commented default config to
// edit by hand. An existing file is never overwritten.
func Init(ctx context.Context, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists, move it aside first", outputPath)
	}

	if !isTerminal() {
		if err := os.WriteFile(outputPath, []byte(defaultConfigTemplate), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote %s with defaults; edit the project ID before use.\n", outputPath)
		return nil
	}

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	cfg := result.ToConfig()
	if err := config.WriteYAML(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", outputPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  gcevm doctor   # verify credentials and tools")
	fmt.Println("  gcevm create   # provision a GPU instance")
	return nil
}
