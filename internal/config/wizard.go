package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// defaultZoneOptions are the zones offered by the wizard multi-select.
// They cover the regions the GPU sweep originally targeted; custom zones
// can always be added by editing the generated YAML.
func defaultZoneOptions() []huh.Option[string] {
	zones := []string{
		"us-central1-a",
		"us-east1-c",
		"us-east4-a",
		"us-east5-b",
		"us-south1-a",
		"us-west1-a",
		"us-west2-a",
		"northamerica-northeast1-a",
		"northamerica-northeast2-a",
		"southamerica-east1-a",
	}
	opts := make([]huh.Option[string], 0, len(zones))
	for _, z := range zones {
		opts = append(opts, huh.NewOption(z, z))
	}
	return opts
}

// WizardResult holds the user's choices from the wizard.
type WizardResult struct {
	Project     string
	Zones       []string
	MachineType string
	GPUType     string
	GPUCount    int
	Spot        bool
	SSHUser     string
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		MachineType: "g2-standard-4",
		GPUType:     "nvidia-l4",
		GPUCount:    1,
		SSHUser:     "ubuntu",
	}

	form := huh.NewForm(
		// Project
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("The Google Cloud project instances are created in").
				Placeholder("my-project-123456").
				Value(&result.Project).
				Validate(validateProjectID),
		),

		// Zones
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Zones").
				Description("Candidate zones, tried in order until a GPU VM fits").
				Options(defaultZoneOptions()...).
				Value(&result.Zones).
				Validate(func(zs []string) error {
					if len(zs) == 0 {
						return fmt.Errorf("select at least one zone")
					}
					return nil
				}),
		),

		// Machine shape
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Machine type").
				Description("G2 types bundle an NVIDIA L4; N1 types attach GPUs separately").
				Options(
					huh.NewOption("g2-standard-4 - 4 vCPU, 16GB RAM, L4", "g2-standard-4"),
					huh.NewOption("g2-standard-8 - 8 vCPU, 32GB RAM, L4", "g2-standard-8"),
					huh.NewOption("n1-standard-4 - 4 vCPU, 15GB RAM", "n1-standard-4"),
					huh.NewOption("n1-standard-8 - 8 vCPU, 30GB RAM", "n1-standard-8"),
				).
				Value(&result.MachineType),

			huh.NewSelect[string]().
				Title("GPU").
				Description("Guest accelerator attached to the instance").
				Options(
					huh.NewOption("NVIDIA L4", "nvidia-l4"),
					huh.NewOption("NVIDIA T4", "nvidia-tesla-t4"),
					huh.NewOption("NVIDIA V100", "nvidia-tesla-v100"),
					huh.NewOption("NVIDIA P100", "nvidia-tesla-p100"),
				).
				Value(&result.GPUType),

			huh.NewSelect[int]().
				Title("GPU count").
				Options(
					huh.NewOption("1 GPU", 1),
					huh.NewOption("2 GPUs", 2),
					huh.NewOption("4 GPUs", 4),
				).
				Value(&result.GPUCount),
		),

		// SSH user
		huh.NewGroup(
			huh.NewInput().
				Title("SSH user").
				Description("Login published to the instance's ssh-keys metadata").
				Value(&result.SSHUser).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("ssh user is required")
					}
					return nil
				}),
		),

		// Spot
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use Spot VMs?").
				Description("Much cheaper, but may be reclaimed at any time").
				Value(&result.Spot),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a fully defaulted Config.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Project: r.Project,
		Zones:   r.Zones,
		Instance: InstanceConfig{
			MachineType: r.MachineType,
			GPU: GPUConfig{
				Type:  r.GPUType,
				Count: int32(r.GPUCount),
			},
			Spot: r.Spot,
		},
		SSH: SSHConfig{
			User: r.SSHUser,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// validateProjectID validates the project ID format: 6-30 characters,
// lowercase letters, digits and hyphens, starting with a letter.
func validateProjectID(s string) error {
	if s == "" {
		return fmt.Errorf("project ID is required")
	}
	if len(s) < 6 || len(s) > 30 {
		return fmt.Errorf("project ID must be 6-30 characters")
	}
	if s[0] < 'a' || s[0] > 'z' {
		return fmt.Errorf("project ID must start with a lowercase letter")
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return fmt.Errorf("project ID can only contain lowercase letters, digits, and hyphens")
		}
	}
	if strings.HasSuffix(s, "-") {
		return fmt.Errorf("project ID cannot end with a hyphen")
	}
	return nil
}
