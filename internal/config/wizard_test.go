package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResult_ToConfig(t *testing.T) {
	result := &WizardResult{
		Project:     "my-gpu-project",
		Zones:       []string{"us-central1-a", "us-west1-a"},
		MachineType: "n1-standard-4",
		GPUType:     "nvidia-tesla-t4",
		GPUCount:    2,
		Spot:        true,
		SSHUser:     "bench",
	}

	cfg := result.ToConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "my-gpu-project", cfg.Project)
	assert.Equal(t, []string{"us-central1-a", "us-west1-a"}, cfg.Zones)
	assert.Equal(t, "n1-standard-4", cfg.Instance.MachineType)
	assert.Equal(t, "nvidia-tesla-t4", cfg.Instance.GPU.Type)
	assert.Equal(t, int32(2), cfg.Instance.GPU.Count)
	assert.True(t, cfg.Instance.Spot)
	assert.Equal(t, "bench", cfg.SSH.User)

	// Defaults are filled in so the generated YAML is explicit.
	assert.Equal(t, "vm", cfg.Instance.NamePrefix)
	assert.Equal(t, "ubuntu-2204-lts", cfg.Instance.Image.Family)
}

func TestValidateProjectID(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"core-verbena-328218", false},
		{"my-project", false},
		{"", true},
		{"short", true},
		{"1starts-with-digit", true},
		{"ends-with-hyphen-", true},
		{"Has-Uppercase", true},
	}
	for _, tt := range tests {
		err := validateProjectID(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			assert.NoError(t, err, "input %q", tt.in)
		}
	}
}
