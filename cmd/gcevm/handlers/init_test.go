package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahilkadakia/gcevm/internal/config"
)

func TestInit_WritesConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	isTerminal = func() bool { return true }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{
			Project:     "wizard-project",
			Zones:       []string{"us-central1-a"},
			MachineType: "g2-standard-4",
			GPUType:     "nvidia-l4",
			GPUCount:    1,
			SSHUser:     "ubuntu",
		}, nil
	}

	path := filepath.Join(t.TempDir(), "gcevm.yaml")
	err := Init(context.Background(), path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wizard-project", cfg.Project)
	assert.Equal(t, []string{"us-central1-a"}, cfg.Zones)
}

func TestInit_RefusesExistingFile(t *testing.T) {
	saveAndRestoreFactories(t)

	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		t.Fatal("wizard ran despite existing config")
		return nil, nil
	}

	path := filepath.Join(t.TempDir(), "gcevm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: existing\n"), 0644))

	err := Init(context.Background(), path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_WizardCancelled(t *testing.T) {
	saveAndRestoreFactories(t)

	isTerminal = func() bool { return true }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return nil, errors.New("user aborted")
	}

	err := Init(context.Background(), filepath.Join(t.TempDir(), "gcevm.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "wizard failed")
}

func TestInit_NonInteractiveWritesTemplate(t *testing.T) {
	saveAndRestoreFactories(t)

	isTerminal = func() bool { return false }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		t.Fatal("wizard ran without a terminal")
		return nil, nil
	}

	path := filepath.Join(t.TempDir(), "gcevm.yaml")
	err := Init(context.Background(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nvidia-l4")
	assert.Contains(t, string(data), "# gcevm configuration")
}
