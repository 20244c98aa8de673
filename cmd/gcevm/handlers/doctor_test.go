package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/platform/gce"
	"github.com/rahilkadakia/gcevm/internal/util/prerequisites"
)

// setupHealthyDoctor wires every check to pass.
func setupHealthyDoctor(t *testing.T) {
	t.Helper()
	useConfig(testConfig(t))

	checkAllPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{
				{Tool: prerequisites.Tool{Name: "gcloud", Required: true}, Found: true, Version: "Google Cloud SDK 478.0.0"},
				{Tool: prerequisites.Tool{Name: "ssh"}, Found: true},
			},
		}
	}

	creds := filepath.Join(t.TempDir(), "adc.json")
	require.NoError(t, os.WriteFile(creds, []byte("{}"), 0600))
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", creds)

	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return gce.NewMockClient(), nil
	}
}

func TestRunDoctor_AllHealthy(t *testing.T) {
	saveAndRestoreFactories(t)
	setupHealthyDoctor(t)

	rep := runDoctor(context.Background(), "gcevm.yaml")
	assert.True(t, rep.Healthy)

	names := make([]string, 0, len(rep.Checks))
	for _, c := range rep.Checks {
		assert.True(t, c.OK, "check %q failed: %s", c.Name, c.Detail)
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "config")
	assert.Contains(t, names, "tool gcloud")
	assert.Contains(t, names, "credentials")
	assert.Contains(t, names, "image")
}

func TestRunDoctor_ConfigBrokenStopsEarly(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return nil, errors.New("yaml: unmarshal error")
	}

	rep := runDoctor(context.Background(), "broken.yaml")
	assert.False(t, rep.Healthy)
	require.Len(t, rep.Checks, 1)
	assert.Equal(t, "config", rep.Checks[0].Name)
	assert.False(t, rep.Checks[0].OK)
}

func TestRunDoctor_MissingRequiredTool(t *testing.T) {
	saveAndRestoreFactories(t)
	setupHealthyDoctor(t)

	checkAllPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{
				{Tool: prerequisites.Tool{Name: "gcloud", Required: true, InstallURL: "https://cloud.google.com/sdk"}},
			},
		}
	}

	rep := runDoctor(context.Background(), "gcevm.yaml")
	assert.False(t, rep.Healthy)
}

func TestRunDoctor_MissingOptionalToolStaysHealthy(t *testing.T) {
	saveAndRestoreFactories(t)
	setupHealthyDoctor(t)

	checkAllPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{
				{Tool: prerequisites.Tool{Name: "gcloud", Required: true}, Found: true},
				{Tool: prerequisites.Tool{Name: "ssh", Required: false}},
			},
		}
	}

	rep := runDoctor(context.Background(), "gcevm.yaml")
	assert.True(t, rep.Healthy)
}

func TestRunDoctor_ImageProbeFails(t *testing.T) {
	saveAndRestoreFactories(t)
	setupHealthyDoctor(t)

	mock := gce.NewMockClient()
	mock.GetImageFromFamilyFunc = func(_ context.Context, _, _ string) (*computepb.Image, error) {
		return nil, errors.New("image family not found")
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	rep := runDoctor(context.Background(), "gcevm.yaml")
	assert.False(t, rep.Healthy)

	var imageCheck *DoctorCheck
	for i := range rep.Checks {
		if rep.Checks[i].Name == "image" {
			imageCheck = &rep.Checks[i]
		}
	}
	require.NotNil(t, imageCheck)
	assert.False(t, imageCheck.OK)
	assert.Contains(t, imageCheck.Detail, "image family not found")
}

func TestDoctor_JSONOutput(t *testing.T) {
	saveAndRestoreFactories(t)
	setupHealthyDoctor(t)

	err := Doctor(context.Background(), "gcevm.yaml", true)
	assert.NoError(t, err)
}

func TestDoctor_UnhealthyReturnsError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return nil, errors.New("no such file")
	}

	err := Doctor(context.Background(), "missing.yaml", false)
	assert.Error(t, err)
}
