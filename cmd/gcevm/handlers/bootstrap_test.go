package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahilkadakia/gcevm/internal/platform/gce"
)

func TestBootstrap_InstanceAddressLookupFails(t *testing.T) {
	saveAndRestoreFactories(t)
	fakeKeys()
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	mock.GetInstanceIPFunc = func(_ context.Context, zone, name string) (string, error) {
		assert.Equal(t, "us-central1-a", zone)
		assert.Equal(t, "vm-us-central1-a", name)
		return "", errors.New("instance has no external address")
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	err := Bootstrap(context.Background(), "gcevm.yaml", "", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve instance address")
}

func TestBootstrap_PublishesSSHKey(t *testing.T) {
	saveAndRestoreFactories(t)
	fakeKeys()
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	var published map[string]string
	mock.SetInstanceMetadataFunc = func(_ context.Context, _, _ string, entries map[string]string) error {
		published = entries
		// fail afterwards so the handler stops before dialing SSH
		return errors.New("stop here")
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	err := Bootstrap(context.Background(), "gcevm.yaml", "", "")
	assert.Error(t, err)
	assert.Contains(t, published["ssh-keys"], "ubuntu:")
}

func TestBootstrap_ClientCreationFails(t *testing.T) {
	saveAndRestoreFactories(t)
	fakeKeys()
	useConfig(testConfig(t))

	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return nil, errors.New("credentials expired")
	}

	err := Bootstrap(context.Background(), "gcevm.yaml", "", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "compute client")
}
