package handlers

import (
	"context"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/protobuf/proto"

	"github.com/rahilkadakia/gcevm/internal/platform/gce"
)

func TestDelete_Success(t *testing.T) {
	saveAndRestoreFactories(t)
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	var deletedZone, deletedName string
	mock.DeleteInstanceFunc = func(_ context.Context, zone, name string) error {
		deletedZone, deletedName = zone, name
		return nil
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	err := Delete(context.Background(), "gcevm.yaml", "us-east1-b", "")
	require.NoError(t, err)
	assert.Equal(t, "us-east1-b", deletedZone)
	assert.Equal(t, "vm-us-east1-b", deletedName)
}

func TestDelete_ExplicitName(t *testing.T) {
	saveAndRestoreFactories(t)
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	var deletedName string
	mock.DeleteInstanceFunc = func(_ context.Context, _, name string) error {
		deletedName = name
		return nil
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	err := Delete(context.Background(), "gcevm.yaml", "", "my-instance")
	require.NoError(t, err)
	assert.Equal(t, "my-instance", deletedName)
}

func TestDelete_NotFoundIsNotAnError(t *testing.T) {
	saveAndRestoreFactories(t)
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	mock.GetInstanceFunc = func(_ context.Context, _, _ string) (*computepb.Instance, error) {
		return nil, &googleapi.Error{Code: 404, Message: "not found"}
	}
	mock.DeleteInstanceFunc = func(_ context.Context, _, _ string) error {
		t.Fatal("deleted an instance that does not exist")
		return nil
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	err := Delete(context.Background(), "gcevm.yaml", "", "")
	assert.NoError(t, err)
}

func TestDelete_RefusesProtectedInstance(t *testing.T) {
	saveAndRestoreFactories(t)
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	mock.GetInstanceFunc = func(_ context.Context, _, name string) (*computepb.Instance, error) {
		return &computepb.Instance{
			Name:               proto.String(name),
			DeletionProtection: proto.Bool(true),
		}, nil
	}
	mock.DeleteInstanceFunc = func(_ context.Context, _, _ string) error {
		t.Fatal("deleted a protected instance")
		return nil
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	err := Delete(context.Background(), "gcevm.yaml", "", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "deletion protection")
}
