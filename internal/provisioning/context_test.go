package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/platform/gce"
)

func TestNewState(t *testing.T) {
	t.Parallel()
	state := NewState()

	require.NotNil(t, state)
	assert.Empty(t, state.InstanceName)
	assert.Empty(t, state.Zone)
	assert.Empty(t, state.IP)
	assert.Empty(t, state.DriverInfo)
	assert.Empty(t, state.CUDAInfo)
}

func TestNewContext(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{Project: "test-project"}
	mock := gce.NewMockClient()

	ctx := NewContext(context.Background(), cfg, mock, nil)

	require.NotNil(t, ctx)
	assert.Equal(t, cfg, ctx.Config)
	assert.Equal(t, mock, ctx.Compute)
	assert.NotNil(t, ctx.State)
	assert.NotNil(t, ctx.Observer)
	assert.NotNil(t, ctx.Timeouts)
	assert.Nil(t, ctx.Keys)
}

func TestContext_CarriesCancellation(t *testing.T) {
	t.Parallel()
	base, cancel := context.WithCancel(context.Background())
	ctx := NewContext(base, &config.Config{}, gce.NewMockClient(), nil)

	assert.NoError(t, ctx.Err())
	cancel()
	assert.Error(t, ctx.Err())
}
