package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rahilkadakia/gcevm/internal/platform/ssh"
	"github.com/rahilkadakia/gcevm/internal/provisioning"
)

const phase = "bootstrap"

// Phase runs the driver install and verification as a provisioning phase.
// NewExecutor is replaceable in tests; the default dials the instance from
// the state's IP with the context's SSH configuration.
type Phase struct {
	NewExecutor func(ctx *provisioning.Context) (Executor, error)
}

// NewPhase creates the bootstrap phase with the default SSH executor.
func NewPhase() *Phase {
	return &Phase{NewExecutor: newSSHExecutor}
}

// Name implements the provisioning.Phase interface.
func (p *Phase) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. It waits for SSH,
// runs the install plan, verifies the GPU, and records the verification
// output in the shared state. A disabled bootstrap is a no-op.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	if !ctx.Config.Bootstrap.BootstrapEnabled() {
		ctx.Observer.Printf("[%s] disabled, skipping driver install", phase)
		return nil
	}
	if ctx.State.IP == "" {
		return fmt.Errorf("no instance address in state, run the instance phase first")
	}

	exec, err := p.NewExecutor(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up SSH executor: %w", err)
	}

	readyCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.SSHReady)
	err = exec.WaitReady(readyCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("instance %s not reachable over SSH: %w", ctx.State.InstanceName, err)
	}

	installer := NewInstaller(exec, ctx.Observer, ctx.Config.Bootstrap.RebootWait)

	if err := installer.Run(ctx, Plan(ctx.Config.Bootstrap)); err != nil {
		return fmt.Errorf("driver install on %s failed: %w", ctx.State.InstanceName, err)
	}

	driverInfo, cudaInfo, err := installer.Verify(ctx, ctx.Config.Bootstrap.CUDAEnabled())
	if err != nil {
		return fmt.Errorf("GPU verification on %s failed: %w", ctx.State.InstanceName, err)
	}

	ctx.State.DriverInfo = driverInfo
	ctx.State.CUDAInfo = cudaInfo
	return nil
}

// newSSHExecutor dials the instance recorded in the state.
func newSSHExecutor(ctx *provisioning.Context) (Executor, error) {
	var privateKey []byte
	if ctx.Keys != nil {
		privateKey = ctx.Keys.PrivateKey
	}
	if len(privateKey) == 0 {
		data, err := os.ReadFile(ctx.Config.SSH.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}
		privateKey = data
	}

	return ssh.NewClient(&ssh.Config{
		Host:       ctx.State.IP,
		Port:       ctx.Config.SSH.Port,
		User:       ctx.Config.SSH.User,
		PrivateKey: privateKey,
		RetryDelay: 5 * time.Second,
	})
}
