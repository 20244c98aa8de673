package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahilkadakia/gcevm/internal/provisioning"
)

// Executor runs commands on the target instance.
// Implemented by platform/ssh.Client.
type Executor interface {
	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, command string) (string, error)

	// WaitReady blocks until the host accepts connections again.
	WaitReady(ctx context.Context) error
}

// Installer runs the driver install sequence against an instance.
type Installer struct {
	exec       Executor
	observer   provisioning.Observer
	rebootWait time.Duration

	// sleep is replaceable in tests.
	sleep func(time.Duration)
}

// NewInstaller creates an installer bound to an executor.
func NewInstaller(exec Executor, observer provisioning.Observer, rebootWait time.Duration) *Installer {
	return &Installer{
		exec:       exec,
		observer:   observer,
		rebootWait: rebootWait,
		sleep:      time.Sleep,
	}
}

// Run executes the install plan step by step.
func (i *Installer) Run(ctx context.Context, plan []Step) error {
	for n, step := range plan {
		i.observer.Progress("bootstrap", n+1, len(plan))
		i.observer.Printf("[bootstrap] running step %s", step.Name)

		output, err := i.exec.Execute(ctx, step.Command)

		if step.Reboot {
			// The reboot kills the session, an error here is expected.
			i.observer.Printf("[bootstrap] waiting %v for %s", i.rebootWait, step.Name)
			i.sleep(i.rebootWait)
			if err := i.exec.WaitReady(ctx); err != nil {
				return fmt.Errorf("host did not come back after %s: %w", step.Name, err)
			}
			continue
		}

		if err != nil {
			return fmt.Errorf("step %s failed: %w", step.Name, err)
		}
		if out := strings.TrimSpace(output); out != "" {
			i.observer.Printf("[bootstrap] %s: %d bytes of output", step.Name, len(out))
		}
	}
	return nil
}

// Verify checks the GPU and toolkit installation. It returns the nvidia-smi
// output and, when checkCUDA is set, the nvcc version output.
func (i *Installer) Verify(ctx context.Context, checkCUDA bool) (driverInfo, cudaInfo string, err error) {
	driverInfo, err = i.exec.Execute(ctx, "nvidia-smi")
	if err != nil {
		return "", "", fmt.Errorf("nvidia-smi failed, driver not installed: %w", err)
	}
	i.observer.Printf("[bootstrap] nvidia-smi:\n%s", strings.TrimSpace(driverInfo))

	if checkCUDA {
		cudaInfo, err = i.exec.Execute(ctx, "nvcc --version")
		if err != nil {
			return driverInfo, "", fmt.Errorf("nvcc failed, CUDA toolkit not installed: %w", err)
		}
		i.observer.Printf("[bootstrap] nvcc:\n%s", strings.TrimSpace(cudaInfo))
	}

	return driverInfo, cudaInfo, nil
}
