package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/provisioning"
	"github.com/rahilkadakia/gcevm/internal/util/ptr"
)

// fakeExecutor records executed commands and serves canned responses.
type fakeExecutor struct {
	commands  []string
	responses map[string]string
	failOn    map[string]error
	waitErr   error
	waitCalls int
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		responses: make(map[string]string),
		failOn:    make(map[string]error),
	}
}

func (f *fakeExecutor) Execute(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if err, ok := f.failOn[command]; ok {
		return "", err
	}
	return f.responses[command], nil
}

func (f *fakeExecutor) WaitReady(_ context.Context) error {
	f.waitCalls++
	return f.waitErr
}

func newTestInstaller(exec Executor) *Installer {
	installer := NewInstaller(exec, provisioning.NewConsoleObserver(), time.Minute)
	installer.sleep = func(time.Duration) {}
	return installer
}

func TestPlan_FullSequence(t *testing.T) {
	cfg := config.BootstrapConfig{DriverVersion: 535}
	plan := Plan(cfg)

	require.Len(t, plan, 11)
	assert.Equal(t, "apt-update", plan[0].Name)
	assert.Contains(t, plan[3].Command, "nvidia-driver-535")
	assert.True(t, plan[4].Reboot)
	assert.True(t, plan[9].Reboot)
	assert.Equal(t, "cuda-toolkit", plan[10].Name)

	rebootCount := 0
	for _, step := range plan {
		if step.Reboot {
			rebootCount++
		}
	}
	assert.Equal(t, 2, rebootCount)
}

func TestPlan_WithoutCUDA(t *testing.T) {
	cfg := config.BootstrapConfig{DriverVersion: 550, CUDAToolkit: ptr.Bool(false)}
	plan := Plan(cfg)

	require.Len(t, plan, 5)
	for _, step := range plan {
		assert.NotContains(t, step.Command, "cuda")
	}
	assert.Contains(t, plan[3].Command, "nvidia-driver-550")
}

func TestRun_ExecutesAllSteps(t *testing.T) {
	exec := newFakeExecutor()
	installer := newTestInstaller(exec)

	plan := Plan(config.BootstrapConfig{DriverVersion: 535})
	require.NoError(t, installer.Run(context.Background(), plan))

	assert.Len(t, exec.commands, len(plan))
	assert.Equal(t, 2, exec.waitCalls, "should wait for host after each reboot")
}

func TestRun_RebootErrorIgnored(t *testing.T) {
	exec := newFakeExecutor()
	exec.failOn["sudo reboot now"] = errors.New("connection closed by remote host")
	installer := newTestInstaller(exec)

	plan := Plan(config.BootstrapConfig{DriverVersion: 535})
	require.NoError(t, installer.Run(context.Background(), plan))
}

func TestRun_StepFailureStops(t *testing.T) {
	exec := newFakeExecutor()
	failCmd := aptGet + " install -y ubuntu-drivers-common"
	exec.failOn[failCmd] = errors.New("package not found")
	installer := newTestInstaller(exec)

	err := installer.Run(context.Background(), Plan(config.BootstrapConfig{DriverVersion: 535}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ubuntu-drivers-common")
	// Nothing past the failing step ran.
	for _, cmd := range exec.commands {
		assert.NotContains(t, cmd, "nvidia-driver-535")
	}
}

func TestRun_HostDoesNotComeBack(t *testing.T) {
	exec := newFakeExecutor()
	exec.waitErr = errors.New("dial timeout")
	installer := newTestInstaller(exec)

	err := installer.Run(context.Background(), Plan(config.BootstrapConfig{DriverVersion: 535}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not come back")
}

func TestVerify(t *testing.T) {
	exec := newFakeExecutor()
	exec.responses["nvidia-smi"] = "NVIDIA-SMI 535.183.01  Driver Version: 535.183.01  CUDA Version: 12.2"
	exec.responses["nvcc --version"] = "Cuda compilation tools, release 11.5, V11.5.119"
	installer := newTestInstaller(exec)

	driverInfo, cudaInfo, err := installer.Verify(context.Background(), true)
	require.NoError(t, err)
	assert.Contains(t, driverInfo, "NVIDIA-SMI")
	assert.Contains(t, cudaInfo, "Cuda compilation tools")
}

func TestVerify_DriverMissing(t *testing.T) {
	exec := newFakeExecutor()
	exec.failOn["nvidia-smi"] = errors.New("command not found")
	installer := newTestInstaller(exec)

	_, _, err := installer.Verify(context.Background(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "driver not installed")
}

func TestVerify_SkipsCUDA(t *testing.T) {
	exec := newFakeExecutor()
	exec.responses["nvidia-smi"] = "NVIDIA-SMI 535"
	installer := newTestInstaller(exec)

	driverInfo, cudaInfo, err := installer.Verify(context.Background(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, driverInfo)
	assert.Empty(t, cudaInfo)
	for _, cmd := range exec.commands {
		assert.False(t, strings.HasPrefix(cmd, "nvcc"), "nvcc should not run when CUDA check is off")
	}
}
