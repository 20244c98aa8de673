package bootstrap

import (
	"fmt"

	"github.com/rahilkadakia/gcevm/internal/config"
)

const cudaKeyringURL = "https://developer.download.nvidia.com/compute/cuda/repos/ubuntu2204/x86_64/cuda-keyring_1.1-1_all.deb"

// aptGet is the non-interactive apt-get invocation used by all package steps.
const aptGet = "sudo DEBIAN_FRONTEND=noninteractive apt-get"

// Step is a single remote command in the install sequence.
type Step struct {
	// Name identifies the step in logs.
	Name string

	// Command is run on the instance via SSH.
	Command string

	// Reboot marks steps that reboot the machine. The SSH connection drops
	// mid-command, so execution errors are expected and the installer waits
	// for the host to come back instead.
	Reboot bool
}

// Plan builds the install sequence for the given bootstrap configuration.
func Plan(cfg config.BootstrapConfig) []Step {
	steps := []Step{
		{Name: "apt-update", Command: aptGet + " update"},
		{Name: "apt-upgrade", Command: aptGet + " upgrade -y"},
		{Name: "ubuntu-drivers-common", Command: aptGet + " install -y ubuntu-drivers-common"},
		{Name: "nvidia-driver", Command: fmt.Sprintf("%s install -y nvidia-driver-%d", aptGet, cfg.DriverVersion)},
		{Name: "reboot-after-driver", Command: "sudo reboot now", Reboot: true},
	}

	if cfg.CUDAEnabled() {
		steps = append(steps,
			Step{Name: "gcc", Command: aptGet + " install -y gcc"},
			Step{Name: "cuda-keyring-download", Command: "wget -q " + cudaKeyringURL},
			Step{Name: "cuda-keyring-install", Command: "sudo dpkg -i cuda-keyring_1.1-1_all.deb"},
			Step{Name: "apt-update-cuda", Command: aptGet + " update"},
			Step{Name: "reboot-before-toolkit", Command: "sudo reboot now", Reboot: true},
			Step{Name: "cuda-toolkit", Command: aptGet + " install -y nvidia-cuda-toolkit"},
		)
	}

	return steps
}
