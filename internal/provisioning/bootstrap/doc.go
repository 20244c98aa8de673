// Package bootstrap installs the NVIDIA driver and CUDA toolkit on a
// freshly created instance over SSH and verifies the result with
// nvidia-smi and nvcc.
//
// The install sequence mirrors the manual Ubuntu procedure: apt upgrade,
// ubuntu-drivers-common, the versioned nvidia-driver package, a reboot,
// then gcc, the CUDA apt keyring, another reboot, and the toolkit.
// Reboots drop the SSH connection, so the installer waits for the host
// to come back before continuing.
package bootstrap
