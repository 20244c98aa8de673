// Package provisioning provides shared types, interfaces, and orchestration
// for GPU instance provisioning.
//
// # Subpackages
//
//   - instance/ handles image resolution and instance creation
//   - bootstrap/ installs the NVIDIA driver and CUDA toolkit over SSH
//   - sweep/ runs zone-by-zone provisioning attempts with outcome reporting
//
// # Core Types
//
// Context carries configuration, state, compute client, SSH keys, and observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates per-zone results (image, instance name, IP, GPU verification output).
package provisioning
