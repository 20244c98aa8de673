package config

import "time"

// DefaultConfigFile is the config file name looked up in the working
// directory when no --config flag is given.
const DefaultConfigFile = "gcevm.yaml"

// Config holds the application configuration.
type Config struct {
	// Project is the Google Cloud project ID instances are created in.
	Project string `yaml:"project"`

	// Zones are the candidate zones tried by sweep, in order.
	// Single-instance commands default to the first entry.
	Zones []string `yaml:"zones"`

	// Instance describes the shape of the VM to create.
	Instance InstanceConfig `yaml:"instance"`

	// SSH configures the login used for post-boot bootstrap.
	SSH SSHConfig `yaml:"ssh"`

	// Bootstrap configures the NVIDIA driver install sequence.
	Bootstrap BootstrapConfig `yaml:"bootstrap"`

	// Sweep configures multi-zone sweep behavior.
	Sweep SweepConfig `yaml:"sweep"`

	// Report configures the sweep report output.
	Report ReportConfig `yaml:"report"`

	// MetricsAddr, when set (e.g. ":9090"), serves Prometheus metrics for
	// the duration of a sweep.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`

	// PrerequisitesCheckEnabled enables the preflight check for required
	// client tools and credentials. Default: true.
	PrerequisitesCheckEnabled *bool `yaml:"prerequisites_check_enabled,omitempty"`
}

// InstanceConfig describes the VM instance to create.
type InstanceConfig struct {
	// NamePrefix is combined with the zone to form the instance name,
	// e.g. prefix "vm" in zone us-central1-a yields "vm-us-central1-a".
	NamePrefix string `yaml:"name_prefix"`

	// MachineType is either a bare type name ("g2-standard-4") or a full
	// "zones/<zone>/machineTypes/<type>" path.
	MachineType string `yaml:"machine_type"`

	Image   ImageConfig       `yaml:"image"`
	Disk    DiskConfig        `yaml:"disk"`
	Network NetworkConfig     `yaml:"network"`
	GPU     GPUConfig         `yaml:"gpu"`
	Labels  map[string]string `yaml:"labels,omitempty"`

	// Spot requests a Spot VM with the configured TerminationAction.
	Spot bool `yaml:"spot"`

	// Preemptible requests a (deprecated) preemptible VM. Spot should be
	// used instead; this is kept for parity with older setups.
	Preemptible bool `yaml:"preemptible"`

	// TerminationAction is what happens when a Spot VM is reclaimed.
	// One of "STOP" or "DELETE".
	TerminationAction string `yaml:"termination_action"`

	// Hostname sets a custom RFC 1035 hostname on the instance.
	Hostname string `yaml:"hostname,omitempty"`

	// DeleteProtection protects the instance against deletion. The delete
	// command refuses to touch protected instances.
	DeleteProtection bool `yaml:"delete_protection"`
}

// ImageConfig selects the boot image by family.
// The newest non-deprecated image of the family is used.
type ImageConfig struct {
	Project string `yaml:"project"`
	Family  string `yaml:"family"`
}

// DiskConfig describes the boot disk.
type DiskConfig struct {
	// Type is a bare disk type name (pd-standard, pd-ssd, pd-balanced,
	// pd-extreme) or a full "zones/<zone>/diskTypes/<type>" path.
	Type   string `yaml:"type"`
	SizeGB int64  `yaml:"size_gb"`

	// AutoDelete deletes the disk together with the instance. Default: true.
	AutoDelete *bool `yaml:"auto_delete,omitempty"`
}

// NetworkConfig describes the instance's network attachment.
type NetworkConfig struct {
	Network    string `yaml:"network"`
	Subnetwork string `yaml:"subnetwork,omitempty"`

	// InternalIP pins the internal address; empty picks one from the subnet.
	InternalIP string `yaml:"internal_ip,omitempty"`

	// ExternalAccess assigns an ephemeral external IPv4 via one-to-one NAT.
	// Required for SSH bootstrap. Default: true.
	ExternalAccess *bool `yaml:"external_access,omitempty"`

	// ExternalIP pins a static external address; requires ExternalAccess.
	ExternalIP string `yaml:"external_ip,omitempty"`
}

// GPUConfig describes the guest accelerator.
type GPUConfig struct {
	// Type is a bare accelerator type name (e.g. nvidia-l4) or a full
	// "projects/<p>/zones/<z>/acceleratorTypes/<t>" path.
	Type  string `yaml:"type"`
	Count int32  `yaml:"count"`
}

// SSHConfig configures the SSH login used for bootstrap.
type SSHConfig struct {
	// User is the login name; the public key is published under this user
	// in the instance's ssh-keys metadata.
	User string `yaml:"user"`

	// PrivateKeyPath / PublicKeyPath are the key file locations. Keys are
	// generated on first use if the private key file does not exist.
	PrivateKeyPath string `yaml:"private_key_path"`
	PublicKeyPath  string `yaml:"public_key_path"`

	Port int `yaml:"port,omitempty"`
}

// BootstrapConfig configures the NVIDIA driver install sequence.
type BootstrapConfig struct {
	// Enabled runs the driver install after instance creation. Default: true.
	Enabled *bool `yaml:"enabled,omitempty"`

	// DriverVersion is the nvidia-driver package major version (e.g. 535).
	DriverVersion int `yaml:"driver_version"`

	// CUDAToolkit also installs the CUDA toolkit and verifies nvcc.
	// Default: true.
	CUDAToolkit *bool `yaml:"cuda_toolkit,omitempty"`

	// RebootWait is how long to wait after issuing a reboot before probing
	// SSH again.
	RebootWait time.Duration `yaml:"reboot_wait"`
}

// SweepConfig configures multi-zone sweep behavior.
type SweepConfig struct {
	// Pause is the delay between zones.
	Pause time.Duration `yaml:"pause"`

	// Keep leaves successfully provisioned instances running instead of
	// deleting them after verification.
	Keep bool `yaml:"keep"`
}

// ReportConfig configures the sweep report output.
type ReportConfig struct {
	// Path is the local JSON report file. Empty derives a name from the
	// instance prefix.
	Path string `yaml:"path,omitempty"`

	// S3 enables upload of the report to an S3-compatible bucket.
	S3 *S3Config `yaml:"s3,omitempty"`
}

// S3Config points at an S3-compatible object store for report uploads.
// Credentials fall back to GCEVM_S3_ACCESS_KEY / GCEVM_S3_SECRET_KEY when
// not set in the file.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region,omitempty"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
}

// ExternalAccessEnabled reports whether the instance gets an external IP.
func (n NetworkConfig) ExternalAccessEnabled() bool {
	return n.ExternalAccess == nil || *n.ExternalAccess
}

// AutoDeleteEnabled reports whether the boot disk is deleted with the VM.
func (d DiskConfig) AutoDeleteEnabled() bool {
	return d.AutoDelete == nil || *d.AutoDelete
}

// BootstrapEnabled reports whether driver install runs after creation.
func (b BootstrapConfig) BootstrapEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

// CUDAEnabled reports whether the CUDA toolkit is installed and verified.
func (b BootstrapConfig) CUDAEnabled() bool {
	return b.CUDAToolkit == nil || *b.CUDAToolkit
}

// PrerequisitesEnabled reports whether the preflight check runs.
func (c *Config) PrerequisitesEnabled() bool {
	return c.PrerequisitesCheckEnabled == nil || *c.PrerequisitesCheckEnabled
}
