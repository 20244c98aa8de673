package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads, defaults, and validates the configuration from a YAML file.
func Load(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile locates gcevm.yaml in the current directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		return "", fmt.Errorf("config file %s not found", DefaultConfigFile)
	}
	return DefaultConfigFile, nil
}

// WriteYAML marshals the config and writes it to path.
func WriteYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyDefaults fills unset fields with the defaults used by the original
// provisioning workflow: an Ubuntu 22.04 boot disk, the default network
// with external NAT, and a single NVIDIA L4 accelerator.
func (c *Config) ApplyDefaults() {
	if c.Instance.NamePrefix == "" {
		c.Instance.NamePrefix = "vm"
	}
	if c.Instance.MachineType == "" {
		c.Instance.MachineType = "g2-standard-4"
	}
	if c.Instance.Image.Project == "" {
		c.Instance.Image.Project = "ubuntu-os-cloud"
	}
	if c.Instance.Image.Family == "" {
		c.Instance.Image.Family = "ubuntu-2204-lts"
	}
	if c.Instance.Disk.Type == "" {
		c.Instance.Disk.Type = "pd-standard"
	}
	if c.Instance.Disk.SizeGB == 0 {
		c.Instance.Disk.SizeGB = 20
	}
	if c.Instance.Network.Network == "" {
		c.Instance.Network.Network = "global/networks/default"
	}
	if c.Instance.GPU.Type == "" {
		c.Instance.GPU.Type = "nvidia-l4"
	}
	if c.Instance.GPU.Count == 0 {
		c.Instance.GPU.Count = 1
	}
	if c.Instance.TerminationAction == "" {
		c.Instance.TerminationAction = "STOP"
	}

	if c.SSH.User == "" {
		c.SSH.User = "ubuntu"
	}
	if c.SSH.PrivateKeyPath == "" {
		c.SSH.PrivateKeyPath = "id_rsa"
	}
	if c.SSH.PublicKeyPath == "" {
		c.SSH.PublicKeyPath = c.SSH.PrivateKeyPath + ".pub"
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = 22
	}

	if c.Bootstrap.DriverVersion == 0 {
		c.Bootstrap.DriverVersion = 535
	}
	if c.Bootstrap.RebootWait == 0 {
		c.Bootstrap.RebootWait = 60 * time.Second
	}

	if c.Sweep.Pause == 0 {
		c.Sweep.Pause = 30 * time.Second
	}
}
