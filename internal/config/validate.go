package config

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Zone names look like us-central1-a.
	zoneRegex = regexp.MustCompile(`^[a-z]+-[a-z]+\d+-[a-z]$`)

	// Full machine type paths, matching the qualification rule applied
	// at instance build time.
	machineTypePathRegex = regexp.MustCompile(`^zones/[a-z\d-]+/machineTypes/[a-z\d-]+$`)

	// Bare resource names (machine types, disk types, accelerator types).
	bareNameRegex = regexp.MustCompile(`^[a-z][a-z\d-]*$`)

	// RFC 1035 hostnames: dot-separated labels.
	hostnameRegex = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?(\.[a-z]([a-z0-9-]*[a-z0-9])?)*$`)
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project is required")
	}
	if len(c.Zones) == 0 {
		return fmt.Errorf("at least one zone is required")
	}
	for _, zone := range c.Zones {
		if !zoneRegex.MatchString(zone) {
			return fmt.Errorf("invalid zone %q (expected e.g. us-central1-a)", zone)
		}
	}

	if err := c.Instance.validate(); err != nil {
		return err
	}

	if c.SSH.User == "" {
		return fmt.Errorf("ssh.user is required")
	}

	if c.Instance.Spot && c.Instance.Preemptible {
		return fmt.Errorf("spot and preemptible are mutually exclusive")
	}

	if c.Report.S3 != nil && c.Report.S3.Bucket == "" {
		return fmt.Errorf("report.s3.bucket is required when report upload is configured")
	}

	return nil
}

func (i *InstanceConfig) validate() error {
	if !machineTypePathRegex.MatchString(i.MachineType) && !bareNameRegex.MatchString(i.MachineType) {
		return fmt.Errorf("invalid machine type %q", i.MachineType)
	}

	if i.Disk.SizeGB < 10 {
		return fmt.Errorf("disk size must be at least 10 GB, got %d", i.Disk.SizeGB)
	}
	if !strings.Contains(i.Disk.Type, "/") && !bareNameRegex.MatchString(i.Disk.Type) {
		return fmt.Errorf("invalid disk type %q", i.Disk.Type)
	}

	if i.GPU.Count < 0 {
		return fmt.Errorf("gpu count cannot be negative")
	}
	if i.GPU.Count > 0 && i.GPU.Type == "" {
		return fmt.Errorf("gpu.type is required when gpu.count > 0")
	}

	switch i.TerminationAction {
	case "STOP", "DELETE":
	default:
		return fmt.Errorf("invalid termination action %q (must be STOP or DELETE)", i.TerminationAction)
	}

	if i.Network.ExternalIP != "" && !i.Network.ExternalAccessEnabled() {
		return fmt.Errorf("network.external_ip requires network.external_access")
	}

	if i.Hostname != "" && !hostnameRegex.MatchString(i.Hostname) {
		return fmt.Errorf("invalid hostname %q (must conform to RFC 1035)", i.Hostname)
	}

	return nil
}
