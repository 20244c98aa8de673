package gce

import (
	"context"

	"cloud.google.com/go/compute/apiv1/computepb"
)

// InstanceCreateOpts holds all parameters for creating a GCE instance.
type InstanceCreateOpts struct {
	Name string
	Zone string

	// MachineType is a bare type name or a full
	// "zones/<zone>/machineTypes/<type>" path.
	MachineType string

	// SourceImage is the self link of the boot image.
	SourceImage string

	// DiskType is a bare disk type name or a full
	// "zones/<zone>/diskTypes/<type>" path.
	DiskType       string
	DiskSizeGB     int64
	DiskAutoDelete bool

	Network    string
	Subnetwork string
	InternalIP string

	// ExternalAccess assigns an external IPv4 via one-to-one NAT.
	ExternalAccess bool
	// ExternalIP pins a static external address; requires ExternalAccess.
	ExternalIP string

	// AcceleratorType is a bare accelerator name or a full
	// "projects/<p>/zones/<z>/acceleratorTypes/<t>" path. Count zero means
	// no accelerator.
	AcceleratorType  string
	AcceleratorCount int32

	Spot        bool
	Preemptible bool
	// TerminationAction applies to Spot VMs: "STOP" or "DELETE".
	TerminationAction string

	Hostname         string
	DeleteProtection bool

	Labels map[string]string
	// Metadata items set on the instance, e.g. the "ssh-keys" entry.
	Metadata map[string]string
}

// InstanceProvisioner defines the interface for provisioning instances.
type InstanceProvisioner interface {
	// CreateInstance creates a new instance, waits for the insert operation
	// to complete, and returns the created instance.
	CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*computepb.Instance, error)

	// GetInstance returns the instance, or nil if it does not exist.
	GetInstance(ctx context.Context, zone, name string) (*computepb.Instance, error)

	// DeleteInstance deletes the instance and waits for the operation.
	// Deleting an absent instance is not an error.
	DeleteInstance(ctx context.Context, zone, name string) error

	// GetInstanceIP returns the instance's external IP, falling back to the
	// internal address when no external NAT is configured.
	GetInstanceIP(ctx context.Context, zone, name string) (string, error)
}

// ImageResolver defines the interface for resolving boot images.
type ImageResolver interface {
	// GetImageFromFamily returns the newest non-deprecated image of the
	// given family in the given project.
	GetImageFromFamily(ctx context.Context, project, family string) (*computepb.Image, error)
}

// MetadataManager defines the interface for managing instance metadata.
type MetadataManager interface {
	// SetInstanceMetadata merges the given items into the instance's
	// metadata, replacing values for existing keys.
	SetInstanceMetadata(ctx context.Context, zone, name string, items map[string]string) error
}

// ComputeManager combines all Compute Engine interfaces.
type ComputeManager interface {
	InstanceProvisioner
	ImageResolver
	MetadataManager
	Close() error
}
