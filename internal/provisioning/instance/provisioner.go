package instance

import (
	"fmt"

	"cloud.google.com/go/compute/apiv1/computepb"

	"github.com/rahilkadakia/gcevm/internal/platform/gce"
	"github.com/rahilkadakia/gcevm/internal/provisioning"
	"github.com/rahilkadakia/gcevm/internal/util/labels"
	"github.com/rahilkadakia/gcevm/internal/util/naming"
)

const phase = "instance"

// Provisioner creates a GPU instance in a single zone.
type Provisioner struct {
	zone string
}

// NewProvisioner creates a new instance provisioner for the given zone.
func NewProvisioner(zone string) *Provisioner {
	return &Provisioner{zone: zone}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
// It resolves the boot image, creates the instance, and stores the
// instance name and reachable IP in the shared state.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	image, err := p.resolveImage(ctx)
	if err != nil {
		return err
	}

	name := naming.Instance(ctx.Config.Instance.NamePrefix, p.zone)
	provisioning.LogResourceCreating(ctx.Observer, phase, "instance", name)

	if ctx.Config.Instance.Preemptible {
		ctx.Observer.Printf("[%s] preemptible is deprecated, prefer spot with a termination_action", phase)
	}

	// Recorded before the API call so callers can clean up an instance
	// left behind by a failed or half-finished creation.
	ctx.State.InstanceName = name
	ctx.State.Zone = p.zone

	instance, err := ctx.Compute.CreateInstance(ctx, p.buildOpts(ctx, name, image.GetSelfLink()))
	if err != nil {
		return fmt.Errorf("failed to create instance %s: %w", name, err)
	}

	ip, err := gce.InstanceIP(instance)
	if err != nil {
		return fmt.Errorf("instance %s has no usable address: %w", name, err)
	}

	ctx.State.IP = ip

	provisioning.LogResourceCreated(ctx.Observer, phase, "instance", name)
	ctx.Observer.Printf("[%s] instance %s reachable at %s", phase, name, ip)
	return nil
}

// resolveImage resolves the newest image in the configured family and
// records it in the state.
func (p *Provisioner) resolveImage(ctx *provisioning.Context) (*computepb.Image, error) {
	imgCfg := ctx.Config.Instance.Image
	image, err := ctx.Compute.GetImageFromFamily(ctx, imgCfg.Project, imgCfg.Family)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image %s/%s: %w", imgCfg.Project, imgCfg.Family, err)
	}

	ctx.State.ImageName = image.GetName()
	ctx.State.ImageSelfLink = image.GetSelfLink()
	ctx.Observer.Printf("[%s] using image %s from family %s/%s", phase, image.GetName(), imgCfg.Project, imgCfg.Family)
	return image, nil
}

// buildOpts assembles the creation options from configuration.
func (p *Provisioner) buildOpts(ctx *provisioning.Context, name, sourceImage string) gce.InstanceCreateOpts {
	inst := ctx.Config.Instance

	instanceLabels := labels.NewBuilder(inst.NamePrefix).
		WithZone(p.zone).
		Merge(inst.Labels).
		Build()

	opts := gce.InstanceCreateOpts{
		Name:              name,
		Zone:              p.zone,
		MachineType:       inst.MachineType,
		SourceImage:       sourceImage,
		DiskType:          inst.Disk.Type,
		DiskSizeGB:        inst.Disk.SizeGB,
		DiskAutoDelete:    inst.Disk.AutoDeleteEnabled(),
		Network:           inst.Network.Network,
		Subnetwork:        inst.Network.Subnetwork,
		InternalIP:        inst.Network.InternalIP,
		ExternalAccess:    inst.Network.ExternalAccessEnabled(),
		ExternalIP:        inst.Network.ExternalIP,
		AcceleratorType:   inst.GPU.Type,
		AcceleratorCount:  inst.GPU.Count,
		Spot:              inst.Spot,
		Preemptible:       inst.Preemptible,
		TerminationAction: inst.TerminationAction,
		Hostname:          inst.Hostname,
		DeleteProtection:  inst.DeleteProtection,
		Labels:            instanceLabels,
	}

	if ctx.Keys != nil {
		opts.Metadata = map[string]string{
			"ssh-keys": ctx.Keys.MetadataEntry(ctx.Config.SSH.User),
		}
	}

	return opts
}
