package gce

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/protobuf/proto"

	"github.com/rahilkadakia/gcevm/internal/util/retry"
)

// qualifyMachineType turns a bare machine type name into its zonal path.
// Already-qualified paths are returned unchanged.
func qualifyMachineType(zone, machineType string) string {
	if strings.Contains(machineType, "/") {
		return machineType
	}
	return fmt.Sprintf("zones/%s/machineTypes/%s", zone, machineType)
}

// qualifyDiskType turns a bare disk type name into its zonal path.
func qualifyDiskType(zone, diskType string) string {
	if strings.Contains(diskType, "/") {
		return diskType
	}
	return fmt.Sprintf("zones/%s/diskTypes/%s", zone, diskType)
}

// qualifyAcceleratorType turns a bare accelerator name into its zonal path.
func qualifyAcceleratorType(zone, acceleratorType string) string {
	if strings.Contains(acceleratorType, "/") {
		return acceleratorType
	}
	return fmt.Sprintf("zones/%s/acceleratorTypes/%s", zone, acceleratorType)
}

// buildInstanceResource assembles the Instance resource for an insert
// request from the creation options.
func buildInstanceResource(opts InstanceCreateOpts) *computepb.Instance {
	disk := &computepb.AttachedDisk{
		Boot:       proto.Bool(true),
		AutoDelete: proto.Bool(opts.DiskAutoDelete),
		Type:       proto.String(computepb.AttachedDisk_PERSISTENT.String()),
		InitializeParams: &computepb.AttachedDiskInitializeParams{
			SourceImage: proto.String(opts.SourceImage),
			DiskSizeGb:  proto.Int64(opts.DiskSizeGB),
			DiskType:    proto.String(qualifyDiskType(opts.Zone, opts.DiskType)),
		},
	}

	nic := &computepb.NetworkInterface{
		Network: proto.String(opts.Network),
	}
	if opts.Subnetwork != "" {
		nic.Subnetwork = proto.String(opts.Subnetwork)
	}
	if opts.InternalIP != "" {
		nic.NetworkIP = proto.String(opts.InternalIP)
	}
	if opts.ExternalAccess {
		access := &computepb.AccessConfig{
			Type:        proto.String(computepb.AccessConfig_ONE_TO_ONE_NAT.String()),
			Name:        proto.String("External NAT"),
			NetworkTier: proto.String(computepb.AccessConfig_PREMIUM.String()),
		}
		if opts.ExternalIP != "" {
			access.NatIP = proto.String(opts.ExternalIP)
		}
		nic.AccessConfigs = []*computepb.AccessConfig{access}
	}

	instance := &computepb.Instance{
		Name:              proto.String(opts.Name),
		MachineType:       proto.String(qualifyMachineType(opts.Zone, opts.MachineType)),
		Disks:             []*computepb.AttachedDisk{disk},
		NetworkInterfaces: []*computepb.NetworkInterface{nic},
	}

	if opts.AcceleratorCount > 0 && opts.AcceleratorType != "" {
		instance.GuestAccelerators = []*computepb.AcceleratorConfig{
			{
				AcceleratorType:  proto.String(qualifyAcceleratorType(opts.Zone, opts.AcceleratorType)),
				AcceleratorCount: proto.Int32(opts.AcceleratorCount),
			},
		}
		// GPU instances cannot live-migrate.
		instance.Scheduling = &computepb.Scheduling{
			OnHostMaintenance: proto.String(computepb.Scheduling_TERMINATE.String()),
		}
	}

	if opts.Spot {
		if instance.Scheduling == nil {
			instance.Scheduling = &computepb.Scheduling{}
		}
		instance.Scheduling.ProvisioningModel = proto.String(computepb.Scheduling_SPOT.String())
		if opts.TerminationAction != "" {
			instance.Scheduling.InstanceTerminationAction = proto.String(opts.TerminationAction)
		}
	} else if opts.Preemptible {
		if instance.Scheduling == nil {
			instance.Scheduling = &computepb.Scheduling{}
		}
		instance.Scheduling.Preemptible = proto.Bool(true)
	}

	if opts.Hostname != "" {
		instance.Hostname = proto.String(opts.Hostname)
	}
	if opts.DeleteProtection {
		instance.DeletionProtection = proto.Bool(true)
	}
	if len(opts.Labels) > 0 {
		instance.Labels = opts.Labels
	}
	if len(opts.Metadata) > 0 {
		items := make([]*computepb.Items, 0, len(opts.Metadata))
		for k, v := range opts.Metadata {
			items = append(items, &computepb.Items{
				Key:   proto.String(k),
				Value: proto.String(v),
			})
		}
		instance.Metadata = &computepb.Metadata{Items: items}
	}

	return instance
}

// CreateInstance creates an instance in the given zone and waits for the
// insert operation to complete. Transient API errors are retried; errors
// that indicate the zone cannot satisfy the request are returned as-is so
// callers can classify them.
func (c *RealClient) CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*computepb.Instance, error) {
	if opts.Name == "" || opts.Zone == "" {
		return nil, fmt.Errorf("instance name and zone cannot be empty")
	}

	log.Printf("Creating instance %s in zone %s...", opts.Name, opts.Zone)

	req := &computepb.InsertInstanceRequest{
		Project:          c.project,
		Zone:             opts.Zone,
		InstanceResource: buildInstanceResource(opts),
	}

	createCtx, cancel := context.WithTimeout(ctx, c.timeouts.InstanceCreate)
	defer cancel()

	err := retry.Do(createCtx, func() error {
		op, err := c.instances.Insert(createCtx, req)
		if err != nil {
			if IsRetryable(err) {
				return err
			}
			return retry.Fatal(err)
		}
		if err := c.waitOperation(createCtx, op, fmt.Sprintf("instance %s creation", opts.Name)); err != nil {
			return retry.Fatal(err)
		}
		return nil
	}, retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return nil, fmt.Errorf("failed to create instance %s in %s: %w", opts.Name, opts.Zone, err)
	}

	instance, err := c.GetInstance(ctx, opts.Zone, opts.Name)
	if err != nil {
		return nil, fmt.Errorf("instance %s created but fetch failed: %w", opts.Name, err)
	}

	log.Printf("Instance %s created in zone %s", opts.Name, opts.Zone)
	return instance, nil
}

// GetInstance fetches an instance by zone and name.
func (c *RealClient) GetInstance(ctx context.Context, zone, name string) (*computepb.Instance, error) {
	req := &computepb.GetInstanceRequest{
		Project:  c.project,
		Zone:     zone,
		Instance: name,
	}
	instance, err := c.instances.Get(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get instance %s in %s: %w", name, zone, err)
	}
	return instance, nil
}

// DeleteInstance deletes an instance and waits for the operation to
// complete. Deleting an instance that does not exist is not an error.
func (c *RealClient) DeleteInstance(ctx context.Context, zone, name string) error {
	if _, err := c.GetInstance(ctx, zone, name); err != nil {
		if IsNotFound(err) {
			log.Printf("Instance %s not found in zone %s, nothing to delete", name, zone)
			return nil
		}
		return err
	}

	log.Printf("Deleting instance %s in zone %s...", name, zone)

	deleteCtx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	req := &computepb.DeleteInstanceRequest{
		Project:  c.project,
		Zone:     zone,
		Instance: name,
	}

	op, err := c.instances.Delete(deleteCtx, req)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete instance %s in %s: %w", name, zone, err)
	}

	if err := c.waitOperation(deleteCtx, op, fmt.Sprintf("instance %s deletion", name)); err != nil {
		return err
	}

	log.Printf("Instance %s deleted", name)
	return nil
}

// GetInstanceIP returns the address to reach the instance on, preferring
// the external NAT IP of the first network interface and falling back to
// the internal address when no access config is attached.
func (c *RealClient) GetInstanceIP(ctx context.Context, zone, name string) (string, error) {
	instance, err := c.GetInstance(ctx, zone, name)
	if err != nil {
		return "", err
	}
	return InstanceIP(instance)
}

// InstanceIP extracts the reachable IP from an already-fetched instance.
func InstanceIP(instance *computepb.Instance) (string, error) {
	nics := instance.GetNetworkInterfaces()
	if len(nics) == 0 {
		return "", fmt.Errorf("instance %s has no network interfaces", instance.GetName())
	}
	for _, access := range nics[0].GetAccessConfigs() {
		if ip := access.GetNatIP(); ip != "" {
			return ip, nil
		}
	}
	if ip := nics[0].GetNetworkIP(); ip != "" {
		return ip, nil
	}
	return "", fmt.Errorf("instance %s has no assigned IP address", instance.GetName())
}

// SetInstanceMetadata merges the given entries into the instance metadata,
// preserving existing keys that are not overwritten. The current metadata
// fingerprint is required by the API for optimistic concurrency.
func (c *RealClient) SetInstanceMetadata(ctx context.Context, zone, name string, entries map[string]string) error {
	instance, err := c.GetInstance(ctx, zone, name)
	if err != nil {
		return err
	}

	merged := map[string]string{}
	current := instance.GetMetadata()
	for _, item := range current.GetItems() {
		merged[item.GetKey()] = item.GetValue()
	}
	for k, v := range entries {
		merged[k] = v
	}

	items := make([]*computepb.Items, 0, len(merged))
	for k, v := range merged {
		items = append(items, &computepb.Items{
			Key:   proto.String(k),
			Value: proto.String(v),
		})
	}

	req := &computepb.SetMetadataInstanceRequest{
		Project:  c.project,
		Zone:     zone,
		Instance: name,
		MetadataResource: &computepb.Metadata{
			Fingerprint: current.Fingerprint,
			Items:       items,
		},
	}

	op, err := c.instances.SetMetadata(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to set metadata on instance %s: %w", name, err)
	}

	return c.waitOperation(ctx, op, fmt.Sprintf("instance %s metadata update", name))
}
