package gce

import (
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/protobuf/proto"
)

func baseOpts() InstanceCreateOpts {
	return InstanceCreateOpts{
		Name:           "vm-us-east1-b",
		Zone:           "us-east1-b",
		MachineType:    "g2-standard-4",
		SourceImage:    "projects/ubuntu-os-cloud/global/images/ubuntu-2204-v20240101",
		DiskType:       "pd-standard",
		DiskSizeGB:     20,
		DiskAutoDelete: true,
		Network:        "global/networks/default",
		ExternalAccess: true,
	}
}

func TestQualifyMachineType(t *testing.T) {
	got := qualifyMachineType("us-east1-b", "g2-standard-4")
	want := "zones/us-east1-b/machineTypes/g2-standard-4"
	if got != want {
		t.Errorf("qualifyMachineType = %q, want %q", got, want)
	}

	// Already-qualified paths pass through.
	if got := qualifyMachineType("us-east1-b", want); got != want {
		t.Errorf("qualifyMachineType(qualified) = %q, want %q", got, want)
	}
}

func TestBuildInstanceResourceBasics(t *testing.T) {
	instance := buildInstanceResource(baseOpts())

	if instance.GetName() != "vm-us-east1-b" {
		t.Errorf("name = %q", instance.GetName())
	}
	if got := instance.GetMachineType(); got != "zones/us-east1-b/machineTypes/g2-standard-4" {
		t.Errorf("machine type = %q", got)
	}

	disks := instance.GetDisks()
	if len(disks) != 1 {
		t.Fatalf("expected 1 disk, got %d", len(disks))
	}
	if !disks[0].GetBoot() || !disks[0].GetAutoDelete() {
		t.Error("boot disk should be boot+autodelete")
	}
	params := disks[0].GetInitializeParams()
	if params.GetDiskSizeGb() != 20 {
		t.Errorf("disk size = %d", params.GetDiskSizeGb())
	}
	if got := params.GetDiskType(); got != "zones/us-east1-b/diskTypes/pd-standard" {
		t.Errorf("disk type = %q", got)
	}
}

func TestBuildInstanceResourceExternalNAT(t *testing.T) {
	instance := buildInstanceResource(baseOpts())

	nics := instance.GetNetworkInterfaces()
	if len(nics) != 1 {
		t.Fatalf("expected 1 nic, got %d", len(nics))
	}
	if nics[0].GetNetwork() != "global/networks/default" {
		t.Errorf("network = %q", nics[0].GetNetwork())
	}
	if nics[0].GetName() != "" {
		t.Errorf("nic name = %q, want unset", nics[0].GetName())
	}
	access := nics[0].GetAccessConfigs()
	if len(access) != 1 {
		t.Fatalf("expected 1 access config, got %d", len(access))
	}
	if access[0].GetType() != "ONE_TO_ONE_NAT" {
		t.Errorf("access type = %q", access[0].GetType())
	}
	if access[0].GetName() != "External NAT" {
		t.Errorf("access name = %q", access[0].GetName())
	}
	if access[0].GetNetworkTier() != "PREMIUM" {
		t.Errorf("network tier = %q", access[0].GetNetworkTier())
	}

	opts := baseOpts()
	opts.ExternalAccess = false
	internal := buildInstanceResource(opts)
	if len(internal.GetNetworkInterfaces()[0].GetAccessConfigs()) != 0 {
		t.Error("internal-only instance should have no access configs")
	}
}

func TestBuildInstanceResourceGPU(t *testing.T) {
	opts := baseOpts()
	opts.AcceleratorType = "nvidia-l4"
	opts.AcceleratorCount = 1

	instance := buildInstanceResource(opts)

	accs := instance.GetGuestAccelerators()
	if len(accs) != 1 {
		t.Fatalf("expected 1 accelerator, got %d", len(accs))
	}
	if got := accs[0].GetAcceleratorType(); got != "zones/us-east1-b/acceleratorTypes/nvidia-l4" {
		t.Errorf("accelerator type = %q", got)
	}
	if accs[0].GetAcceleratorCount() != 1 {
		t.Errorf("accelerator count = %d", accs[0].GetAcceleratorCount())
	}
	if got := instance.GetScheduling().GetOnHostMaintenance(); got != "TERMINATE" {
		t.Errorf("on host maintenance = %q, want TERMINATE", got)
	}
}

func TestBuildInstanceResourceSpot(t *testing.T) {
	opts := baseOpts()
	opts.AcceleratorType = "nvidia-l4"
	opts.AcceleratorCount = 1
	opts.Spot = true
	opts.TerminationAction = "DELETE"

	instance := buildInstanceResource(opts)

	sched := instance.GetScheduling()
	if sched.GetProvisioningModel() != "SPOT" {
		t.Errorf("provisioning model = %q", sched.GetProvisioningModel())
	}
	if sched.GetInstanceTerminationAction() != "DELETE" {
		t.Errorf("termination action = %q", sched.GetInstanceTerminationAction())
	}
	if sched.GetOnHostMaintenance() != "TERMINATE" {
		t.Error("GPU spot instance should keep TERMINATE maintenance")
	}
}

func TestBuildInstanceResourceExtras(t *testing.T) {
	opts := baseOpts()
	opts.Hostname = "vm.internal.example"
	opts.DeleteProtection = true
	opts.Labels = map[string]string{"managed-by": "gcevm"}
	opts.Metadata = map[string]string{"ssh-keys": "ubuntu:ssh-rsa AAAA ubuntu"}

	instance := buildInstanceResource(opts)

	if instance.GetHostname() != "vm.internal.example" {
		t.Errorf("hostname = %q", instance.GetHostname())
	}
	if !instance.GetDeletionProtection() {
		t.Error("deletion protection not set")
	}
	if instance.GetLabels()["managed-by"] != "gcevm" {
		t.Error("labels not set")
	}
	items := instance.GetMetadata().GetItems()
	if len(items) != 1 || items[0].GetKey() != "ssh-keys" {
		t.Errorf("metadata items = %v", items)
	}
}

func TestInstanceIP(t *testing.T) {
	withNAT := &computepb.Instance{
		Name: proto.String("vm"),
		NetworkInterfaces: []*computepb.NetworkInterface{
			{
				NetworkIP: proto.String("10.0.0.2"),
				AccessConfigs: []*computepb.AccessConfig{
					{NatIP: proto.String("203.0.113.10")},
				},
			},
		},
	}
	ip, err := InstanceIP(withNAT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ip != "203.0.113.10" {
		t.Errorf("ip = %q, want external NAT IP", ip)
	}

	internal := &computepb.Instance{
		Name: proto.String("vm"),
		NetworkInterfaces: []*computepb.NetworkInterface{
			{NetworkIP: proto.String("10.0.0.2")},
		},
	}
	ip, err = InstanceIP(internal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ip != "10.0.0.2" {
		t.Errorf("ip = %q, want internal IP", ip)
	}

	empty := &computepb.Instance{Name: proto.String("vm")}
	if _, err := InstanceIP(empty); err == nil {
		t.Error("expected error for instance without interfaces")
	}
}
