package handlers

import (
	"context"
	"fmt"

	"github.com/rahilkadakia/gcevm/internal/provisioning"
	"github.com/rahilkadakia/gcevm/internal/provisioning/bootstrap"
	"github.com/rahilkadakia/gcevm/internal/util/ptr"
)

// Bootstrap installs the NVIDIA driver stack on an already running
// instance. Useful after 'create --skip-bootstrap' or when a previous
// install failed partway.
func Bootstrap(ctx context.Context, configPath, zone, name string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	zone, err = resolveZone(cfg, zone)
	if err != nil {
		return err
	}
	name = defaultInstanceName(cfg, zone, name)

	// The command is an explicit request, so it runs even when the
	// post-create install is disabled in the config.
	cfg.Bootstrap.Enabled = ptr.Bool(true)

	keys, err := loadOrGenerateKeys(cfg)
	if err != nil {
		return err
	}

	client, err := newComputeClient(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("failed to create compute client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ip, err := client.GetInstanceIP(ctx, zone, name)
	if err != nil {
		return fmt.Errorf("failed to resolve instance address: %w", err)
	}

	// Instances created outside this tool may not carry the key yet.
	entry := map[string]string{"ssh-keys": keys.MetadataEntry(cfg.SSH.User)}
	if err := client.SetInstanceMetadata(ctx, zone, name, entry); err != nil {
		return fmt.Errorf("failed to publish SSH key: %w", err)
	}

	pctx := newProvisioningContext(ctx, cfg, client, keys)
	pctx.State.InstanceName = name
	pctx.State.Zone = zone
	pctx.State.IP = ip

	if err := provisioning.RunPhases(pctx, []provisioning.Phase{bootstrap.NewPhase()}); err != nil {
		return err
	}

	fmt.Printf("\nDrivers installed on %s (%s)\n", name, ip)
	if pctx.State.DriverInfo != "" {
		fmt.Printf("%s\n", firstLine(pctx.State.DriverInfo))
	}
	if pctx.State.CUDAInfo != "" {
		fmt.Printf("%s\n", firstLine(pctx.State.CUDAInfo))
	}
	return nil
}
