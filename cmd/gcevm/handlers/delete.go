package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/rahilkadakia/gcevm/internal/platform/gce"
)

// Delete removes an instance. The name defaults to the one a create in
// the same zone would have used. Instances with deletion protection are
// refused; they must be unprotected in the console first.
func Delete(ctx context.Context, configPath, zone, name string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	zone, err = resolveZone(cfg, zone)
	if err != nil {
		return err
	}
	name = defaultInstanceName(cfg, zone, name)

	client, err := newComputeClient(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("failed to create compute client: %w", err)
	}
	defer func() { _ = client.Close() }()

	instance, err := client.GetInstance(ctx, zone, name)
	if err != nil {
		if gce.IsNotFound(err) {
			log.Printf("Instance %s not found in %s, nothing to delete", name, zone)
			return nil
		}
		return fmt.Errorf("failed to look up instance: %w", err)
	}

	if instance.GetDeletionProtection() {
		return fmt.Errorf("instance %s has deletion protection enabled, refusing to delete", name)
	}

	log.Printf("Deleting instance %s in %s...", name, zone)
	if err := client.DeleteInstance(ctx, zone, name); err != nil {
		return fmt.Errorf("failed to delete instance: %w", err)
	}

	fmt.Printf("Deleted %s\n", name)
	return nil
}
