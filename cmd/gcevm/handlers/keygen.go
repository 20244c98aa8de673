package handlers

import (
	"context"
	"fmt"
	"os"
)

// Keygen generates the SSH key pair at the configured paths. An existing
// private key is only replaced with --force.
func Keygen(ctx context.Context, configPath string, force bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.SSH.PrivateKeyPath); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to replace it", cfg.SSH.PrivateKeyPath)
	}

	keys, err := generateKeyPair(4096)
	if err != nil {
		return fmt.Errorf("failed to generate SSH keys: %w", err)
	}
	if err := keys.WriteFiles(cfg.SSH.PrivateKeyPath, cfg.SSH.PublicKeyPath); err != nil {
		return fmt.Errorf("failed to write SSH keys: %w", err)
	}

	fmt.Printf("Wrote %s and %s\n", cfg.SSH.PrivateKeyPath, cfg.SSH.PublicKeyPath)
	return nil
}
