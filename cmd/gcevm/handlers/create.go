// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/platform/gce"
	"github.com/rahilkadakia/gcevm/internal/provisioning"
	"github.com/rahilkadakia/gcevm/internal/provisioning/bootstrap"
	"github.com/rahilkadakia/gcevm/internal/provisioning/instance"
	"github.com/rahilkadakia/gcevm/internal/util/keygen"
	"github.com/rahilkadakia/gcevm/internal/util/naming"
	"github.com/rahilkadakia/gcevm/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newComputeClient creates a new Compute Engine client.
	newComputeClient = func(ctx context.Context, project string) (gce.ComputeManager, error) {
		return gce.NewRealClient(ctx, project)
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// checkCredentials verifies Google Cloud credentials are available.
	checkCredentials = prerequisites.CheckCredentials

	// generateKeyPair generates a fresh RSA key pair.
	generateKeyPair = keygen.GenerateRSAKeyPair

	// loadKeyPair loads an existing key pair from disk.
	loadKeyPair = keygen.LoadKeyPair
)

// Create provisions a single GPU instance in one zone.
//
// The workflow:
//  1. Loads and validates the configuration
//  2. Resolves the target zone (flag, else first configured zone)
//  3. Loads or generates the SSH key pair
//  4. Creates the instance with the accelerator attached
//  5. Installs the NVIDIA driver stack over SSH and verifies the GPU
//
// The instance is left running; 'gcevm delete' removes it.
func Create(ctx context.Context, configPath, zone string, skipBootstrap bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(cfg); err != nil {
		return err
	}

	zone, err = resolveZone(cfg, zone)
	if err != nil {
		return err
	}

	keys, err := loadOrGenerateKeys(cfg)
	if err != nil {
		return err
	}

	client, err := newComputeClient(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("failed to create compute client: %w", err)
	}
	defer func() { _ = client.Close() }()

	pctx := newProvisioningContext(ctx, cfg, client, keys)

	phases := []provisioning.Phase{instance.NewProvisioner(zone)}
	if !skipBootstrap {
		phases = append(phases, bootstrap.NewPhase())
	}

	if err := provisioning.RunPhases(pctx, phases); err != nil {
		return err
	}

	printCreateSuccess(pctx, cfg, skipBootstrap)
	return nil
}

// loadConfig loads and validates the configuration.
// If configPath is empty, gcevm.yaml in the current directory is used.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'gcevm init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Using config: %s", configPath)
	return cfg, nil
}

// resolveZone picks the target zone: the flag when given, otherwise the
// first configured zone.
func resolveZone(cfg *config.Config, zone string) (string, error) {
	if zone != "" {
		return zone, nil
	}
	if len(cfg.Zones) == 0 {
		return "", fmt.Errorf("no zones configured and no --zone given")
	}
	return cfg.Zones[0], nil
}

// loadOrGenerateKeys reuses the configured key files when the private key
// exists, and generates and writes a fresh pair otherwise.
func loadOrGenerateKeys(cfg *config.Config) (*keygen.KeyPair, error) {
	if _, err := os.Stat(cfg.SSH.PrivateKeyPath); err == nil {
		keys, err := loadKeyPair(cfg.SSH.PrivateKeyPath, cfg.SSH.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load SSH keys: %w", err)
		}
		log.Printf("Using existing SSH key: %s", cfg.SSH.PrivateKeyPath)
		return keys, nil
	}

	log.Printf("Generating SSH key pair: %s", cfg.SSH.PrivateKeyPath)
	keys, err := generateKeyPair(4096)
	if err != nil {
		return nil, fmt.Errorf("failed to generate SSH keys: %w", err)
	}
	if err := keys.WriteFiles(cfg.SSH.PrivateKeyPath, cfg.SSH.PublicKeyPath); err != nil {
		return nil, fmt.Errorf("failed to write SSH keys: %w", err)
	}
	return keys, nil
}

// checkPrerequisites verifies required client tools and credentials.
// Enabled by default, can be disabled via prerequisites_check_enabled: false.
func checkPrerequisites(cfg *config.Config) error {
	if !cfg.PrerequisitesEnabled() {
		return nil
	}

	log.Println("Checking prerequisites...")
	results := checkDefaultPrereqs()

	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}

	if err := checkCredentials(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}

	return nil
}

// printCreateSuccess outputs the created instance details and next steps.
func printCreateSuccess(pctx *provisioning.Context, cfg *config.Config, skipBootstrap bool) {
	fmt.Printf("\nInstance ready!\n")
	fmt.Printf("Name: %s\n", pctx.State.InstanceName)
	fmt.Printf("Zone: %s\n", pctx.State.Zone)
	fmt.Printf("IP:   %s\n", pctx.State.IP)
	fmt.Printf("\nConnect with:\n")
	fmt.Printf("  ssh -i %s %s@%s\n", cfg.SSH.PrivateKeyPath, cfg.SSH.User, pctx.State.IP)

	if skipBootstrap {
		fmt.Printf("\nDrivers were not installed. Run 'gcevm bootstrap -z %s' to install them.\n", pctx.State.Zone)
	} else if pctx.State.DriverInfo != "" {
		fmt.Printf("\nGPU verified:\n%s\n", firstLine(pctx.State.DriverInfo))
	}

	fmt.Printf("\nDelete with:\n")
	fmt.Printf("  gcevm delete -z %s -n %s\n", pctx.State.Zone, pctx.State.InstanceName)
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return s
}

// defaultInstanceName derives the instance name from config when no
// explicit name is given.
func defaultInstanceName(cfg *config.Config, zone, name string) string {
	if name != "" {
		return name
	}
	return naming.Instance(cfg.Instance.NamePrefix, zone)
}
