package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/ui/tui"
	"github.com/rahilkadakia/gcevm/internal/util/prerequisites"
)

// checkAllPrereqs is replaceable in tests.
var checkAllPrereqs = prerequisites.CheckAll

// DoctorCheck is one diagnostic result.
type DoctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// DoctorReport is the full diagnostic output.
type DoctorReport struct {
	Healthy bool          `json:"healthy"`
	Checks  []DoctorCheck `json:"checks"`
}

// Doctor diagnoses the local setup: config, client tools, credentials,
// SSH keys, and whether the configured boot image resolves.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	rep := runDoctor(ctx, configPath)

	if jsonOutput {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal diagnostics: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printDoctorReport(rep)
	}

	if !rep.Healthy {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func runDoctor(ctx context.Context, configPath string) *DoctorReport {
	rep := &DoctorReport{Healthy: true}
	add := func(name string, ok bool, detail string) {
		if !ok {
			rep.Healthy = false
		}
		rep.Checks = append(rep.Checks, DoctorCheck{Name: name, OK: ok, Detail: detail})
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		add("config", false, err.Error())
		return rep
	}
	add("config", true, fmt.Sprintf("project %s, %d zone(s)", cfg.Project, len(cfg.Zones)))

	for _, r := range checkAllPrereqs().Results {
		detail := r.Version
		if !r.Found {
			detail = r.Tool.Description + " (" + r.Tool.InstallURL + ")"
		}
		// missing optional tools are reported but do not fail the check
		add("tool "+r.Tool.Name, r.Found || !r.Tool.Required, detail)
	}

	if path := prerequisites.CredentialsPath(); path != "" {
		add("credentials", true, path)
	} else {
		add("credentials", false, "run 'gcloud auth application-default login' or set GOOGLE_APPLICATION_CREDENTIALS")
	}

	if _, err := os.Stat(cfg.SSH.PrivateKeyPath); err == nil {
		add("ssh key", true, cfg.SSH.PrivateKeyPath)
	} else {
		add("ssh key", true, "not found, will be generated on first use")
	}

	add(checkImage(ctx, cfg))
	return rep
}

// checkImage probes the configured image family against the live API.
// It exercises config correctness and credentials in one call.
func checkImage(ctx context.Context, cfg *config.Config) (string, bool, string) {
	client, err := newComputeClient(ctx, cfg.Project)
	if err != nil {
		return "image", false, err.Error()
	}
	defer func() { _ = client.Close() }()

	image, err := client.GetImageFromFamily(ctx, cfg.Instance.Image.Project, cfg.Instance.Image.Family)
	if err != nil {
		return "image", false, err.Error()
	}
	return "image", true, image.GetName()
}

func printDoctorReport(rep *DoctorReport) {
	if isTerminal() {
		rows := make([]tui.DoctorRow, 0, len(rep.Checks))
		for _, c := range rep.Checks {
			rows = append(rows, tui.DoctorRow{Name: c.Name, OK: c.OK, Detail: c.Detail})
		}
		fmt.Print(tui.RenderDoctor(rows))
		return
	}

	for _, c := range rep.Checks {
		mark := "[OK]"
		if !c.OK {
			mark = "[!!]"
		}
		line := fmt.Sprintf("%s %s", mark, c.Name)
		if c.Detail != "" {
			line += ": " + c.Detail
		}
		fmt.Println(line)
	}
	if rep.Healthy {
		fmt.Println("\nAll checks passed.")
	}
}
