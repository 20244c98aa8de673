package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/platform/gce"
	"github.com/rahilkadakia/gcevm/internal/provisioning"
	"github.com/rahilkadakia/gcevm/internal/provisioning/sweep"
	"github.com/rahilkadakia/gcevm/internal/report"
	"github.com/rahilkadakia/gcevm/internal/ui/tui"
	"github.com/rahilkadakia/gcevm/internal/util/keygen"
	"github.com/rahilkadakia/gcevm/internal/util/naming"
)

// newReportUploader is replaceable in tests.
var newReportUploader = report.NewUploader

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// SweepOptions holds the sweep command's flags.
type SweepOptions struct {
	ConfigPath string
	Keep       bool
	ReportPath string
	NoTUI      bool
}

// Sweep attempts to provision, verify, and clean up a GPU instance in
// every configured zone, then writes a JSON availability report.
func Sweep(ctx context.Context, opts SweepOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Keep {
		cfg.Sweep.Keep = true
	}

	if err := checkPrerequisites(cfg); err != nil {
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

	var rep *report.Report
	if !opts.NoTUI && isTerminal() {
		rep, err = runSweepTUI(ctx, cfg, client, keys)
	} else {
		runner := sweep.NewRunner(cfg, client, keys, provisioning.NewConsoleObserver())
		stopMetrics := serveMetrics(cfg, runner)
		rep, err = runner.Run(ctx)
		stopMetrics()
	}
	if err != nil {
		return err
	}
	if rep == nil {
		return fmt.Errorf("sweep interrupted before any zone completed")
	}

	if err := writeReport(cfg, opts.ReportPath, rep); err != nil {
		return err
	}
	uploadReport(ctx, cfg, rep)
	printSweepSummary(rep)
	return nil
}

// runSweepTUI drives the sweep behind an interactive terminal UI.
// The sweep runs in a goroutine and feeds the UI through an observer;
// quitting the UI cancels the sweep.
func runSweepTUI(ctx context.Context, cfg *config.Config, client gce.ComputeManager, keys *keygen.KeyPair) (*report.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewSweepModel(cfg.Project, cfg.Zones))
	runner := sweep.NewRunner(cfg, client, keys, tui.NewProgramObserver(program))

	stopMetrics := serveMetrics(cfg, runner)
	defer stopMetrics()

	type sweepResult struct {
		rep *report.Report
		err error
	}
	results := make(chan sweepResult, 1)
	go func() {
		rep, err := runner.Run(ctx)
		results <- sweepResult{rep: rep, err: err}
		program.Send(tui.DoneMsg{Report: rep})
	}()

	// Quitting the UI early cancels the sweep; either way the runner's
	// result is collected before returning.
	if _, err := program.Run(); err != nil {
		cancel()
		res := <-results
		return res.rep, fmt.Errorf("terminal UI failed: %w", err)
	}
	cancel()
	res := <-results
	return res.rep, res.err
}

// serveMetrics starts a Prometheus endpoint for the duration of the
// sweep when metrics_addr is configured. The returned function shuts
// the server down.
func serveMetrics(cfg *config.Config, runner *sweep.Runner) func() {
	if cfg.MetricsAddr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", runner.Metrics().Handler())
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server failed: %v", err)
		}
	}()
	log.Printf("Serving metrics on %s/metrics", cfg.MetricsAddr)

	return func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = srv.Shutdown(sctx)
	}
}

// writeReport writes the JSON report to the flag path, the configured
// path, or a name derived from the instance prefix, in that order.
func writeReport(cfg *config.Config, override string, rep *report.Report) error {
	path := override
	if path == "" {
		path = cfg.Report.Path
	}
	if path == "" {
		path = naming.ReportFile(cfg.Instance.NamePrefix)
	}
	if err := rep.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("\nReport written to %s\n", path)
	return nil
}

// uploadReport pushes the report to the configured S3 bucket. Upload
// problems are logged, not fatal: the local report already exists.
func uploadReport(ctx context.Context, cfg *config.Config, rep *report.Report) {
	if cfg.Report.S3 == nil {
		return
	}

	uploader, err := newReportUploader(cfg.Report.S3)
	if err != nil {
		log.Printf("Skipping report upload: %v", err)
		return
	}
	if err := uploader.EnsureBucket(ctx); err != nil {
		log.Printf("Skipping report upload: %v", err)
		return
	}

	key := naming.ReportObject(cfg.Instance.NamePrefix, rep.StartedAt)
	if err := uploader.Upload(ctx, key, rep); err != nil {
		log.Printf("Report upload failed: %v", err)
		return
	}
	log.Printf("Report uploaded to s3://%s/%s", cfg.Report.S3.Bucket, key)
}

// printSweepSummary writes the per-zone outcomes and totals to stdout.
func printSweepSummary(rep *report.Report) {
	fmt.Printf("\nSweep finished: %d zones attempted, %d with GPU capacity, %d without\n",
		rep.Summary.Attempted, rep.Summary.Created, rep.Summary.Failed)
	for _, z := range rep.Zones {
		line := fmt.Sprintf("  %-20s %s", z.Zone, z.Outcome)
		if z.Error != "" {
			line += ": " + firstLine(z.Error)
		}
		fmt.Println(line)
	}
}
