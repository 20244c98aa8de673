package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/platform/gce"
	"github.com/rahilkadakia/gcevm/internal/provisioning"
	"github.com/rahilkadakia/gcevm/internal/provisioning/bootstrap"
	"github.com/rahilkadakia/gcevm/internal/provisioning/instance"
	"github.com/rahilkadakia/gcevm/internal/report"
	"github.com/rahilkadakia/gcevm/internal/util/keygen"
)

// Runner sweeps the configured zones one by one.
type Runner struct {
	cfg      *config.Config
	compute  gce.ComputeManager
	keys     *keygen.KeyPair
	observer provisioning.Observer
	metrics  *Metrics

	// Replaceable in tests.
	sleep             func(time.Duration)
	newInstancePhase  func(zone string) provisioning.Phase
	newBootstrapPhase func() provisioning.Phase
}

// NewRunner creates a sweep runner.
func NewRunner(cfg *config.Config, compute gce.ComputeManager, keys *keygen.KeyPair, observer provisioning.Observer) *Runner {
	return &Runner{
		cfg:               cfg,
		compute:           compute,
		keys:              keys,
		observer:          observer,
		metrics:           NewMetrics(),
		sleep:             time.Sleep,
		newInstancePhase:  func(zone string) provisioning.Phase { return instance.NewProvisioner(zone) },
		newBootstrapPhase: func() provisioning.Phase { return bootstrap.NewPhase() },
	}
}

// Metrics exposes the runner's Prometheus metrics.
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run sweeps all configured zones and returns the report. The sweep
// continues past failed zones; only context cancellation stops it early.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	rep := report.New(r.cfg.Project)

	for i, zone := range r.cfg.Zones {
		if err := ctx.Err(); err != nil {
			rep.Finalize()
			return rep, fmt.Errorf("sweep interrupted: %w", err)
		}

		r.observer.Event(provisioning.Event{
			Type:    provisioning.EventZoneStarted,
			Phase:   "sweep",
			Message: fmt.Sprintf("attempting zone %s (%d/%d)", zone, i+1, len(r.cfg.Zones)),
			Fields:  map[string]string{"zone": zone},
		})

		result := r.attemptZone(ctx, zone)
		rep.Add(result)
		r.metrics.Observe(result)

		r.observer.Event(provisioning.Event{
			Type:     provisioning.EventZoneCompleted,
			Phase:    "sweep",
			Resource: result.Instance,
			Message:  fmt.Sprintf("zone %s finished: %s", zone, result.Outcome),
			Fields:   map[string]string{"zone": zone, "outcome": string(result.Outcome)},
		})

		if i < len(r.cfg.Zones)-1 && r.cfg.Sweep.Pause > 0 {
			r.observer.Printf("[sweep] pausing %v before next zone", r.cfg.Sweep.Pause)
			r.sleep(r.cfg.Sweep.Pause)
		}
	}

	rep.Finalize()
	return rep, nil
}

// attemptZone runs the full create/bootstrap/delete cycle in one zone.
func (r *Runner) attemptZone(ctx context.Context, zone string) report.ZoneResult {
	start := time.Now()
	pctx := provisioning.NewContext(ctx, r.cfg, r.compute, r.keys)
	pctx.Observer = r.observer.WithFields(map[string]string{"zone": zone})

	result := report.ZoneResult{Zone: zone}

	err := r.newInstancePhase(zone).Provision(pctx)
	result.Instance = pctx.State.InstanceName
	result.Image = pctx.State.ImageName
	result.IP = pctx.State.IP

	if err != nil {
		result.Outcome = classifyCreateError(err)
		result.Error = err.Error()
		result.Duration = time.Since(start)
		// A conflict or partial creation may have left an instance behind.
		r.cleanup(ctx, pctx, zone)
		return result
	}

	if err := r.newBootstrapPhase().Provision(pctx); err != nil {
		result.Outcome = report.OutcomeBootstrapFailed
		result.Error = err.Error()
	} else {
		result.Outcome = report.OutcomeCreated
		result.DriverInfo = pctx.State.DriverInfo
		result.CUDAInfo = pctx.State.CUDAInfo
	}

	r.cleanup(ctx, pctx, zone)
	result.Duration = time.Since(start)
	return result
}

// cleanup deletes the attempt's instance unless keep is configured.
func (r *Runner) cleanup(ctx context.Context, pctx *provisioning.Context, zone string) {
	name := pctx.State.InstanceName
	if name == "" || r.cfg.Sweep.Keep {
		return
	}

	pctx.Observer.Printf("[sweep] deleting instance %s in %s", name, zone)
	if err := r.compute.DeleteInstance(ctx, zone, name); err != nil {
		// The sweep result stands, cleanup failure is only logged.
		pctx.Observer.Printf("[sweep] cleanup of %s in %s failed: %v", name, zone, err)
		return
	}
	provisioning.LogResourceDeleted(pctx.Observer, "sweep", "instance", name)
}

// classifyCreateError maps a creation failure to a sweep outcome.
func classifyCreateError(err error) report.Outcome {
	switch {
	case gce.IsQuotaDenied(err):
		return report.OutcomeQuotaDenied
	case gce.IsBadRequest(err):
		return report.OutcomeGPUUnavailable
	case gce.IsZoneExhausted(err):
		return report.OutcomeZoneExhausted
	case gce.IsConflict(err):
		return report.OutcomeConflict
	default:
		return report.OutcomeError
	}
}
