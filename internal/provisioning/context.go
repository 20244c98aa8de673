package provisioning

import (
	"context"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/platform/gce"
	"github.com/rahilkadakia/gcevm/internal/util/keygen"
)

// State holds the shared results of provisioning phases for a single zone.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Instance results (populated by the instance provisioner)
	ImageName     string // resolved image name, e.g. ubuntu-2204-jammy-v20240801
	ImageSelfLink string // full image URL used as the boot disk source
	InstanceName  string // zone-qualified instance name
	Zone          string
	IP            string // address used for SSH, external NAT when available

	// Bootstrap results (populated by the driver installer)
	DriverInfo string // nvidia-smi output after installation
	CUDAInfo   string // nvcc --version output, empty when the toolkit is skipped
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Compute  gce.ComputeManager
	Keys     *keygen.KeyPair
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	compute gce.ComputeManager,
	keys *keygen.KeyPair,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Compute:  compute,
		Keys:     keys,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}
