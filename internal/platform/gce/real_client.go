package gce

import (
	"context"
	"errors"
	"fmt"
	"log"

	compute "cloud.google.com/go/compute/apiv1"
	"google.golang.org/api/option"

	"github.com/rahilkadakia/gcevm/internal/config"
)

// RealClient implements ComputeManager using the Compute Engine API.
type RealClient struct {
	project   string
	images    *compute.ImagesClient
	instances *compute.InstancesClient
	timeouts  *config.Timeouts
	apiOpts   []option.ClientOption
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithAPIOptions passes extra options to the underlying API clients,
// e.g. option.WithCredentialsFile or option.WithEndpoint for testing.
func WithAPIOptions(opts ...option.ClientOption) ClientOption {
	return func(c *RealClient) {
		c.apiOpts = append(c.apiOpts, opts...)
	}
}

// NewRealClient creates a new RealClient for the given project.
// Credentials are resolved the standard way (application default
// credentials unless overridden via WithAPIOptions).
func NewRealClient(ctx context.Context, project string, opts ...ClientOption) (*RealClient, error) {
	if project == "" {
		return nil, fmt.Errorf("project cannot be empty")
	}

	c := &RealClient{
		project:  project,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}

	images, err := compute.NewImagesRESTClient(ctx, c.apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create images client: %w", err)
	}

	instances, err := compute.NewInstancesRESTClient(ctx, c.apiOpts...)
	if err != nil {
		_ = images.Close()
		return nil, fmt.Errorf("failed to create instances client: %w", err)
	}

	c.images = images
	c.instances = instances
	return c, nil
}

// Project returns the project ID this client operates on.
func (c *RealClient) Project() string {
	return c.project
}

// Close releases the underlying API client connections.
func (c *RealClient) Close() error {
	return errors.Join(c.images.Close(), c.instances.Close())
}

// waitOperation waits for a zonal operation to complete, bounded by the
// configured operation timeout. Operation warnings are logged; an operation
// error fails the wait.
func (c *RealClient) waitOperation(ctx context.Context, op *compute.Operation, verboseName string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.OperationWait)
	defer cancel()

	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("%s failed: %w", verboseName, err)
	}

	if p := op.Proto(); p != nil {
		for _, w := range p.GetWarnings() {
			log.Printf("Warning during %s: %s: %s", verboseName, w.GetCode(), w.GetMessage())
		}
	}

	return nil
}
