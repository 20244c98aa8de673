// Package gce provides a wrapper around the Google Compute Engine API.
//
// The wrapper exposes narrow capability interfaces (instances, images,
// metadata) combined into ComputeManager, with a RealClient backed by the
// cloud.google.com/go/compute REST clients and a MockClient for tests.
// Zonal operations are awaited with a bounded timeout and their warnings
// surfaced, matching how the API's long-running operations are meant to be
// consumed.
package gce
