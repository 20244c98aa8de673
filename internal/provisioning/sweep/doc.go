// Package sweep tries to provision a GPU instance in every configured zone,
// one zone at a time. Each attempt creates the instance, installs and
// verifies the NVIDIA driver, and deletes the instance again, recording the
// outcome per zone. Zones that refuse the request (quota, capacity, GPU
// availability) are classified and the sweep moves on to the next zone.
package sweep
