// Package instance provisions a single GPU instance in a zone: it resolves
// the newest image from the configured family, assembles the creation
// options from configuration, and records the resulting address in the
// provisioning state.
package instance
