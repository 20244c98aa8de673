// Package report builds the JSON record of a zone sweep: one entry per
// attempted zone with its outcome, timing, and GPU verification output.
// Reports are written to a local file and can optionally be uploaded to
// an S3-compatible object store.
package report
