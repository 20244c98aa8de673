// Package labels provides consistent labeling utilities for Compute Engine
// resources.
//
// Compute Engine labels are stricter than most clouds: keys and values must
// be lowercase, at most 63 characters, and limited to letters, digits,
// underscores, and hyphens. The builder sanitizes values accordingly.
package labels
