// Package config defines the configuration structure, defaults, and
// validation for the gcevm CLI, plus the interactive init wizard.
package config
