// Package naming defines the naming conventions for sweep resources.
package naming
