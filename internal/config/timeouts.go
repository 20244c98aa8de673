package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	InstanceCreate    time.Duration // Timeout for instance creation operations
	OperationWait     time.Duration // Timeout for waiting on a single zonal operation
	Delete            time.Duration // Timeout for delete operations
	SSHReady          time.Duration // Timeout for waiting for SSH after boot/reboot
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - GCEVM_TIMEOUT_INSTANCE_CREATE (default: 10m)
//   - GCEVM_TIMEOUT_OPERATION_WAIT (default: 5m)
//   - GCEVM_TIMEOUT_DELETE (default: 5m)
//   - GCEVM_TIMEOUT_SSH_READY (default: 10m)
//   - GCEVM_RETRY_MAX_ATTEMPTS (default: 5)
//   - GCEVM_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		InstanceCreate:    parseDuration("GCEVM_TIMEOUT_INSTANCE_CREATE", 10*time.Minute),
		OperationWait:     parseDuration("GCEVM_TIMEOUT_OPERATION_WAIT", 5*time.Minute),
		Delete:            parseDuration("GCEVM_TIMEOUT_DELETE", 5*time.Minute),
		SSHReady:          parseDuration("GCEVM_TIMEOUT_SSH_READY", 10*time.Minute),
		RetryMaxAttempts:  parseInt("GCEVM_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("GCEVM_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
