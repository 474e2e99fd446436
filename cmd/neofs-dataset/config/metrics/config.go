package metricsconfig

import (
	"time"

	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
)

const (
	subsection = "metrics"

	// AddressDefault is a default address of the metrics endpoint.
	AddressDefault = "localhost:9090"
	// ShutdownTimeoutDefault is a default metrics server shutdown timeout.
	ShutdownTimeoutDefault = 30 * time.Second
)

// Enabled returns the value of "enabled" config parameter
// from "metrics" section.
func Enabled(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "enabled")
}

// Address returns the value of "address" config parameter
// from "metrics" section.
//
// Returns AddressDefault if the value is not a non-empty string.
func Address(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "address")
	if v != "" {
		return v
	}

	return AddressDefault
}

// ShutdownTimeout returns the value of "shutdown_timeout" config parameter
// from "metrics" section.
//
// Returns ShutdownTimeoutDefault if the value is not a positive duration.
func ShutdownTimeout(c *config.Config) time.Duration {
	v := config.DurationSafe(c.Sub(subsection), "shutdown_timeout")
	if v > 0 {
		return v
	}

	return ShutdownTimeoutDefault
}
