package moverconfig

import (
	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
)

const (
	subsection = "mover"

	// WorkersDefault is a default number of containers copied at once.
	WorkersDefault = 4
)

// Workers returns the value of "workers" config parameter
// from "mover" section.
//
// Returns WorkersDefault if the value is not a positive number.
func Workers(c *config.Config) int {
	v := config.IntSafe(c.Sub(subsection), "workers")
	if v > 0 {
		return v
	}

	return WorkersDefault
}

// Compress returns the value of "compress" config parameter
// from "mover" section.
//
// Returns true if the value is not set.
func Compress(c *config.Config) bool {
	c = c.Sub(subsection)
	if !c.IsSet("compress") {
		return true
	}

	return config.BoolSafe(c, "compress")
}
