package loggerconfig

import (
	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	"github.com/nspcc-dev/neofs-dataset/pkg/util/logger"
)

const (
	subsection = "logger"

	// LevelDefault is a default logger level.
	LevelDefault = "info"
	// EncodingDefault is a default logger encoding.
	EncodingDefault = logger.DefaultEncoding
)

// Level returns the value of "level" config parameter
// from "logger" section.
//
// Returns LevelDefault if the value is not a non-empty string.
func Level(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "level")
	if v != "" {
		return v
	}

	return LevelDefault
}

// Encoding returns the value of "encoding" config parameter
// from "logger" section.
//
// Returns EncodingDefault if the value is not a non-empty string.
func Encoding(c *config.Config) string {
	v := config.StringSafe(c.Sub(subsection), "encoding")
	if v != "" {
		return v
	}

	return EncodingDefault
}

// Timestamp returns the value of "timestamp" config parameter
// from "logger" section.
//
// Returns nil if the value is not set.
func Timestamp(c *config.Config) *bool {
	c = c.Sub(subsection)
	if !c.IsSet("timestamp") {
		return nil
	}

	v := config.BoolSafe(c, "timestamp")

	return &v
}

// Prm returns logger parameters from "logger" section.
func Prm(c *config.Config) logger.Prm {
	return logger.Prm{
		Level:     Level(c),
		Encoding:  Encoding(c),
		Timestamp: Timestamp(c),
	}
}
