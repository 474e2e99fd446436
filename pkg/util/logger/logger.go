// Package logger builds zap loggers of the command line tools.
package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Prm groups logger parameters.
type Prm struct {
	// Level is the minimal severity of written entries: debug, info, warn,
	// error, dpanic, panic or fatal.
	Level string
	// Encoding is either "console" or "json".
	Encoding string
	// Timestamp enables entry timestamps. If unset, timestamps are
	// written only when stderr is a terminal.
	Timestamp *bool
}

// DefaultEncoding is the encoding used if Prm.Encoding is empty.
const DefaultEncoding = "console"

// NewLogger builds zap.Logger writing to stderr.
func NewLogger(prm Prm) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	if prm.Level != "" {
		var err error

		lvl, err = zap.ParseAtomicLevel(prm.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	enc := prm.Encoding
	if enc == "" {
		enc = DefaultEncoding
	}

	if enc != "console" && enc != "json" {
		return nil, fmt.Errorf("invalid log encoding %q", enc)
	}

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = enc
	c.Sampling = nil
	c.OutputPaths = []string{"stderr"}

	withTime := term.IsTerminal(int(os.Stderr.Fd()))
	if prm.Timestamp != nil {
		withTime = *prm.Timestamp
	}

	if withTime {
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		c.EncoderConfig.EncodeTime = func(time.Time, zapcore.PrimitiveArrayEncoder) {}
	}

	l, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return l, nil
}
