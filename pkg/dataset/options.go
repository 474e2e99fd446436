package dataset

import (
	"time"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"go.uber.org/zap"
)

// Option is an option of Generate and Verify.
type Option func(*cfg)

// MetricRegister collects engine metrics.
type MetricRegister interface {
	IncObjects(op string)
	AddValues(op, kind string, n int)
	IncMismatches()
	AddRunDuration(op string, d time.Duration)
}

type cfg struct {
	log      *zap.Logger
	class    kv.ObjectClass
	metrics  MetricRegister
	progress func(done, total int)
}

func defaultCfg() *cfg {
	return &cfg{
		log:      zap.NewNop(),
		class:    kv.DefaultClass,
		metrics:  noopMetrics{},
		progress: func(int, int) {},
	}
}

func newCfg(opts []Option) *cfg {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	return c
}

// WithLogger returns option to set logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		if l != nil {
			c.log = l.With(zap.String("component", "dataset"))
		}
	}
}

// WithObjectClass returns option to set class of created objects.
// Ignored by Verify.
func WithObjectClass(class kv.ObjectClass) Option {
	return func(c *cfg) {
		c.class = class
	}
}

// WithMetrics returns option to set metrics register.
func WithMetrics(m MetricRegister) Option {
	return func(c *cfg) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithProgress returns option to set callback called after each processed
// object with the number of processed and total objects.
func WithProgress(f func(done, total int)) Option {
	return func(c *cfg) {
		if f != nil {
			c.progress = f
		}
	}
}

type noopMetrics struct{}

func (noopMetrics) IncObjects(string)                    {}
func (noopMetrics) AddValues(string, string, int)        {}
func (noopMetrics) IncMismatches()                       {}
func (noopMetrics) AddRunDuration(string, time.Duration) {}
