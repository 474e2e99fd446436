package common

import (
	"fmt"

	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	loggerconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/logger"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/metrics"
	"github.com/nspcc-dev/neofs-dataset/pkg/util/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Errf returns formatted error in errFmt format if err is not nil.
func Errf(errFmt string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf(errFmt, err)
}

// Env holds resources shared by the command: configuration, logger and
// optional metrics. Env MUST be closed after use.
type Env struct {
	Config *config.Config
	Log    *zap.Logger

	// Metrics is nil if metrics are disabled.
	Metrics *metrics.DatasetMetrics

	metricsSrv *metricsServer
}

var rootBindings = []struct {
	section, name, flag string
}{
	{"logger", "level", LogLevelFlag},
	{"storage", "type", StorageTypeFlag},
	{"storage", "path", StoragePathFlag},
	{"storage", "read_only", ReadOnlyFlag},
}

// ReadConfig reads configuration from the file passed in the config flag
// and the environment. Root flags override corresponding values.
func ReadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(ConfigFlag)

	c, err := config.New(path)
	if err != nil {
		return nil, err
	}

	for _, b := range rootBindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil {
			continue
		}

		err = c.Sub(b.section).BindFlag(b.name, f)
		if err != nil {
			return nil, fmt.Errorf("bind %s flag: %w", b.flag, err)
		}
	}

	return c, nil
}

// NewEnv reads configuration, creates logger and starts metrics server if
// it is enabled.
func NewEnv(cmd *cobra.Command) (*Env, error) {
	c, err := ReadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(loggerconfig.Prm(c))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	e := &Env{
		Config: c,
		Log:    log,
	}

	err = e.initMetrics()
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	return e, nil
}

// Close stops metrics server and flushes the logger.
func (e *Env) Close() {
	if e.metricsSrv != nil {
		e.metricsSrv.stop()
	}

	_ = e.Log.Sync()
}

// Guard converts panics of the configuration readers into an error stored
// in err. Must be deferred.
func Guard(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("invalid configuration: %v", r)
	}
}

// WithStorage prepares Env, opens configured storage and passes both to f.
// Resources are released after f returns. readOnly forces read-only mode.
func WithStorage(cmd *cobra.Command, readOnly bool, f func(*Env, kv.Store) error) error {
	e, err := NewEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	s, err := e.OpenStorage(readOnly)
	if err != nil {
		return Errf("open storage: %w", err)
	}
	defer e.CloseStorage(s)

	return f(e, s)
}
