package common

import (
	metricsconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/metrics"
	"github.com/nspcc-dev/neofs-dataset/misc"
	"github.com/nspcc-dev/neofs-dataset/pkg/metrics"
	httputil "github.com/nspcc-dev/neofs-dataset/pkg/util/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type metricsServer struct {
	log  *zap.Logger
	srv  *httputil.Server
	done chan struct{}
}

func (e *Env) initMetrics() error {
	if !metricsconfig.Enabled(e.Config) {
		return nil
	}

	reg := prometheus.NewRegistry()
	e.Metrics = metrics.NewDatasetMetrics(reg, misc.Version)

	srv := httputil.New(httputil.HTTPSrvPrm{
		Address: metricsconfig.Address(e.Config),
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, httputil.WithShutdownTimeout(metricsconfig.ShutdownTimeout(e.Config)))

	err := srv.Listen()
	if err != nil {
		return err
	}

	s := &metricsServer{
		log:  e.Log.With(zap.String("service", "metrics")),
		srv:  srv,
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)

		s.log.Info("start listening", zap.String("address", srv.Addr()))

		if err := srv.Serve(); err != nil {
			s.log.Error("metrics server failure", zap.Error(err))
		}
	}()

	e.metricsSrv = s

	return nil
}

// MetricsAddr returns listened address of the metrics server or empty
// string if metrics are disabled.
func (e *Env) MetricsAddr() string {
	if e.metricsSrv == nil {
		return ""
	}

	return e.metricsSrv.srv.Addr()
}

func (s *metricsServer) stop() {
	s.log.Debug("shutting down service")

	err := s.srv.Shutdown()
	if err != nil {
		s.log.Warn("could not shutdown metrics server", zap.Error(err))
	}

	<-s.done
}
