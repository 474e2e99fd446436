package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const storageSubsystem = "storage"

type storageMetrics struct {
	opDuration prometheus.HistogramVec
	opErrors   prometheus.CounterVec
}

func newStorageMetrics() storageMetrics {
	var (
		opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "op_time",
			Help:      "Local storage operations handling time",
		}, []string{storageTypeLabelKey, opLabelKey})

		opErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "op_errors_total",
			Help:      "Number of failed local storage operations",
		}, []string{storageTypeLabelKey, opLabelKey})
	)

	return storageMetrics{
		opDuration: *opDuration,
		opErrors:   *opErrors,
	}
}

func (m storageMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.opDuration)
	reg.MustRegister(m.opErrors)
}

// AddStorageOp observes duration of the storage operation and counts it as
// failed if err is not nil.
func (m storageMetrics) AddStorageOp(typ, op string, d time.Duration, err error) {
	labels := prometheus.Labels{storageTypeLabelKey: typ, opLabelKey: op}

	m.opDuration.With(labels).Observe(d.Seconds())
	if err != nil {
		m.opErrors.With(labels).Inc()
	}
}
