package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const engineSubsystem = "engine"

type engineMetrics struct {
	objects    prometheus.CounterVec
	values     prometheus.CounterVec
	mismatches prometheus.Counter
	duration   prometheus.HistogramVec
}

func newEngineMetrics() engineMetrics {
	var (
		objects = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: engineSubsystem,
			Name:      "objects_total",
			Help:      "Number of objects processed by dataset generation and verification",
		}, []string{opLabelKey})

		values = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: engineSubsystem,
			Name:      "values_total",
			Help:      "Number of akey values processed by dataset generation and verification",
		}, []string{opLabelKey, kindLabelKey})

		mismatches = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: engineSubsystem,
			Name:      "mismatches_total",
			Help:      "Number of failed dataset verifications",
		})

		duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: engineSubsystem,
			Name:      "run_time",
			Help:      "Dataset generation and verification handling time",
		}, []string{opLabelKey})
	)

	return engineMetrics{
		objects:    *objects,
		values:     *values,
		mismatches: mismatches,
		duration:   *duration,
	}
}

func (m engineMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.objects)
	reg.MustRegister(m.values)
	reg.MustRegister(m.mismatches)
	reg.MustRegister(m.duration)
}

// IncObjects increments number of objects processed by op.
func (m engineMetrics) IncObjects(op string) {
	m.objects.With(prometheus.Labels{opLabelKey: op}).Inc()
}

// AddValues adds n values of the given kind processed by op.
func (m engineMetrics) AddValues(op, kind string, n int) {
	m.values.With(prometheus.Labels{opLabelKey: op, kindLabelKey: kind}).Add(float64(n))
}

// IncMismatches increments number of failed verifications.
func (m engineMetrics) IncMismatches() {
	m.mismatches.Inc()
}

// AddRunDuration observes time spent on the whole op run.
func (m engineMetrics) AddRunDuration(op string, d time.Duration) {
	m.duration.With(prometheus.Labels{opLabelKey: op}).Observe(d.Seconds())
}
