package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "neofs_dataset"

const (
	storageTypeLabelKey = "type"
	opLabelKey          = "op"
	kindLabelKey        = "kind"
)

// DatasetMetrics groups metrics of dataset generation, verification and
// the underlying storage operations.
type DatasetMetrics struct {
	engineMetrics
	storageMetrics
}

// NewDatasetMetrics creates and registers dataset metrics in reg. Version
// metric is registered too.
func NewDatasetMetrics(reg prometheus.Registerer, version string) *DatasetMetrics {
	engine := newEngineMetrics()
	engine.register(reg)

	storage := newStorageMetrics()
	storage.register(reg)

	registerVersionMetric(reg, namespace, version)

	return &DatasetMetrics{
		engineMetrics:  engine,
		storageMetrics: storage,
	}
}
