package common

import (
	"fmt"

	shapeconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/shape"
	storageconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/storage"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/badgerstore"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/kvstore"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/memstore"
	"go.uber.org/zap"
)

// StoragePrm groups parameters of the opened storage.
type StoragePrm struct {
	Type     string
	Path     string
	ReadOnly bool
}

// StorageFromConfig returns storage parameters from "storage" section.
// readOnly forces read-only mode.
func (e *Env) StorageFromConfig(readOnly bool) (StoragePrm, error) {
	typ, err := storageconfig.Type(e.Config)
	if err != nil {
		return StoragePrm{}, err
	}

	prm := StoragePrm{
		Type:     typ,
		ReadOnly: readOnly || storageconfig.ReadOnly(e.Config),
	}

	if typ != storageconfig.TypeMemory {
		prm.Path, err = storageconfig.Path(e.Config)
		if err != nil {
			return StoragePrm{}, err
		}
	}

	return prm, nil
}

// OpenStorage opens storage configured in "storage" section. readOnly
// forces read-only mode.
func (e *Env) OpenStorage(readOnly bool) (kv.Store, error) {
	prm, err := e.StorageFromConfig(readOnly)
	if err != nil {
		return nil, err
	}

	return e.Open(prm)
}

// Open opens storage with the given parameters. Permissions and sync mode
// are taken from "storage" section.
func (e *Env) Open(prm StoragePrm) (kv.Store, error) {
	perm, err := storageconfig.Perm(e.Config)
	if err != nil {
		return nil, err
	}

	noSync := storageconfig.NoSync(e.Config)

	e.Log.Debug("opening storage",
		zap.String("type", prm.Type),
		zap.String("path", prm.Path),
		zap.Bool("read-only", prm.ReadOnly),
	)

	switch prm.Type {
	case storageconfig.TypeBBolt:
		opts := []kvstore.Option{
			kvstore.WithPath(prm.Path),
			kvstore.WithPermissions(perm),
			kvstore.WithNoSync(noSync),
			kvstore.WithLogger(e.Log),
		}
		if e.Metrics != nil {
			opts = append(opts, kvstore.WithMetrics(e.Metrics))
		}

		s := kvstore.New(opts...)

		err = s.Open(prm.ReadOnly)
		if err != nil {
			return nil, err
		}

		err = s.Init()
		if err != nil {
			_ = s.Close()
			return nil, err
		}

		return s, nil
	case storageconfig.TypeBadger:
		opts := []badgerstore.Option{
			badgerstore.WithPath(prm.Path),
			badgerstore.WithSyncWrites(!noSync),
			badgerstore.WithLogger(e.Log),
		}
		if e.Metrics != nil {
			opts = append(opts, badgerstore.WithMetrics(e.Metrics))
		}

		s := badgerstore.New(opts...)

		err = s.Open(prm.ReadOnly)
		if err != nil {
			return nil, err
		}

		return s, nil
	case storageconfig.TypeMemory:
		s := memstore.New()
		s.SetReadOnly(prm.ReadOnly)

		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", prm.Type)
	}
}

// CloseStorage closes the storage logging the failure.
func (e *Env) CloseStorage(s kv.Store) {
	if err := s.Close(); err != nil {
		e.Log.Error("could not close storage", zap.Error(err))
	}
}

// Shape returns dataset shape from "shape" section.
func (e *Env) Shape() (s dataset.Shape, err error) {
	defer Guard(&err)

	return shapeconfig.Shape(e.Config), nil
}

// DatasetOptions returns options of the dataset operations.
func (e *Env) DatasetOptions() []dataset.Option {
	opts := []dataset.Option{
		dataset.WithLogger(e.Log),
		dataset.WithObjectClass(shapeconfig.ObjectClass(e.Config)),
	}

	if e.Metrics != nil {
		opts = append(opts, dataset.WithMetrics(e.Metrics))
	}

	return opts
}
