package dataset

import (
	"errors"
	"time"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"go.uber.org/zap"
)

const (
	opGenerate = "generate"
	opVerify   = "verify"
)

// Storage operation names reported in StorageOpError.
const (
	OpOpenContainer  = "open container"
	OpCloseContainer = "close container"
	OpCreateObject   = "create object"
	OpOpenObject     = "open object"
	OpCloseObject    = "close object"
	OpInsertSingle   = "insert single"
	OpInsertArray    = "insert array"
	OpFetchSingle    = "fetch single"
	OpFetchArray     = "fetch array"
)

// Generate creates the dataset described by the shape in the container.
// Object with index i is created with rank i.
//
// Returned Registry holds identities of all created objects in the creation
// order. It is returned even on failure and then holds the objects created
// so far: such dataset is incomplete and MUST NOT be verified.
//
// Returns *ConfigError if the shape is invalid, no storage operations are
// made in this case. Returns *StorageOpError on the first failed storage
// operation.
func Generate(shape Shape, cnr kv.ContainerOpener, opts ...Option) (*Registry, error) {
	var (
		c   = newCfg(opts)
		reg = new(Registry)
	)

	if err := shape.Validate(); err != nil {
		return reg, err
	}

	if shape.NumObjects == 0 {
		return reg, nil
	}

	start := time.Now()
	c.log.Info("generating dataset", shape.logFields()...)

	err := withContainer(cnr, func(ctr kv.Container) error {
		for i := 0; i < shape.NumObjects; i++ {
			id, err := ctr.CreateObject(uint32(i), c.class)
			if err != nil {
				return &StorageOpError{Op: OpCreateObject, Object: i, Err: err}
			}

			reg.add(id)

			if err := generateObject(c, shape, ctr, i, id); err != nil {
				return err
			}

			c.metrics.IncObjects(opGenerate)
			c.progress(i+1, shape.NumObjects)
		}

		return nil
	})
	if err != nil {
		c.log.Error("dataset generation failed",
			zap.Int("objects created", reg.Len()), zap.Error(err))
		return reg, err
	}

	c.metrics.AddRunDuration(opGenerate, time.Since(start))
	c.log.Info("dataset generated", zap.Int("objects", reg.Len()))

	return reg, nil
}

func generateObject(c *cfg, shape Shape, ctr kv.Container, i int, id oid.ID) error {
	return withObject(ctr, i, id, func(obj kv.Object) error {
		var singles, arrays int

		c.log.Debug("filling object", zap.Int("index", i), zap.Stringer("id", id))

		for it := shape.EnumerateObject(i); it.Next(); {
			co := it.Coordinate()
			dkey, akey := co.DKeyName(), co.AKeyName()

			var (
				err error
				op  string
			)

			switch co.Kind {
			case Single:
				op = OpInsertSingle
				err = obj.InsertSingle(dkey, akey, shape.SingleValue(co.AKey))
				singles++
			case Array:
				op = OpInsertArray
				err = obj.InsertArray(dkey, akey, shape.ArrayValue(co.AKey))
				arrays++
			}

			if err != nil {
				return &StorageOpError{Op: op, Object: i, ID: id, DKey: dkey, AKey: akey, Err: err}
			}
		}

		c.metrics.AddValues(opGenerate, Single.String(), singles)
		c.metrics.AddValues(opGenerate, Array.String(), arrays)

		return nil
	})
}

// withContainer opens the container, passes it to f and closes it on any
// exit. Close error is joined with the one returned by f.
func withContainer(cnr kv.ContainerOpener, f func(kv.Container) error) error {
	ctr, err := cnr.OpenContainer()
	if err != nil {
		return &StorageOpError{Op: OpOpenContainer, Object: -1, Err: err}
	}

	err = f(ctr)

	if cErr := ctr.Close(); cErr != nil {
		err = errors.Join(err, &StorageOpError{Op: OpCloseContainer, Object: -1, Err: cErr})
	}

	return err
}

// withObject opens the object, passes it to f and closes it on any exit.
// Close error is joined with the one returned by f.
func withObject(ctr kv.Container, i int, id oid.ID, f func(kv.Object) error) error {
	obj, err := ctr.OpenObject(id)
	if err != nil {
		return &StorageOpError{Op: OpOpenObject, Object: i, ID: id, Err: err}
	}

	err = f(obj)

	if cErr := obj.Close(); cErr != nil {
		err = errors.Join(err, &StorageOpError{Op: OpCloseObject, Object: i, ID: id, Err: cErr})
	}

	return err
}
