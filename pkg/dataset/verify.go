package dataset

import (
	"bytes"
	"errors"
	"time"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"go.uber.org/zap"
)

// Verify checks that the container holds the dataset described by the shape
// in objects listed in the Registry returned by Generate. Shape MUST be the
// same as passed to Generate.
//
// Values are compared byte-by-byte in the generation order. Single values are
// fetched with one extra byte to catch longer values. Verification stops at
// the first divergence and returns *MismatchError. Akeys not predicted by the
// shape are not checked.
//
// Returns *ConfigError if the shape is invalid or the Registry holds fewer
// identities than the shape has objects. Returns *StorageOpError on the
// first failed storage operation.
func Verify(shape Shape, cnr kv.ContainerOpener, reg *Registry, opts ...Option) error {
	c := newCfg(opts)

	if err := shape.Validate(); err != nil {
		return err
	}

	if reg.Len() < shape.NumObjects {
		return newConfigError("registry", "holds %d objects, shape has %d",
			reg.Len(), shape.NumObjects)
	}

	if shape.NumObjects == 0 {
		return nil
	}

	start := time.Now()
	c.log.Info("verifying dataset", shape.logFields()...)

	err := withContainer(cnr, func(ctr kv.Container) error {
		for i := 0; i < shape.NumObjects; i++ {
			if err := verifyObject(c, shape, ctr, i, reg.At(i)); err != nil {
				return err
			}

			c.metrics.IncObjects(opVerify)
			c.progress(i+1, shape.NumObjects)
		}

		return nil
	})
	if err != nil {
		var mErr *MismatchError
		if errors.As(err, &mErr) {
			c.metrics.IncMismatches()
			c.log.Error("dataset mismatch",
				zap.Int("object", mErr.Coordinate.Object),
				zap.Stringer("id", mErr.ID),
				zap.String("dkey", mErr.Coordinate.DKeyName()),
				zap.String("akey", mErr.Coordinate.AKeyName()),
				zap.Int("extent", mErr.Extent),
				zap.String("expected", truncate(mErr.Expected)),
				zap.String("actual", truncate(mErr.Actual)),
			)
		} else {
			c.log.Error("dataset verification failed", zap.Error(err))
		}

		return err
	}

	c.metrics.AddRunDuration(opVerify, time.Since(start))
	c.log.Info("dataset verified", zap.Int("objects", shape.NumObjects))

	return nil
}

func verifyObject(c *cfg, shape Shape, ctr kv.Container, i int, id oid.ID) error {
	return withObject(ctr, i, id, func(obj kv.Object) error {
		var singles, arrays int

		c.log.Debug("verifying object", zap.Int("index", i), zap.Stringer("id", id))

		for it := shape.EnumerateObject(i); it.Next(); {
			co := it.Coordinate()

			var err error

			switch co.Kind {
			case Single:
				err = verifySingle(shape, obj, co, id)
				singles++
			case Array:
				err = verifyArray(shape, obj, co, id)
				arrays++
			}

			if err != nil {
				return err
			}
		}

		c.metrics.AddValues(opVerify, Single.String(), singles)
		c.metrics.AddValues(opVerify, Array.String(), arrays)

		return nil
	})
}

func verifySingle(shape Shape, obj kv.Object, co Coordinate, id oid.ID) error {
	dkey, akey := co.DKeyName(), co.AKeyName()
	expected := shape.SingleValue(co.AKey)

	actual, err := obj.FetchSingle(dkey, akey, len(expected)+1)
	if err != nil {
		return &StorageOpError{Op: OpFetchSingle, Object: co.Object, ID: id, DKey: dkey, AKey: akey, Err: err}
	}

	if !bytes.Equal(expected, actual) {
		return &MismatchError{
			Coordinate: co,
			ID:         id,
			Extent:     -1,
			Expected:   expected,
			Actual:     actual,
		}
	}

	return nil
}

func verifyArray(shape Shape, obj kv.Object, co Coordinate, id oid.ID) error {
	var (
		dkey, akey = co.DKeyName(), co.AKeyName()
		count      = shape.ExtentCount(co.AKey)
	)

	actual, err := obj.FetchArray(dkey, akey, count, shape.ValueSize(co.AKey))
	if err != nil {
		return &StorageOpError{Op: OpFetchArray, Object: co.Object, ID: id, DKey: dkey, AKey: akey, Err: err}
	}

	for j := 0; j < count; j++ {
		expected := shape.Extent(co.AKey, j)

		var got []byte
		if j < len(actual) {
			got = actual[j]
		}

		if j >= len(actual) || !bytes.Equal(expected, got) {
			return &MismatchError{
				Coordinate: co,
				ID:         id,
				Extent:     j,
				Expected:   expected,
				Actual:     got,
			}
		}
	}

	return nil
}
