package storagetest

import (
	"errors"
	"testing"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/stretchr/testify/require"
)

var errInterrupt = errors.New("interrupt")

// TestDataset checks the store keeps generated datasets intact.
func TestDataset(t *testing.T, cons Constructor) {
	s := cons(t)

	shape := dataset.Shape{
		NumObjects:      3,
		NumDKeys:        2,
		NumAKeysSingle:  3,
		NumAKeysArray:   2,
		SizePool:        []int{1, 17, 130},
		ExtentCountPool: []int{2, 11},
	}

	id, err := s.CreateContainer()
	require.NoError(t, err)

	reg, err := dataset.Generate(shape, s.Container(id))
	require.NoError(t, err)
	require.Equal(t, shape.NumObjects, reg.Len())

	require.NoError(t, dataset.Verify(shape, s.Container(id), reg))

	t.Run("corrupted", func(t *testing.T) {
		c, err := s.Container(id).OpenContainer()
		require.NoError(t, err)

		obj, err := c.OpenObject(reg.At(2))
		require.NoError(t, err)

		v := shape.SingleValue(1)
		v[len(v)-1] = 'x'
		require.NoError(t, obj.InsertSingle("dkey 1", "akey single 1", v))
		require.NoError(t, obj.Close())
		require.NoError(t, c.Close())

		err = dataset.Verify(shape, s.Container(id), reg)

		var mErr *dataset.MismatchError
		require.ErrorAs(t, err, &mErr)
		require.Equal(t, dataset.Coordinate{Object: 2, DKey: 1, Kind: dataset.Single, AKey: 1}, mErr.Coordinate)
		require.Equal(t, reg.At(2), mErr.ID)
		require.Equal(t, v, mErr.Actual)
	})

	t.Run("foreign container", func(t *testing.T) {
		other, err := s.CreateContainer()
		require.NoError(t, err)

		err = dataset.Verify(shape, s.Container(other), reg)
		require.ErrorIs(t, err, dataset.ErrStorageOp)
		require.ErrorIs(t, err, kv.ErrObjectNotFound)
	})

	t.Run("large values", func(t *testing.T) {
		large := dataset.Shape{
			NumObjects:      2,
			NumDKeys:        1,
			NumAKeysSingle:  1,
			NumAKeysArray:   1,
			SizePool:        []int{512 << 10},
			ExtentCountPool: []int{24},
		}

		id, err := s.CreateContainer()
		require.NoError(t, err)

		reg, err := dataset.Generate(large, s.Container(id))
		require.NoError(t, err)
		require.NoError(t, dataset.Verify(large, s.Container(id), reg))

		src, err := s.Container(id).OpenContainer()
		require.NoError(t, err)
		recs := collect(t, src)
		require.NoError(t, src.Close())

		other, dst := newContainer(t, s)
		r, ok := dst.(kv.Restorer)
		require.True(t, ok)

		for i := range recs {
			require.NoError(t, r.Restore(recs[i]))
		}
		require.NoError(t, dataset.Verify(large, s.Container(other), reg))
	})
}
