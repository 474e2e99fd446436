package badgerstore_test

import (
	"testing"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/badgerstore"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/storagetest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStore(t testing.TB, readOnly bool, opts ...badgerstore.Option) *badgerstore.Store {
	s := badgerstore.New(append([]badgerstore.Option{
		badgerstore.WithLogger(zaptest.NewLogger(t)),
		badgerstore.WithValueLogFileSize(1 << 20),
	}, opts...)...)

	require.NoError(t, s.Open(readOnly))

	return s
}

func TestGeneric(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		storagetest.TestAll(t, func(t *testing.T) kv.Store {
			s := newStore(t, false, badgerstore.WithInMemory(true))
			t.Cleanup(func() { require.NoError(t, s.Close()) })
			return s
		})
	})

	t.Run("on disk", func(t *testing.T) {
		storagetest.TestAll(t, func(t *testing.T) kv.Store {
			s := newStore(t, false, badgerstore.WithPath(t.TempDir()))
			t.Cleanup(func() { require.NoError(t, s.Close()) })
			return s
		})
	})
}

func TestStore_ReadOnly(t *testing.T) {
	path := t.TempDir()
	shape := dataset.Shape{
		NumObjects:      3,
		NumDKeys:        1,
		NumAKeysSingle:  1,
		NumAKeysArray:   1,
		SizePool:        []int{5},
		ExtentCountPool: []int{2, 0},
	}

	s := newStore(t, false, badgerstore.WithPath(path))

	cnr, err := s.CreateContainer()
	require.NoError(t, err)

	reg, err := dataset.Generate(shape, s.Container(cnr))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s = newStore(t, true, badgerstore.WithPath(path))
	defer s.Close()

	ids, err := s.ListContainers()
	require.NoError(t, err)
	require.Len(t, ids, 1)
	require.Equal(t, cnr, ids[0])

	require.NoError(t, dataset.Verify(shape, s.Container(cnr), reg))

	_, err = s.CreateContainer()
	require.ErrorIs(t, err, kv.ErrReadOnly)
	require.ErrorIs(t, s.DeleteContainer(cnr), kv.ErrReadOnly)
}

func TestStore_KeyOrder(t *testing.T) {
	s := newStore(t, false, badgerstore.WithInMemory(true))
	defer s.Close()

	cnr, err := s.CreateContainer()
	require.NoError(t, err)

	c, err := s.Container(cnr).OpenContainer()
	require.NoError(t, err)
	defer c.Close()

	id, err := c.CreateObject(0, kv.DefaultClass)
	require.NoError(t, err)

	obj, err := c.OpenObject(id)
	require.NoError(t, err)
	defer obj.Close()

	// keys with zero bytes and common prefixes
	dkeys := []string{"a\x00b", "a", "ab", "a\x00", "\x00"}
	for _, d := range dkeys {
		require.NoError(t, obj.InsertSingle(d, "akey", []byte(d)))
	}

	var got []string
	require.NoError(t, c.(kv.Dumper).Iterate(func(rec kv.Record) error {
		if rec.Kind == kv.RecordSingle {
			require.Equal(t, rec.DKey, string(rec.Value))
			got = append(got, rec.DKey)
		}
		return nil
	}))

	require.Equal(t, []string{"\x00", "a", "a\x00", "a\x00b", "ab"}, got)

	infos, err := c.(kv.ObjectLister).ListObjects()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, len(dkeys), infos[0].DKeys)
}

func TestStore_LargeArray(t *testing.T) {
	// extents overflow single badger transaction (15% of 64 MiB memtable)
	const extentSize = 512 << 10

	s := newStore(t, false, badgerstore.WithPath(t.TempDir()))
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	shape := dataset.Shape{
		NumObjects:      1,
		NumDKeys:        1,
		NumAKeysArray:   1,
		SizePool:        []int{extentSize},
		ExtentCountPool: []int{24},
	}

	cnr, err := s.CreateContainer()
	require.NoError(t, err)

	reg, err := dataset.Generate(shape, s.Container(cnr))
	require.NoError(t, err)
	require.NoError(t, dataset.Verify(shape, s.Container(cnr), reg))

	t.Run("replace", func(t *testing.T) {
		c, err := s.Container(cnr).OpenContainer()
		require.NoError(t, err)
		defer func() { require.NoError(t, c.Close()) }()

		obj, err := c.OpenObject(reg.At(0))
		require.NoError(t, err)
		defer func() { require.NoError(t, obj.Close()) }()

		const dkey, akey = "dkey 0", "akey array 0"

		require.NoError(t, obj.InsertArray(dkey, akey, [][]byte{[]byte("a"), []byte("b")}))

		res, err := obj.FetchArray(dkey, akey, 24, extentSize)
		require.NoError(t, err)
		require.Equal(t, []byte("a"), res[0])
		require.Equal(t, []byte("b"), res[1])
		for i := 2; i < len(res); i++ {
			require.Empty(t, res[i], i)
		}
	})

	t.Run("restore", func(t *testing.T) {
		src, err := s.Container(cnr).OpenContainer()
		require.NoError(t, err)
		defer func() { require.NoError(t, src.Close()) }()

		var recs []kv.Record
		require.NoError(t, src.(kv.Dumper).Iterate(func(rec kv.Record) error {
			recs = append(recs, rec)
			return nil
		}))

		big := [][]byte{make([]byte, extentSize)}
		for len(big) < 24 {
			big = append(big, big[0])
		}

		other, err := s.CreateContainer()
		require.NoError(t, err)

		dst, err := s.Container(other).OpenContainer()
		require.NoError(t, err)
		defer func() { require.NoError(t, dst.Close()) }()

		r := dst.(kv.Restorer)
		require.NoError(t, r.Restore(recs[0]))
		require.NoError(t, r.Restore(kv.Record{
			Kind:    kv.RecordArray,
			Object:  recs[0].Object,
			DKey:    "dkey 0",
			AKey:    "akey array 0",
			Extents: big,
		}))

		obj, err := dst.OpenObject(recs[0].Object)
		require.NoError(t, err)
		defer func() { require.NoError(t, obj.Close()) }()

		res, err := obj.FetchArray("dkey 0", "akey array 0", 24, extentSize)
		require.NoError(t, err)
		require.Equal(t, big, res)
	})
}
