package kvstore_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/storagetest"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/kvstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStore(t testing.TB, path string, readOnly bool, opts ...kvstore.Option) *kvstore.Store {
	s := kvstore.New(append([]kvstore.Option{
		kvstore.WithPath(path),
		kvstore.WithNoSync(true),
		kvstore.WithLogger(zaptest.NewLogger(t)),
	}, opts...)...)

	require.NoError(t, s.Open(readOnly))
	require.NoError(t, s.Init())

	return s
}

func TestGeneric(t *testing.T) {
	storagetest.TestAll(t, func(t *testing.T) kv.Store {
		s := newStore(t, filepath.Join(t.TempDir(), "kv.db"), false)
		t.Cleanup(func() { require.NoError(t, s.Close()) })
		return s
	})
}

type opCounter map[string]int

func (c opCounter) AddStorageOp(_, op string, _ time.Duration, err error) {
	if err == nil {
		c[op]++
	}
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	shape := dataset.Shape{
		NumObjects:      2,
		NumDKeys:        2,
		NumAKeysSingle:  2,
		NumAKeysArray:   1,
		SizePool:        []int{8, 3},
		ExtentCountPool: []int{4},
	}

	ops := make(opCounter)
	s := newStore(t, path, false, kvstore.WithMetrics(ops))

	cnr, err := s.CreateContainer()
	require.NoError(t, err)

	reg, err := dataset.Generate(shape, s.Container(cnr))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.Equal(t, 2, ops["create_object"])
	require.Equal(t, 8, ops["insert_single"])
	require.Equal(t, 4, ops["insert_array"])

	t.Run("read-only", func(t *testing.T) {
		s := newStore(t, path, true)
		defer s.Close()

		require.NoError(t, dataset.Verify(shape, s.Container(cnr), reg))

		_, err := s.CreateContainer()
		require.ErrorIs(t, err, kv.ErrReadOnly)
		require.ErrorIs(t, s.DeleteContainer(cnr), kv.ErrReadOnly)

		_, err = dataset.Generate(shape, s.Container(cnr))
		require.ErrorIs(t, err, kv.ErrReadOnly)
	})
}

func TestStore_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "kv.db")
	s := newStore(t, path, false)
	defer s.Close()

	require.Equal(t, path, s.Path())
	require.FileExists(t, path)
}
