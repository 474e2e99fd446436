package memstore_test

import (
	"testing"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/storagetest"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/memstore"
	"github.com/stretchr/testify/require"
)

func TestGeneric(t *testing.T) {
	storagetest.TestAll(t, func(t *testing.T) kv.Store {
		return memstore.New()
	})
}

func TestStore_ReadOnly(t *testing.T) {
	s := memstore.New()

	id, err := s.CreateContainer()
	require.NoError(t, err)

	c, err := s.Container(id).OpenContainer()
	require.NoError(t, err)

	objID, err := c.CreateObject(0, kv.DefaultClass)
	require.NoError(t, err)

	obj, err := c.OpenObject(objID)
	require.NoError(t, err)
	require.Equal(t, 2, s.OpenHandles())

	s.SetReadOnly(true)

	_, err = s.CreateContainer()
	require.ErrorIs(t, err, kv.ErrReadOnly)
	require.ErrorIs(t, s.DeleteContainer(id), kv.ErrReadOnly)
	_, err = c.CreateObject(0, kv.DefaultClass)
	require.ErrorIs(t, err, kv.ErrReadOnly)
	require.ErrorIs(t, obj.InsertSingle("d", "a", []byte("v")), kv.ErrReadOnly)
	require.ErrorIs(t, obj.InsertArray("d", "a", nil), kv.ErrReadOnly)

	_, err = obj.FetchSingle("d", "a", 1)
	require.NoError(t, err)

	require.NoError(t, obj.Close())
	require.NoError(t, c.Close())
	require.Zero(t, s.OpenHandles())
}
