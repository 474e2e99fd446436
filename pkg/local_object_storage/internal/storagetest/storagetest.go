// Package storagetest contains conformance tests for kv.Store implementations.
package storagetest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"github.com/stretchr/testify/require"
)

// Constructor constructs ready-to-use kv.Store. Each call must return a
// store with its own state. Constructor is responsible for closing the store.
type Constructor = func(t *testing.T) kv.Store

// TestAll runs all conformance tests.
func TestAll(t *testing.T, cons Constructor) {
	t.Run("containers", func(t *testing.T) {
		TestContainers(t, cons)
	})
	t.Run("objects", func(t *testing.T) {
		TestObjects(t, cons)
	})
	t.Run("single values", func(t *testing.T) {
		TestSingle(t, cons)
	})
	t.Run("array values", func(t *testing.T) {
		TestArray(t, cons)
	})
	t.Run("closed handles", func(t *testing.T) {
		TestClosed(t, cons)
	})
	t.Run("dump", func(t *testing.T) {
		TestDump(t, cons)
	})
	t.Run("dataset", func(t *testing.T) {
		TestDataset(t, cons)
	})
}

func newContainer(t *testing.T, s kv.Store) (uuid.UUID, kv.Container) {
	id, err := s.CreateContainer()
	require.NoError(t, err)

	c, err := s.Container(id).OpenContainer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return id, c
}

func newObject(t *testing.T, c kv.Container) (oid.ID, kv.Object) {
	id, err := c.CreateObject(1, kv.DefaultClass)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	obj, err := c.OpenObject(id)
	require.NoError(t, err)
	t.Cleanup(func() { _ = obj.Close() })

	return id, obj
}

// TestContainers checks container management.
func TestContainers(t *testing.T, cons Constructor) {
	s := cons(t)

	list, err := s.ListContainers()
	require.NoError(t, err)
	require.Empty(t, list)

	ids := make(map[uuid.UUID]struct{})
	for i := 0; i < 3; i++ {
		id, err := s.CreateContainer()
		require.NoError(t, err)
		ids[id] = struct{}{}
	}
	require.Len(t, ids, 3)

	list, err = s.ListContainers()
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := range list {
		require.Contains(t, ids, list[i])
	}

	_, err = s.Container(uuid.New()).OpenContainer()
	require.ErrorIs(t, err, kv.ErrContainerNotFound)
	require.ErrorIs(t, s.DeleteContainer(uuid.New()), kv.ErrContainerNotFound)

	require.NoError(t, s.DeleteContainer(list[0]))
	_, err = s.Container(list[0]).OpenContainer()
	require.ErrorIs(t, err, kv.ErrContainerNotFound)

	list, err = s.ListContainers()
	require.NoError(t, err)
	require.Len(t, list, 2)
}

// TestObjects checks object creation and listing.
func TestObjects(t *testing.T, cons Constructor) {
	s := cons(t)
	_, c := newContainer(t, s)

	_, err := c.OpenObject(oid.New())
	require.ErrorIs(t, err, kv.ErrObjectNotFound)

	ids := make(map[oid.ID]uint32)
	for i := uint32(0); i < 5; i++ {
		id, err := c.CreateObject(i, kv.ObjectClass(i))
		require.NoError(t, err)
		require.NotContains(t, ids, id)
		ids[id] = i
	}

	for id := range ids {
		obj, err := c.OpenObject(id)
		require.NoError(t, err)
		require.NoError(t, obj.Close())
	}

	lister, ok := c.(kv.ObjectLister)
	require.True(t, ok)

	infos, err := lister.ListObjects()
	require.NoError(t, err)
	require.Len(t, infos, len(ids))

	for _, info := range infos {
		rank, ok := ids[info.ID]
		require.True(t, ok)
		require.Equal(t, rank, info.Rank)
		require.EqualValues(t, rank, info.Class)
		require.Zero(t, info.DKeys)
	}

	t.Run("other container", func(t *testing.T) {
		_, other := newContainer(t, s)
		for id := range ids {
			_, err := other.OpenObject(id)
			require.ErrorIs(t, err, kv.ErrObjectNotFound)
		}
	})

	t.Run("dkeys", func(t *testing.T) {
		id, obj := newObject(t, c)
		require.NoError(t, obj.InsertSingle("d1", "a", []byte("v")))
		require.NoError(t, obj.InsertSingle("d1", "b", []byte("v")))
		require.NoError(t, obj.InsertArray("d2", "a", [][]byte{[]byte("v")}))

		infos, err := lister.ListObjects()
		require.NoError(t, err)

		for _, info := range infos {
			if info.ID == id {
				require.Equal(t, 2, info.DKeys)
				return
			}
		}
		t.Fatal("object is not listed")
	})
}

// TestSingle checks single value operations.
func TestSingle(t *testing.T, cons Constructor) {
	s := cons(t)
	_, c := newContainer(t, s)
	_, obj := newObject(t, c)

	v, err := obj.FetchSingle("dkey", "missing", 10)
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, obj.InsertSingle("dkey", "akey", []byte("0123456789")))

	v, err = obj.FetchSingle("dkey", "akey", 11)
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789"), v)

	v, err = obj.FetchSingle("dkey", "akey", 4)
	require.NoError(t, err)
	require.Equal(t, []byte("0123"), v)

	require.NoError(t, obj.InsertSingle("dkey", "akey", []byte("abc")))
	v, err = obj.FetchSingle("dkey", "akey", 11)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)

	v, err = obj.FetchSingle("other dkey", "akey", 11)
	require.NoError(t, err)
	require.Empty(t, v)

	require.ErrorIs(t, obj.InsertSingle("", "akey", []byte("v")), kv.ErrEmptyKey)
	require.ErrorIs(t, obj.InsertSingle("dkey", "", []byte("v")), kv.ErrEmptyKey)

	t.Run("persisted after reopen", func(t *testing.T) {
		id, obj := newObject(t, c)
		require.NoError(t, obj.InsertSingle("dkey", "akey", []byte("value")))
		require.NoError(t, obj.Close())

		obj, err := c.OpenObject(id)
		require.NoError(t, err)
		defer obj.Close()

		v, err := obj.FetchSingle("dkey", "akey", 100)
		require.NoError(t, err)
		require.Equal(t, []byte("value"), v)
	})
}

// TestArray checks array value operations.
func TestArray(t *testing.T, cons Constructor) {
	s := cons(t)
	_, c := newContainer(t, s)
	_, obj := newObject(t, c)

	v, err := obj.FetchArray("dkey", "missing", 2, 4)
	require.NoError(t, err)
	require.Equal(t, [][]byte{{}, {}}, v)

	extents := [][]byte{[]byte("0000"), []byte("1111"), []byte("2222")}
	require.NoError(t, obj.InsertArray("dkey", "akey", extents))

	v, err = obj.FetchArray("dkey", "akey", 3, 4)
	require.NoError(t, err)
	require.Equal(t, extents, v)

	v, err = obj.FetchArray("dkey", "akey", 2, 2)
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("00"), []byte("11")}, v)

	v, err = obj.FetchArray("dkey", "akey", 4, 4)
	require.NoError(t, err)
	require.Equal(t, append(extents, []byte{}), v)

	// array insert replaces all previous extents
	require.NoError(t, obj.InsertArray("dkey", "akey", [][]byte{[]byte("99")}))
	v, err = obj.FetchArray("dkey", "akey", 3, 4)
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("99"), {}, {}}, v)

	require.ErrorIs(t, obj.InsertArray("", "akey", extents), kv.ErrEmptyKey)
}

// TestClosed checks operations on closed handles.
func TestClosed(t *testing.T, cons Constructor) {
	s := cons(t)
	id, err := s.CreateContainer()
	require.NoError(t, err)

	c, err := s.Container(id).OpenContainer()
	require.NoError(t, err)

	objID, err := c.CreateObject(0, kv.DefaultClass)
	require.NoError(t, err)

	obj, err := c.OpenObject(objID)
	require.NoError(t, err)
	require.NoError(t, obj.Close())

	require.ErrorIs(t, obj.InsertSingle("d", "a", nil), kv.ErrClosed)
	_, err = obj.FetchSingle("d", "a", 1)
	require.ErrorIs(t, err, kv.ErrClosed)
	require.ErrorIs(t, obj.Close(), kv.ErrClosed)

	require.NoError(t, c.Close())

	_, err = c.CreateObject(0, kv.DefaultClass)
	require.ErrorIs(t, err, kv.ErrClosed)
	_, err = c.OpenObject(objID)
	require.ErrorIs(t, err, kv.ErrClosed)
	require.ErrorIs(t, c.Close(), kv.ErrClosed)
}
