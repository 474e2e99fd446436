package storagetest

import (
	"testing"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, c kv.Container) []kv.Record {
	d, ok := c.(kv.Dumper)
	require.True(t, ok)

	var res []kv.Record
	require.NoError(t, d.Iterate(func(rec kv.Record) error {
		res = append(res, rec)
		return nil
	}))

	return res
}

// TestDump checks container dump and restoration.
func TestDump(t *testing.T, cons Constructor) {
	s := cons(t)
	_, src := newContainer(t, s)

	require.Empty(t, collect(t, src))

	id, obj := newObject(t, src)
	require.NoError(t, obj.InsertSingle("dkey 1", "akey b", []byte("single")))
	require.NoError(t, obj.InsertSingle("dkey 0", "akey a", []byte("")))
	require.NoError(t, obj.InsertArray("dkey 0", "akey c", [][]byte{[]byte("e0"), []byte("e1")}))

	emptyID, err := src.CreateObject(7, 5)
	require.NoError(t, err)

	recs := collect(t, src)
	require.Len(t, recs, 5)

	var objects int
	for _, rec := range recs {
		if rec.Kind == kv.RecordObject {
			objects++
			if rec.Object == emptyID {
				require.EqualValues(t, 7, rec.Rank)
				require.EqualValues(t, 5, rec.Class)
			}
		}
	}
	require.Equal(t, 2, objects)

	var own []kv.Record
	for _, rec := range recs {
		if rec.Object == id && rec.Kind != kv.RecordObject {
			own = append(own, rec)
		}
	}

	require.Equal(t, []kv.Record{
		{Kind: kv.RecordSingle, Object: id, DKey: "dkey 0", AKey: "akey a", Value: []byte{}},
		{Kind: kv.RecordArray, Object: id, DKey: "dkey 0", AKey: "akey c", Extents: [][]byte{[]byte("e0"), []byte("e1")}},
		{Kind: kv.RecordSingle, Object: id, DKey: "dkey 1", AKey: "akey b", Value: []byte("single")},
	}, own)

	t.Run("restore", func(t *testing.T) {
		_, dst := newContainer(t, s)
		r, ok := dst.(kv.Restorer)
		require.True(t, ok)

		require.ErrorIs(t, r.Restore(kv.Record{Kind: kv.RecordSingle, Object: oid.New(), DKey: "d", AKey: "a"}),
			kv.ErrObjectNotFound)

		for _, rec := range recs {
			require.NoError(t, r.Restore(rec))
		}

		require.Equal(t, recs, collect(t, dst))

		obj, err := dst.OpenObject(id)
		require.NoError(t, err)
		defer obj.Close()

		v, err := obj.FetchSingle("dkey 1", "akey b", 100)
		require.NoError(t, err)
		require.Equal(t, []byte("single"), v)
	})

	t.Run("interrupt", func(t *testing.T) {
		d := src.(kv.Dumper)

		var n int
		err := d.Iterate(func(kv.Record) error {
			n++
			return errInterrupt
		})
		require.ErrorIs(t, err, errInterrupt)
		require.Equal(t, 1, n)
	})
}
