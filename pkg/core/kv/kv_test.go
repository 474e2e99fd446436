package kv_test

import (
	"testing"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/util/logicerr"
	"github.com/stretchr/testify/require"
)

func TestCheckKeys(t *testing.T) {
	require.NoError(t, kv.CheckKeys("dkey 0", "akey single 0"))
	require.ErrorIs(t, kv.CheckKeys("", "akey"), kv.ErrEmptyKey)
	require.ErrorIs(t, kv.CheckKeys("dkey", ""), kv.ErrEmptyKey)
	require.True(t, logicerr.Is(kv.CheckKeys("", "")))
}

func TestCutValue(t *testing.T) {
	v := []byte("12345")

	require.Equal(t, v, kv.CutValue(v, -1))
	require.Equal(t, v, kv.CutValue(v, 5))
	require.Equal(t, v, kv.CutValue(v, 6))
	require.Equal(t, []byte("123"), kv.CutValue(v, 3))
	require.Empty(t, kv.CutValue(v, 0))
}

func TestRecordKind_String(t *testing.T) {
	require.Equal(t, "OBJECT", kv.RecordObject.String())
	require.Equal(t, "SINGLE", kv.RecordSingle.String())
	require.Equal(t, "ARRAY", kv.RecordArray.String())
	require.Equal(t, "UNDEFINED", kv.RecordKind(100).String())
}
