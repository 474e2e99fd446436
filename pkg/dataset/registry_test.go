package dataset_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	oidtest "github.com/nspcc-dev/neofs-dataset/pkg/core/oid/test"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	var nilReg *dataset.Registry
	require.Zero(t, nilReg.Len())
	require.Nil(t, nilReg.IDs())

	ids := oidtest.IDs(3)
	r := dataset.NewRegistry(ids...)
	require.Equal(t, 3, r.Len())
	require.Equal(t, ids, r.IDs())
	for i := range ids {
		require.Equal(t, ids[i], r.At(i))
	}

	ids[0] = oid.ID{}
	require.NotEqual(t, ids[0], r.At(0), "registry must not share memory with the argument")

	got := r.IDs()
	got[1] = oid.ID{}
	require.NotEqual(t, got[1], r.At(1))
}

func TestRegistry_Encode(t *testing.T) {
	r := dataset.NewRegistry(oidtest.IDs(4)...)

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))
	require.Contains(t, buf.String(), "version: 1")
	require.Contains(t, buf.String(), r.At(2).String())

	res, err := dataset.DecodeRegistry(&buf)
	require.NoError(t, err)
	require.Equal(t, r.IDs(), res.IDs())

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.yml")
		require.NoError(t, r.WriteFile(path))

		res, err := dataset.ReadRegistry(path)
		require.NoError(t, err)
		require.Equal(t, r.IDs(), res.IDs())

		// rewritten in place
		require.NoError(t, dataset.NewRegistry().WriteFile(path))
		res, err = dataset.ReadRegistry(path)
		require.NoError(t, err)
		require.Zero(t, res.Len())
	})

	t.Run("invalid", func(t *testing.T) {
		for name, doc := range map[string]string{
			"version":   "version: 2\nobjects: []\n",
			"object id": "version: 1\nobjects: [\"not base58!\"]\n",
			"yaml":      "version: [",
		} {
			_, err := dataset.DecodeRegistry(strings.NewReader(doc))
			require.Error(t, err, name)
		}

		_, err := dataset.ReadRegistry(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
	})
}
