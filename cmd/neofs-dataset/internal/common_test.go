package common

import (
	"io"
	"net/http"
	"testing"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	AddRootFlags(cmd)
	AddContainerFlag(cmd, false)
	AddNoProgressFlag(cmd)

	require.NoError(t, cmd.ParseFlags(args))

	return cmd
}

func TestNewEnv(t *testing.T) {
	t.Setenv("NEOFS_DATASET_LOGGER_LEVEL", "error")

	t.Run("flags override", func(t *testing.T) {
		t.Setenv("NEOFS_DATASET_STORAGE_TYPE", "badger")

		e, err := NewEnv(newTestCommand(t, "--storage-type", "memory", "--read-only"))
		require.NoError(t, err)
		defer e.Close()

		prm, err := e.StorageFromConfig(false)
		require.NoError(t, err)
		require.Equal(t, StoragePrm{Type: "memory", ReadOnly: true}, prm)
		require.Nil(t, e.Metrics)
		require.Empty(t, e.MetricsAddr())
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := NewEnv(newTestCommand(t, "--log-level", "loud"))
		require.Error(t, err)
	})

	t.Run("invalid shape", func(t *testing.T) {
		t.Setenv("NEOFS_DATASET_SHAPE_DKEYS", "a lot")

		e, err := NewEnv(newTestCommand(t))
		require.NoError(t, err)
		defer e.Close()

		_, err = e.Shape()
		require.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("metrics", func(t *testing.T) {
		t.Setenv("NEOFS_DATASET_METRICS_ENABLED", "true")
		t.Setenv("NEOFS_DATASET_METRICS_ADDRESS", "127.0.0.1:0")

		e, err := NewEnv(newTestCommand(t, "--storage-type", "memory"))
		require.NoError(t, err)
		defer e.Close()

		require.NotNil(t, e.Metrics)

		err = WithStorage(newTestCommand(t, "--storage-type", "memory"), false, func(_ *Env, s kv.Store) error {
			_, err := s.CreateContainer()
			return err
		})
		require.NoError(t, err)

		resp, err := http.Get("http://" + e.MetricsAddr() + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "neofs_dataset_version")
	})
}

func TestOpen(t *testing.T) {
	t.Setenv("NEOFS_DATASET_LOGGER_LEVEL", "error")

	e, err := NewEnv(newTestCommand(t))
	require.NoError(t, err)
	defer e.Close()

	for _, typ := range []string{"bbolt", "badger", "memory"} {
		t.Run(typ, func(t *testing.T) {
			s, err := e.Open(StoragePrm{Type: typ, Path: t.TempDir() + "/db"})
			require.NoError(t, err)

			id, err := s.CreateContainer()
			require.NoError(t, err)

			ids, err := s.ListContainers()
			require.NoError(t, err)
			require.Contains(t, ids, id)

			require.NoError(t, s.Close())
		})
	}

	_, err = e.Open(StoragePrm{Type: "tape"})
	require.Error(t, err)
}

func TestParseContainer(t *testing.T) {
	cmd := newTestCommand(t)

	id, err := ParseContainer(cmd)
	require.NoError(t, err)
	require.Zero(t, id)

	cmd = newTestCommand(t, "--container", "b3a5c1ab-7a5d-4a0a-9c3e-1e9f0c7d8f01")
	id, err = ParseContainer(cmd)
	require.NoError(t, err)
	require.Equal(t, "b3a5c1ab-7a5d-4a0a-9c3e-1e9f0c7d8f01", id.String())

	cmd = newTestCommand(t, "--container", "123")
	_, err = ParseContainer(cmd)
	require.Error(t, err)
}

func TestProgress(t *testing.T) {
	var p *Progress
	p.Set(1)
	p.Finish()

	require.Nil(t, StartProgress(newTestCommand(t, "--no-progress"), 10))

	cmd := newTestCommand(t)
	cmd.SetErr(io.Discard)

	p = StartProgress(cmd, 10)
	require.NotNil(t, p)
	p.Set(5)
	p.Finish()
}
