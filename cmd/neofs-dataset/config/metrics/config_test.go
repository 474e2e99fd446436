package metricsconfig_test

import (
	"testing"
	"time"

	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	metricsconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/metrics"
	configtest "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/test"
	"github.com/stretchr/testify/require"
)

func TestMetricsSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		empty := configtest.EmptyConfig(t)

		require.False(t, metricsconfig.Enabled(empty))
		require.Equal(t, metricsconfig.AddressDefault, metricsconfig.Address(empty))
		require.Equal(t, metricsconfig.ShutdownTimeoutDefault, metricsconfig.ShutdownTimeout(empty))
	})

	const path = "../../../../config/example/dataset"

	fileConfigTest := func(c *config.Config) {
		require.True(t, metricsconfig.Enabled(c))
		require.Equal(t, "localhost:9191", metricsconfig.Address(c))
		require.Equal(t, 15*time.Second, metricsconfig.ShutdownTimeout(c))
	}

	configtest.ForEachFileType(t, path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})
}
