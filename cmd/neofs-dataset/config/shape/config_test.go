package shapeconfig_test

import (
	"testing"

	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	shapeconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/shape"
	configtest "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/test"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/stretchr/testify/require"
)

func TestShapeSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		empty := configtest.EmptyConfig(t)

		require.Equal(t, dataset.Shape{}, shapeconfig.Shape(empty))
		require.Equal(t, shapeconfig.ObjectClassDefault, shapeconfig.ObjectClass(empty))
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("NEOFS_DATASET_SHAPE_OBJECTS", "many")

		require.Panics(t, func() {
			shapeconfig.Shape(configtest.EmptyConfig(t))
		})
	})

	const path = "../../../../config/example/dataset"

	fileConfigTest := func(c *config.Config) {
		s := shapeconfig.Shape(c)
		require.Equal(t, dataset.Shape{
			NumObjects:      10,
			NumDKeys:        5,
			NumAKeysSingle:  3,
			NumAKeysArray:   2,
			SizePool:        []int{1024, 16, 0},
			ExtentCountPool: []int{4, 1},
		}, s)
		require.NoError(t, s.Validate())

		require.Equal(t, kv.ObjectClass(7), shapeconfig.ObjectClass(c))
	}

	configtest.ForEachFileType(t, path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})
}
