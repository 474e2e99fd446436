package datasetcmd

import (
	"fmt"

	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	shapeconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/shape"
	"github.com/spf13/cobra"
)

var shapeFlags = []struct {
	name, key, usage string
	slice            bool
}{
	{"objects", shapeconfig.ObjectsKey, "Number of objects", false},
	{"dkeys", shapeconfig.DKeysKey, "Number of dkeys per object", false},
	{"akeys-single", shapeconfig.AKeysSingleKey, "Number of single-value akeys per dkey", false},
	{"akeys-array", shapeconfig.AKeysArrayKey, "Number of array-value akeys per dkey", false},
	{"sizes", shapeconfig.SizesKey, "Value sizes selected by akey index", true},
	{"extents", shapeconfig.ExtentsKey, "Extent counts selected by array akey index", true},
}

// addShapeFlags adds flags overriding "shape" section. The shape passed to
// verify MUST be the one used for generation.
func addShapeFlags(cmd *cobra.Command) {
	ff := cmd.Flags()

	for _, f := range shapeFlags {
		if f.slice {
			ff.IntSlice(f.name, nil, f.usage)
		} else {
			ff.Int(f.name, 0, f.usage)
		}
	}
}

func bindShapeFlags(cmd *cobra.Command, c *config.Config) error {
	sub := shapeconfig.Section(c)

	for _, f := range shapeFlags {
		err := sub.BindFlag(f.key, cmd.Flags().Lookup(f.name))
		if err != nil {
			return fmt.Errorf("bind %s flag: %w", f.name, err)
		}
	}

	return nil
}
