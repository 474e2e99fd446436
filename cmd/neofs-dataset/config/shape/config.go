package shapeconfig

import (
	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
)

const (
	subsection = "shape"

	// ObjectClassDefault is a default class of generated objects.
	ObjectClassDefault = kv.DefaultClass
)

// Names of the "shape" section parameters.
const (
	ObjectsKey     = "objects"
	DKeysKey       = "dkeys"
	AKeysSingleKey = "akeys_single"
	AKeysArrayKey  = "akeys_array"
	SizesKey       = "sizes"
	ExtentsKey     = "extents"
	ObjectClassKey = "object_class"
)

// Section returns "shape" subsection of the configuration.
func Section(c *config.Config) *config.Config {
	return c.Sub(subsection)
}

// Shape returns dataset shape from "shape" section.
//
// Panics if any value can not be casted to a number. The result is not
// validated.
func Shape(c *config.Config) dataset.Shape {
	c = c.Sub(subsection)

	return dataset.Shape{
		NumObjects:      config.Int(c, ObjectsKey),
		NumDKeys:        config.Int(c, DKeysKey),
		NumAKeysSingle:  config.Int(c, AKeysSingleKey),
		NumAKeysArray:   config.Int(c, AKeysArrayKey),
		SizePool:        config.IntSlice(c, SizesKey),
		ExtentCountPool: config.IntSlice(c, ExtentsKey),
	}
}

// ObjectClass returns the value of "object_class" config parameter
// from "shape" section.
//
// Returns ObjectClassDefault if the value is not set or zero.
func ObjectClass(c *config.Config) kv.ObjectClass {
	v := config.Uint32Safe(c.Sub(subsection), ObjectClassKey)
	if v == 0 || v > 0xff {
		return ObjectClassDefault
	}

	return kv.ObjectClass(v)
}
