package dataset

import (
	"fmt"
	"strconv"
)

// AKeyKind is a type of akey value.
type AKeyKind uint8

const (
	// Single is a kind of akey holding one value.
	Single AKeyKind = iota
	// Array is a kind of akey holding ordered extents.
	Array
)

// String implements fmt.Stringer.
func (k AKeyKind) String() string {
	switch k {
	default:
		return "UNDEFINED"
	case Single:
		return "single"
	case Array:
		return "array"
	}
}

// Coordinate points to one akey of the dataset.
type Coordinate struct {
	// Object is an index of the object.
	Object int
	// DKey is an index of the dkey within the object.
	DKey int
	// Kind is a kind of the akey.
	Kind AKeyKind
	// AKey is an index of the akey among akeys of the same kind.
	AKey int
}

// DKeyName returns name of the dkey with the given index.
func DKeyName(i int) string {
	return "dkey " + strconv.Itoa(i)
}

// AKeyName returns name of the akey of the given kind with the given index.
func AKeyName(kind AKeyKind, i int) string {
	return "akey " + kind.String() + " " + strconv.Itoa(i)
}

// DKeyName returns name of the dkey the coordinate points to.
func (c Coordinate) DKeyName() string {
	return DKeyName(c.DKey)
}

// AKeyName returns name of the akey the coordinate points to.
func (c Coordinate) AKeyName() string {
	return AKeyName(c.Kind, c.AKey)
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("object %d, %s, %s", c.Object, c.DKeyName(), c.AKeyName())
}
