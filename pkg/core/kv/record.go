package kv

import (
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
)

// RecordKind is a type of the stored value.
type RecordKind uint8

const (
	// RecordObject carries object creation parameters only.
	RecordObject RecordKind = iota
	// RecordSingle carries single value of an akey.
	RecordSingle
	// RecordArray carries all extents of an array akey.
	RecordArray
)

// String implements fmt.Stringer.
func (k RecordKind) String() string {
	switch k {
	default:
		return "UNDEFINED"
	case RecordObject:
		return "OBJECT"
	case RecordSingle:
		return "SINGLE"
	case RecordArray:
		return "ARRAY"
	}
}

// Record is a self-contained unit of a container dump. Each object is
// dumped as one RecordObject record followed by its value records.
type Record struct {
	Kind    RecordKind  `cbor:"1,keyasint"`
	Object  oid.ID      `cbor:"2,keyasint"`
	Rank    uint32      `cbor:"3,keyasint,omitempty"`
	Class   ObjectClass `cbor:"4,keyasint,omitempty"`
	DKey    string      `cbor:"5,keyasint,omitempty"`
	AKey    string      `cbor:"6,keyasint,omitempty"`
	Value   []byte      `cbor:"7,keyasint,omitempty"`
	Extents [][]byte    `cbor:"8,keyasint,omitempty"`
}

// Dumper is a Container which can walk over all its records.
type Dumper interface {
	Container
	// Iterate passes all stored records to f in the key order. Iteration
	// stops on the first error returned by f. f may write to the same store,
	// but records written during the iteration may be skipped.
	Iterate(f func(Record) error) error
}

// Restorer is a Container which can write dumped records preserving object
// identities.
type Restorer interface {
	Container
	Restore(Record) error
}
