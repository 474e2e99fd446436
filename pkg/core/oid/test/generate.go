package oidtest

import (
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
)

// ID returns random oid.ID.
func ID() oid.ID {
	return oid.New()
}

// IDs returns n random oid.ID values.
func IDs(n int) []oid.ID {
	res := make([]oid.ID, n)
	for i := range res {
		res[i] = ID()
	}

	return res
}
