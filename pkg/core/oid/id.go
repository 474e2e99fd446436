package oid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Size is the length of the binary ID representation.
const Size = 16

// ID represents an object identifier assigned by a store at creation
// time. ID is a value type and is safe to copy.
//
// Zero ID is never assigned to a stored object.
type ID [Size]byte

// errZeroID is returned when decoding a string that represents zero ID.
var errZeroID = errors.New("zero object ID")

// New returns random non-zero ID.
func New() ID {
	for {
		id := ID(uuid.New())
		if !id.IsZero() {
			return id
		}
	}
}

// FromBytes decodes ID from its binary representation.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != Size {
		return id, fmt.Errorf("invalid object ID length %d, expected %d", len(b), Size)
	}

	copy(id[:], b)
	if id.IsZero() {
		return id, errZeroID
	}

	return id, nil
}

// IsZero checks whether ID is zero.
func (id ID) IsZero() bool {
	return id == ID{}
}

// String implements fmt.Stringer. Returns base58 encoding of the ID.
func (id ID) String() string {
	return base58.Encode(id[:])
}

// EncodeToString is an alias of String for symmetry with DecodeString.
func (id ID) EncodeToString() string {
	return id.String()
}

// DecodeString decodes base58 string into the ID.
func (id *ID) DecodeString(s string) error {
	b, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("decode base58: %w", err)
	}

	v, err := FromBytes(b)
	if err != nil {
		return err
	}

	*id = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	return id.DecodeString(string(text))
}
