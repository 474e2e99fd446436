package dataset

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
)

var (
	// ErrInvalidShape is matched by *ConfigError.
	ErrInvalidShape = errors.New("invalid dataset shape")
	// ErrStorageOp is matched by *StorageOpError.
	ErrStorageOp = errors.New("storage operation failed")
	// ErrMismatch is matched by *MismatchError.
	ErrMismatch = errors.New("dataset mismatch")
)

// diffLimit is the maximum number of value bytes printed in the error text.
const diffLimit = 100

// ConfigError describes a problem with the Shape or the Registry detected
// before any storage operation.
type ConfigError struct {
	Field  string
	Reason string
}

func newConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidShape, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidShape) work.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidShape
}

// StorageOpError describes a failed storage operation. Storage operations are
// never retried.
type StorageOpError struct {
	// Op is the failed operation.
	Op string
	// Object is an index of the object, -1 for container operations.
	Object int
	// ID is the object identity if it is known.
	ID oid.ID
	// DKey and AKey are set for value operations.
	DKey, AKey string
	// Err is the error returned by the store.
	Err error
}

func (e *StorageOpError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrStorageOp, e.Op)

	if e.Object >= 0 {
		msg += fmt.Sprintf(" (object %d", e.Object)
		if !e.ID.IsZero() {
			msg += " " + e.ID.String()
		}
		if e.DKey != "" {
			msg += fmt.Sprintf(", %q, %q", e.DKey, e.AKey)
		}
		msg += ")"
	}

	return msg + ": " + e.Err.Error()
}

func (e *StorageOpError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorageOp) work.
func (e *StorageOpError) Is(target error) bool {
	return target == ErrStorageOp
}

// MismatchError describes the first divergence between the recomputed and
// the fetched content.
type MismatchError struct {
	Coordinate Coordinate
	// ID is the identity of the object.
	ID oid.ID
	// Extent is the position of the divergent extent, -1 for single values.
	Extent int
	// Expected and Actual are full values.
	Expected, Actual []byte
}

func (e *MismatchError) Error() string {
	where := e.Coordinate.String()
	if e.Extent >= 0 {
		where += fmt.Sprintf(", extent %d", e.Extent)
	}

	return fmt.Sprintf("%s at %s (%s): expected %q, got %q",
		ErrMismatch, where, e.ID, truncate(e.Expected), truncate(e.Actual))
}

// Is makes errors.Is(err, ErrMismatch) work.
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

func truncate(v []byte) string {
	if len(v) <= diffLimit {
		return string(v)
	}

	return string(v[:diffLimit]) + "..."
}
