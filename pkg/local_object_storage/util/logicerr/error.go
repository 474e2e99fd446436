package logicerr

import (
	"errors"
	"fmt"
)

// Error marks errors caused by the stored data or the caller's request
// rather than by a failure of the underlying database.
var Error = errors.New("logical error")

// New returns logical error with the provided message.
func New(msg string) error {
	return Wrap(errors.New(msg))
}

// Wrap marks arbitrary error as a logical one.
func Wrap(err error) error {
	return fmt.Errorf("%w: %w", Error, err)
}

// Is checks whether err is a logical error.
func Is(err error) bool {
	return errors.Is(err, Error)
}
