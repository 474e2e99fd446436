package cmderr

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes of the command line tools.
const (
	// CodeFailure is returned on any failure without a special code.
	CodeFailure = 1
	// CodeMismatch is returned when checked data differs from the expected.
	CodeMismatch = 2
)

// ExitErr specific error for ExitOnErr function that passes the exit code and error caused.
type ExitErr struct {
	Code  int
	Cause error
}

func (x ExitErr) Error() string { return x.Cause.Error() }

// Unwrap returns the cause.
func (x ExitErr) Unwrap() error { return x.Cause }

// Code returns exit code for err: zero for nil, code of the wrapped ExitErr
// or CodeFailure otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var e ExitErr
	if errors.As(err, &e) {
		return e.Code
	}

	return CodeFailure
}

// ExitOnErr writes error to os.Stderr and calls os.Exit with the code
// returned by Code. Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(Code(err))
	}
}
