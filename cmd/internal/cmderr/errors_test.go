package cmderr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nspcc-dev/neofs-dataset/cmd/internal/cmderr"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	cause := errors.New("cause")

	require.Zero(t, cmderr.Code(nil))
	require.Equal(t, cmderr.CodeFailure, cmderr.Code(cause))

	err := fmt.Errorf("wrapped: %w", cmderr.ExitErr{Code: cmderr.CodeMismatch, Cause: cause})
	require.Equal(t, cmderr.CodeMismatch, cmderr.Code(err))
	require.ErrorIs(t, err, cause)
	require.EqualError(t, err, "wrapped: cause")
}
