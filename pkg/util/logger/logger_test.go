package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(Prm{})
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.InfoLevel))
	require.False(t, l.Core().Enabled(zap.DebugLevel))

	ts := false
	l, err = NewLogger(Prm{Level: "debug", Encoding: "json", Timestamp: &ts})
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger(Prm{Level: "loud"})
	require.Error(t, err)

	_, err = NewLogger(Prm{Encoding: "xml"})
	require.Error(t, err)
}
