package testutil_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nspcc-dev/neofs-dataset/internal/testutil"
	oidtest "github.com/nspcc-dev/neofs-dataset/pkg/core/oid/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewBufferedLogger(t *testing.T) {
	obj := oidtest.ID()

	for _, tc := range []struct {
		level zapcore.Level
		write func(*zap.Logger, string, ...zap.Field)
	}{
		{level: zap.DebugLevel, write: (*zap.Logger).Debug},
		{level: zap.InfoLevel, write: (*zap.Logger).Info},
		{level: zap.WarnLevel, write: (*zap.Logger).Warn},
		{level: zap.ErrorLevel, write: (*zap.Logger).Error},
	} {
		t.Run("level="+tc.level.String(), func(t *testing.T) {
			l, b := testutil.NewBufferedLogger(t, zap.DebugLevel)
			b.AssertEmpty()

			l.Debug("foo", zap.Int("int", 1), zap.Duration("dur", 123*time.Millisecond))
			tc.write(l, "bar", zap.Stringer("oid", obj))

			e1 := testutil.LogEntry{Level: zap.DebugLevel, Message: "foo", Fields: map[string]any{
				"int": json.Number("1"),
				"dur": json.Number("0.123"),
			}}
			e2 := testutil.LogEntry{Level: tc.level, Message: "bar", Fields: map[string]any{
				"oid": obj.String(),
			}}

			b.AssertEqual([]testutil.LogEntry{e1, e2})
			b.AssertContains(e2)
			require.Equal(t, e2, b.AssertMessage(tc.level, "bar"))
			require.Contains(t, b.Messages(tc.level), "bar")
		})
	}

	t.Run("min level", func(t *testing.T) {
		l, b := testutil.NewBufferedLogger(t, zap.WarnLevel)

		l.Debug("debug")
		l.Info("info")
		b.AssertEmpty()

		l.Error("error")
		require.Equal(t, []string{"error"}, b.Messages(zap.ErrorLevel))
	})
}
