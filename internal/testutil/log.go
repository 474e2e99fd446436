// Package testutil provides helpers shared by the tests of the module.
package testutil

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

const (
	logLevelKey   = "level"
	logMessageKey = "msg"
	logTimeKey    = "ts"
)

// LogEntry is a decoded [zap.Logger] entry.
type LogEntry struct {
	Level   zapcore.Level
	Message string
	// Integer values are represented as [json.Number].
	Fields map[string]any
}

// LogBuffer keeps entries written by the logger returned from
// NewBufferedLogger.
type LogBuffer struct {
	t   testing.TB
	mtx sync.Mutex
	b   zaptest.Buffer
}

// NewBufferedLogger returns logger writing JSON entries of minLevel and
// above to the memory buffer.
func NewBufferedLogger(t testing.TB, minLevel zapcore.Level) (*zap.Logger, *LogBuffer) {
	lb := &LogBuffer{t: t}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.LevelKey = logLevelKey
	encCfg.MessageKey = logMessageKey
	encCfg.TimeKey = logTimeKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(lb),
		minLevel,
	)

	return zap.New(core), lb
}

// Write implements io.Writer.
func (x *LogBuffer) Write(p []byte) (int, error) {
	x.mtx.Lock()
	defer x.mtx.Unlock()

	return x.b.Write(p)
}

// Entries returns all the entries written so far.
func (x *LogBuffer) Entries() []LogEntry {
	x.mtx.Lock()
	lines := x.b.Lines()
	x.mtx.Unlock()

	res := make([]LogEntry, len(lines))
	for i := range lines {
		res[i] = decodeEntry(x.t, lines[i])
	}

	return res
}

// Messages returns messages of the entries with the given level.
func (x *LogBuffer) Messages(lvl zapcore.Level) []string {
	var res []string

	for _, e := range x.Entries() {
		if e.Level == lvl {
			res = append(res, e.Message)
		}
	}

	return res
}

// AssertEmpty asserts that nothing was logged.
func (x *LogBuffer) AssertEmpty() {
	require.Empty(x.t, x.Entries())
}

// AssertEqual asserts that log consists of given ordered entries.
func (x *LogBuffer) AssertEqual(es []LogEntry) {
	got := x.Entries()
	require.Len(x.t, got, len(es))
	for i := range es {
		require.Equal(x.t, es[i], got[i], i)
	}
}

// AssertContains asserts that log contains the entry.
func (x *LogBuffer) AssertContains(e LogEntry) {
	require.Contains(x.t, x.Entries(), e)
}

// AssertMessage asserts that log contains an entry with the given level and
// message and returns the first such entry.
func (x *LogBuffer) AssertMessage(lvl zapcore.Level, msg string) LogEntry {
	for _, e := range x.Entries() {
		if e.Level == lvl && e.Message == msg {
			return e
		}
	}

	require.Failf(x.t, "missing log entry", "level %s, message %q", lvl, msg)

	return LogEntry{}
}

func decodeEntry(t testing.TB, line string) LogEntry {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	var m map[string]any
	require.NoError(t, dec.Decode(&m), line)

	lvl, ok := m[logLevelKey].(string)
	require.True(t, ok, line)

	var (
		e   LogEntry
		err error
	)

	e.Level, err = zapcore.ParseLevel(lvl)
	require.NoError(t, err, line)

	e.Message, ok = m[logMessageKey].(string)
	require.True(t, ok, line)

	delete(m, logTimeKey)
	delete(m, logLevelKey)
	delete(m, logMessageKey)
	e.Fields = m

	return e
}
