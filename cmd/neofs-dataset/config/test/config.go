package configtest

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	"github.com/stretchr/testify/require"
)

func fromFile(t testing.TB, path string) *config.Config {
	c, err := config.New(path)
	require.NoError(t, err)

	return c
}

// ForEachFileType passes configs read from next files:
//   - `<pref>.yaml`;
//   - `<pref>.json`.
func ForEachFileType(t testing.TB, pref string, f func(*config.Config)) {
	for _, ext := range []string{".yaml", ".json"} {
		f(fromFile(t, pref+ext))
	}
}

// ForEnvFileType passes config read from the environment variables listed
// in `<pref>.env` file.
func ForEnvFileType(t testing.TB, pref string, f func(*config.Config)) {
	LoadEnv(t, pref+".env")
	f(EmptyConfig(t))
}

// LoadEnv sets environment variables listed in the file for the test
// duration. Each line is KEY=VALUE; value may be quoted.
func LoadEnv(t testing.TB, path string) {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok, line)

		t.Setenv(k, strings.Trim(v, `"`))
	}

	require.NoError(t, s.Err())
}

// EmptyConfig returns config without any values and sections.
func EmptyConfig(t testing.TB) *config.Config {
	return fromFile(t, "")
}
