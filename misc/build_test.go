package misc

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInfo(t *testing.T) {
	info := BuildInfo("NeoFS Dataset")

	require.Contains(t, info, "NeoFS Dataset\n")
	require.Contains(t, info, "Version: "+Version)
	require.Contains(t, info, runtime.Version())
}
