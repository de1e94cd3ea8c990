package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The page sizes and paths are load-bearing: handlers, middleware and
// clients all agree on them, so they are pinned here.
func TestFixedValues(t *testing.T) {
	require.Equal(t, 8, TaskPageSize)
	require.Equal(t, 10, WorkerPageSize)
	require.Equal(t, 1, MinPage)
	require.Equal(t, 8, MinPasswordLength)
	require.Equal(t, "/accounts/login/", LoginPath)
	require.Equal(t, "/", IndexPath)
}
