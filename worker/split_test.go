package worker

import (
	"testing"

	"github.com/teenjuna/handoff/internal/testing/require"
)

func TestSplit(t *testing.T) {
	require.Equal(t, split(10, 3), []int{4, 3, 3})
	require.Equal(t, split(9, 3), []int{3, 3, 3})
	require.Equal(t, split(2, 4), []int{1, 1, 0, 0})
	require.Equal(t, split(0, 2), []int{0, 0})
}
