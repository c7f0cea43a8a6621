package handoff_test

import (
	"testing"

	"github.com/teenjuna/handoff"
	"github.com/teenjuna/handoff/internal/testing/require"
)

func TestOptions(t *testing.T) {
	require.PanicWithError(t, "prometheus can't be nil", func() {
		_ = handoff.WithPrometheus(nil)
	})

	require.PanicWithError(t, "queue size can't be < 0", func() {
		_ = handoff.WithQueueSize(-1)
	})
}

func TestPrometheusDefaults(t *testing.T) {
	c := handoff.Prometheus(nil, nil, func(c *handoff.PrometheusConfig) {
		c.Subsystem = "shelf"
	})
	require.Equal(t, c.Namespace, "handoff")
	require.Equal(t, c.Subsystem, "shelf")
	require.Equal(t, c.Items.Name, "items")
	require.Equal(t, c.WaitSeconds.Name, "wait_seconds")

	// Metrics that are not registered anywhere still work.
	buffer, err := handoff.New[int](handoff.Single(), handoff.WithPrometheus(c))
	require.Nil(t, err)
	require.Equal(t, buffer.TryPut(1), true)
}
