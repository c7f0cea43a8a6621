package handoff_test

import (
	"testing"

	"github.com/teenjuna/handoff"
	"github.com/teenjuna/handoff/internal/testing/require"
)

func TestParsePolicy(t *testing.T) {
	for input, want := range map[string]handoff.Policy{
		"single":      handoff.Single(),
		" Single ":    handoff.Single(),
		"fixed:1":     handoff.Fixed(1),
		"fixed:16":    handoff.Fixed(16),
		"unbounded":   handoff.Unbounded(),
		"UNBOUNDED\n": handoff.Unbounded(),
	} {
		got, err := handoff.ParsePolicy(input)
		require.Nil(t, err)
		require.Equal(t, got, want)

		again, err := handoff.ParsePolicy(got.String())
		require.Nil(t, err)
		require.Equal(t, again, got)
	}

	for _, input := range []string{"", "fixed", "fixed:", "fixed:x", "fixed:0", "fixed:-2", "ring:4"} {
		_, err := handoff.ParsePolicy(input)
		require.ErrorIs(t, err, handoff.ErrConfig)
	}
}

func TestPolicyCapacity(t *testing.T) {
	capacity, bounded := handoff.Single().Capacity()
	require.Equal(t, capacity, 1)
	require.Equal(t, bounded, true)

	capacity, bounded = handoff.Fixed(8).Capacity()
	require.Equal(t, capacity, 8)
	require.Equal(t, bounded, true)

	_, bounded = handoff.Unbounded().Capacity()
	require.Equal(t, bounded, false)

	require.Equal(t, handoff.Policy{}.String(), "unset")
}

func TestPolicyText(t *testing.T) {
	var p handoff.Policy
	require.Nil(t, p.UnmarshalText([]byte("fixed:3")))
	require.Equal(t, p, handoff.Fixed(3))

	text, err := p.MarshalText()
	require.Nil(t, err)
	require.Equal(t, string(text), "fixed:3")

	require.ErrorIs(t, p.UnmarshalText([]byte("fixed:0")), handoff.ErrConfig)
	require.Equal(t, p, handoff.Fixed(3))

	_, err = handoff.Fixed(0).MarshalText()
	require.ErrorIs(t, err, handoff.ErrConfig)
}

func TestItem(t *testing.T) {
	a := handoff.NewItem("P1", 7)
	b := handoff.NewItem("P1", 7)
	require.Equal(t, a.Producer(), "P1")
	require.Equal(t, a.Seq(), 7)
	require.Equal(t, a.String(), "P1#7")
	require.Equal(t, a == b, false)
}
