package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseTransitions(t *testing.T) {
	cases := []struct {
		from, to Phase
		ok       bool
	}{
		{PhaseIdle, PhaseShowingSplash, true},
		{PhaseIdle, PhaseShowingMain, true},
		{PhaseIdle, PhaseLoading, false},
		{PhaseShowingSplash, PhaseResolvingLocation, true},
		{PhaseResolvingLocation, PhaseExiting, true},
		{PhaseLoading, PhasePreloading, true},
		{PhasePreloading, PhaseExiting, false},
		{PhaseShowingMain, PhaseShowingSplash, true},
		{PhaseShowingMain, PhaseShowingMain, true},
		{PhaseExiting, PhaseShowingMain, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPhaseSettledAndString(t *testing.T) {
	assert.True(t, PhaseShowingMain.Settled())
	assert.True(t, PhaseExiting.Settled())
	assert.False(t, PhaseLoading.Settled())
	assert.Equal(t, "resolving-location", PhaseResolvingLocation.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
