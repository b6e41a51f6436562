package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/rover.sim/internal/perception"
)

var (
	obsLeft   = perception.Observation{Forward: 0.2, Lateral: 0.1}
	obsRight  = perception.Observation{Forward: 0.2, Lateral: -0.1}
	obsCentre = perception.Observation{Forward: 0.2, Lateral: 0}
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		obs  []perception.Observation
		want Decision
	}{
		{"nothing", nil, Forward},
		{"balanced", []perception.Observation{obsLeft, obsRight}, Stop},
		{"more left", []perception.Observation{obsLeft, obsLeft, obsRight}, Right},
		{"more right", []perception.Observation{obsRight, obsRight, obsLeft}, Left},
		{"only left", []perception.Observation{obsLeft}, Right},
		{"only right", []perception.Observation{obsRight}, Left},
		{"centre only", []perception.Observation{obsCentre}, Left},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.obs))
		})
	}
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	for _, d := range []Decision{Forward, Stop, Left, Right} {
		got, err := ParseDecision(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	got, err := ParseDecision(" left ")
	require.NoError(t, err)
	assert.Equal(t, Left, got)

	_, err = ParseDecision("BACK")
	assert.Error(t, err)
	assert.Equal(t, "Decision(9)", Decision(9).String())
}
