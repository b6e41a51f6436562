package navigation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/rover.sim/internal/lidar"
	"github.com/banshee-data/rover.sim/internal/perception"
	"github.com/banshee-data/rover.sim/internal/world"
)

func newComposer(t *testing.T, policy AvoidancePolicy) *Composer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Policy = policy
	c, err := NewComposer(mustPursuer(t, cfg, straightPath(t)))
	require.NoError(t, err)
	return c
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"continuous", "discrete", "combined"} {
		p, err := ParsePolicy(s)
		require.NoError(t, err)
		assert.Equal(t, AvoidancePolicy(s), p)
	}
	for _, s := range []string{"", "Continuous", "vfh"} {
		_, err := ParsePolicy(s)
		assert.True(t, errors.Is(err, ErrInvalidPolicy), "ParsePolicy(%q) = %v", s, err)
	}
}

func TestNewComposerRequiresPolicy(t *testing.T) {
	t.Parallel()

	_, err := NewComposer(mustPursuer(t, DefaultConfig(), straightPath(t)))
	assert.True(t, errors.Is(err, ErrInvalidPolicy))
}

// slowRanges puts the pursuer in the slow regime: v = 3.
var slowRanges = lidar.Ranges{All: 0.5, Front: 0.55, Left: 1, Right: 1}

func TestComposer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		policy     AvoidancePolicy
		ranges     lidar.Ranges
		obs        []perception.Observation
		want       Command
		decision   Decision
		overridden bool
	}{
		{"continuous ignores decision", PolicyContinuous, slowRanges, []perception.Observation{obsLeft}, Command{V: 3}, Right, false},
		{"discrete forward steers at full speed", PolicyDiscrete, slowRanges, nil, Command{V: 6}, Forward, false},
		{"discrete stop", PolicyDiscrete, openRanges, []perception.Observation{obsLeft, obsRight}, Command{}, Stop, true},
		{"discrete left", PolicyDiscrete, openRanges, []perception.Observation{obsRight}, Command{W: 2}, Left, true},
		{"discrete right", PolicyDiscrete, openRanges, []perception.Observation{obsLeft}, Command{W: -2}, Right, true},
		{"combined forward keeps pursuit", PolicyCombined, slowRanges, nil, Command{V: 3}, Forward, false},
		{"combined override", PolicyCombined, slowRanges, []perception.Observation{obsLeft}, Command{W: -2}, Right, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newComposer(t, tt.policy)
			out := c.Step(world.Pose{}, tt.ranges, tt.obs)
			assert.InDelta(t, tt.want.V, out.Command.V, 1e-9)
			assert.InDelta(t, tt.want.W, out.Command.W, 1e-9)
			assert.Equal(t, tt.decision, out.Decision)
			assert.Equal(t, tt.overridden, out.Overridden)
		})
	}
}

func TestComposerGoalDominates(t *testing.T) {
	t.Parallel()

	for _, policy := range []AvoidancePolicy{PolicyContinuous, PolicyDiscrete, PolicyCombined} {
		c := newComposer(t, policy)
		out := c.Step(world.Pose{X: 4.9}, openRanges, []perception.Observation{obsRight})
		assert.True(t, out.Command.IsZero(), "policy %s", policy)
		assert.True(t, out.Pursuit.Reached, "policy %s", policy)
		assert.Equal(t, Left, out.Decision)
	}
}

func TestCommandClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Command{V: 6, W: -6}, Command{V: 9, W: -7.5}.Clamp(6, 6))
	assert.Equal(t, Command{V: -1, W: 2}, Command{V: -1, W: 2}.Clamp(6, 6))
}
