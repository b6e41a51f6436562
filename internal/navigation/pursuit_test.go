package navigation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/config"
	"github.com/banshee-data/rover.sim/internal/lidar"
	"github.com/banshee-data/rover.sim/internal/world"
)

var openRanges = lidar.Ranges{All: 4, Front: 4, Left: 4, Right: 4}

func mustPath(t *testing.T, pts ...r2.Vec) Path {
	t.Helper()
	p, err := NewPath(pts)
	require.NoError(t, err)
	return p
}

func mustPursuer(t *testing.T, cfg Config, path Path) *Pursuer {
	t.Helper()
	p, err := NewPursuer(cfg, path)
	require.NoError(t, err)
	return p
}

func straightPath(t *testing.T) Path {
	t.Helper()
	return mustPath(t, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 5, Y: 0})
}

func TestNewPath(t *testing.T) {
	t.Parallel()

	_, err := NewPath(nil)
	assert.True(t, errors.Is(err, ErrEmptyPath))

	src := []r2.Vec{{X: 1, Y: 2}, {X: 3, Y: 4}}
	p, err := NewPath(src)
	require.NoError(t, err)
	src[0] = r2.Vec{X: 9, Y: 9}
	assert.Equal(t, r2.Vec{X: 1, Y: 2}, p.At(0), "path must not alias its input")
	assert.Equal(t, r2.Vec{X: 3, Y: 4}, p.Last())
	assert.Equal(t, 2, p.Len())
}

func TestNewPursuerValidation(t *testing.T) {
	t.Parallel()

	path := straightPath(t)

	cfg := DefaultConfig()
	cfg.Lookahead = 0
	_, err := NewPursuer(cfg, path)
	assert.True(t, errors.Is(err, ErrInvalidLookahead), "got %v", err)

	cfg = DefaultConfig()
	cfg.SlowDistance = cfg.MinDistance
	_, err = NewPursuer(cfg, path)
	assert.Error(t, err)

	_, err = NewPursuer(DefaultConfig(), Path{})
	assert.True(t, errors.Is(err, ErrEmptyPath), "got %v", err)
}

func TestPursuerStep_Goal(t *testing.T) {
	t.Parallel()

	p := mustPursuer(t, DefaultConfig(), straightPath(t))
	// Goal check comes before any range test.
	res := p.Step(world.Pose{X: 4.8}, lidar.Ranges{})
	assert.True(t, res.Reached)
	assert.Equal(t, RegimeGoal, res.Regime)
	assert.True(t, res.Command.IsZero())
	assert.Equal(t, r2.Vec{X: 5, Y: 0}, res.Target)
}

func TestPursuerStep_CruiseStraight(t *testing.T) {
	t.Parallel()

	p := mustPursuer(t, DefaultConfig(), straightPath(t))
	res := p.Step(world.Pose{}, openRanges)
	assert.Equal(t, RegimeCruise, res.Regime)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, r2.Vec{X: 1, Y: 0}, res.Target)
	assert.Equal(t, Command{V: 6, W: 0}, res.Command)
}

func TestPursuerStep_Curvature(t *testing.T) {
	t.Parallel()

	p := mustPursuer(t, DefaultConfig(), mustPath(t, r2.Vec{}, r2.Vec{X: 1, Y: 0.01}))
	res := p.Step(world.Pose{}, openRanges)
	// ly = 0.01, curvature = 2*0.01/0.09
	assert.InDelta(t, 0.2222222, res.Curvature, 1e-6)
	assert.InDelta(t, 1.3333333, res.Command.W, 1e-6)
	assert.Equal(t, 6.0, res.Command.V)

	// Sharp turns saturate at MaxW.
	p = mustPursuer(t, DefaultConfig(), mustPath(t, r2.Vec{}, r2.Vec{X: 0, Y: -1}))
	res = p.Step(world.Pose{}, openRanges)
	assert.Equal(t, -6.0, res.Command.W)
}

func TestPursuerStep_Regimes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ranges lidar.Ranges
		regime Regime
		v, w   float64
	}{
		{"stop", lidar.Ranges{All: 0.3, Front: 1, Left: 1, Right: 1}, RegimeStop, 0, 0},
		{"reverse", lidar.Ranges{All: 0.5, Front: 0.25, Left: 1, Right: 1}, RegimeReverse, -1.2, 0},
		// scale = (0.55-0.3)/(0.8-0.3); bias = 1.5*(1.0-0.6)/(1.0+0.6+0.01)
		{"slow", lidar.Ranges{All: 0.5, Front: 0.55, Left: 0.6, Right: 1.0}, RegimeSlow, 3, 0.3726708},
		{"slow balanced", lidar.Ranges{All: 0.5, Front: 0.8 - 1e-9, Left: 1, Right: 1}, RegimeSlow, 6, 0},
		{"cruise at slow distance", lidar.Ranges{All: 0.8, Front: 0.8, Left: 0.8, Right: 0.8}, RegimeCruise, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPursuer(t, DefaultConfig(), straightPath(t))
			res := p.Step(world.Pose{}, tt.ranges)
			assert.Equal(t, tt.regime, res.Regime)
			assert.InDelta(t, tt.v, res.Command.V, 1e-6)
			assert.InDelta(t, tt.w, res.Command.W, 1e-6)
			assert.False(t, res.Reached)
		})
	}
}

func TestPursuerStep_EpsilonGuardsBias(t *testing.T) {
	t.Parallel()

	p := mustPursuer(t, DefaultConfig(), straightPath(t))
	res := p.Step(world.Pose{}, lidar.Ranges{All: 0.5, Front: 0.5, Left: 0, Right: 0})
	assert.Equal(t, RegimeSlow, res.Regime)
	assert.Equal(t, 0.0, res.Command.W)
}

func TestPursuerIndexMonotonic(t *testing.T) {
	t.Parallel()

	p := mustPursuer(t, DefaultConfig(), straightPath(t))

	res := p.Step(world.Pose{}, openRanges)
	require.Equal(t, 1, res.Index)

	res = p.Step(world.Pose{X: 0.9}, openRanges)
	require.Equal(t, 2, res.Index)

	// Driving back to the start never rewinds the index.
	res = p.Step(world.Pose{}, openRanges)
	assert.Equal(t, 2, res.Index)
	assert.Equal(t, 2, p.Index())
}

func TestPursuerLookaheadFallback(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.GoalRadius = 0.1
	p := mustPursuer(t, cfg, mustPath(t, r2.Vec{}, r2.Vec{X: 0.2, Y: 0}))

	res := p.Step(world.Pose{}, openRanges)
	assert.Equal(t, r2.Vec{X: 0.2, Y: 0}, res.Target)
	assert.Equal(t, 0, res.Index, "index is kept when no waypoint is beyond the lookahead")
	assert.Equal(t, RegimeCruise, res.Regime)
}

func TestConfigFromTuning(t *testing.T) {
	t.Parallel()

	got := ConfigFromTuning(config.MustLoadDefaultConfig())
	want := DefaultConfig()
	want.Policy = PolicyContinuous
	assert.Equal(t, want, got)
}
