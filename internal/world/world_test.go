package world

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/config"
)

func TestObstacleContains_ClosedBoundary(t *testing.T) {
	t.Parallel()

	o, err := NewObstacle("box", 1, 2, 3, 4)
	require.NoError(t, err)

	edges := []r2.Vec{
		{X: 1, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 6}, {X: 1, Y: 6}, // corners
		{X: 2.5, Y: 2}, {X: 4, Y: 3}, {X: 2, Y: 6}, {X: 1, Y: 5}, // edges
	}
	for _, p := range edges {
		assert.Truef(t, o.Contains(p), "boundary point %v should be inside", p)
	}

	assert.True(t, o.Contains(r2.Vec{X: 2, Y: 3}))
	assert.False(t, o.Contains(r2.Vec{X: 0.999, Y: 3}))
	assert.False(t, o.Contains(r2.Vec{X: 2, Y: 6.0001}))
}

func TestObstacleCorners_Order(t *testing.T) {
	t.Parallel()

	o, err := NewObstacle("box", 1, 2, 3, 4)
	require.NoError(t, err)

	assert.Equal(t, []r2.Vec{
		{X: 1, Y: 2},
		{X: 4, Y: 2},
		{X: 4, Y: 6},
		{X: 1, Y: 6},
	}, o.Corners())
	assert.Equal(t, 3.0, o.Width())
	assert.Equal(t, 4.0, o.Height())
	assert.Equal(t, r2.Vec{X: 1, Y: 2}, o.Origin())
}

func TestNewObstacle_RejectsDegenerateSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 1},
		{"zero height", 1, 0},
		{"negative width", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewObstacle("bad", 0, 0, tt.w, tt.h)
			assert.True(t, errors.Is(err, ErrInvalidObstacle))
		})
	}
}

func TestDefaultArena(t *testing.T) {
	t.Parallel()

	w := DefaultArena()
	require.Len(t, w.Obstacles(), 10)
	assert.Equal(t, ArenaSize, w.Size())

	// Walls.
	assert.True(t, w.Contains(r2.Vec{X: 10, Y: 0.1}))
	assert.True(t, w.Contains(r2.Vec{X: 19.8, Y: 10}))
	// Interior block-f spans (9,9)-(11,11).
	assert.True(t, w.Contains(r2.Vec{X: 10, Y: 10}))
	// Open floor.
	assert.False(t, w.Contains(r2.Vec{X: 2, Y: 2}))
}

func TestWorldObstacles_ReturnsCopy(t *testing.T) {
	t.Parallel()

	w := DefaultArena()
	obs := w.Obstacles()
	obs[0] = Obstacle{Name: "mutated"}

	assert.Equal(t, "wall-bottom", w.Obstacles()[0].Name)
}

func TestNew_RejectsBadArena(t *testing.T) {
	t.Parallel()

	_, err := New(1, 0.6, nil)
	assert.ErrorIs(t, err, ErrInvalidObstacle)

	_, err = New(10, 0.3, []Rect{{Name: "flat", X: 1, Y: 1, Width: 1, Height: 0}})
	assert.ErrorIs(t, err, ErrInvalidObstacle)
}

func TestFromTuning(t *testing.T) {
	w, err := FromTuning(config.EmptyTuningConfig())
	require.NoError(t, err)
	assert.Len(t, w.Obstacles(), 10)
	assert.Equal(t, ArenaSize, w.Size())

	cfg := config.EmptyTuningConfig()
	cfg.Obstacles = []config.ObstacleConfig{{Name: "only", X: 5, Y: 5, Width: 1, Height: 1}}
	w, err = FromTuning(cfg)
	require.NoError(t, err)
	obs := w.Obstacles()
	require.Len(t, obs, 5)
	assert.Equal(t, "only", obs[4].Name)
	assert.True(t, w.Contains(r2.Vec{X: 5.5, Y: 5.5}))
	assert.False(t, w.Contains(r2.Vec{X: 9.5, Y: 9.5}), "default blocks replaced")
}

func TestStartPoseFromTuning(t *testing.T) {
	cfg := config.EmptyTuningConfig()
	x, h := 3.0, 3*math.Pi/2
	cfg.StartX = &x
	cfg.StartHeading = &h
	p := StartPoseFromTuning(cfg)
	assert.Equal(t, 3.0, p.X)
	assert.Equal(t, 2.0, p.Y)
	assert.InDelta(t, -math.Pi/2, p.Heading, 1e-12)
}
