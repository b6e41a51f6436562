package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNormalizeAngle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4*math.Pi + 0.25, 0.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9, "NormalizeAngle(%v)", tt.in)
	}
}

func TestPoseFrames_RoundTrip(t *testing.T) {
	t.Parallel()

	p := Pose{X: 3, Y: -1, Heading: 0.7}
	q := r2.Vec{X: 5.5, Y: 2.25}

	local := p.ToRobotFrame(q)
	back := p.ToWorldFrame(local)

	assert.InDelta(t, q.X, back.X, 1e-12)
	assert.InDelta(t, q.Y, back.Y, 1e-12)
	assert.InDelta(t, p.DistanceTo(q), r2.Norm(local), 1e-12)
}

func TestPoseToRobotFrame_LeftIsPositive(t *testing.T) {
	t.Parallel()

	// Facing +Y; a point at +X world lies to the robot's right.
	p := Pose{Heading: math.Pi / 2}
	local := p.ToRobotFrame(r2.Vec{X: 1})

	assert.InDelta(t, 0, local.X, 1e-12)
	assert.InDelta(t, -1, local.Y, 1e-12)
}
