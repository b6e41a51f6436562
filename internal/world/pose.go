package world

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pose is a planar position and heading in world coordinates.
// Heading is in radians, normalized to (-pi, pi].
type Pose struct {
	X, Y    float64
	Heading float64
}

// Position returns the pose's location as a vector.
func (p Pose) Position() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// DistanceTo returns the Euclidean distance from the pose to q.
func (p Pose) DistanceTo(q r2.Vec) float64 {
	return r2.Norm(r2.Sub(q, p.Position()))
}

// ToRobotFrame expresses world point q in the frame of p (x forward, y left).
func (p Pose) ToRobotFrame(q r2.Vec) r2.Vec {
	d := r2.Sub(q, p.Position())
	s, c := math.Sincos(p.Heading)
	return r2.Vec{
		X: c*d.X + s*d.Y,
		Y: -s*d.X + c*d.Y,
	}
}

// ToWorldFrame maps robot-frame point q back into world coordinates.
func (p Pose) ToWorldFrame(q r2.Vec) r2.Vec {
	s, c := math.Sincos(p.Heading)
	return r2.Vec{
		X: p.X + c*q.X - s*q.Y,
		Y: p.Y + s*q.X + c*q.Y,
	}
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3frad)", p.X, p.Y, p.Heading)
}

// NormalizeAngle wraps theta into (-pi, pi].
func NormalizeAngle(theta float64) float64 {
	if theta > -math.Pi && theta <= math.Pi {
		return theta
	}
	a := math.Mod(theta+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
