package odometry

import (
	"math"
	"math/rand"

	"github.com/banshee-data/rover.sim/internal/world"
)

// PoseError is the divergence between the estimate and the truth.
type PoseError struct {
	Position float64 // Euclidean distance
	Heading  float64 // signed, estimate minus truth, in (-pi, pi]
}

// Tracker integrates the true and estimated rover poses.
// Not safe for concurrent use.
type Tracker struct {
	truth    world.Pose
	estimate world.Pose
	drift    DriftConfig
	rng      *rand.Rand
}

// NewTracker returns a tracker with both poses at start.
func NewTracker(start world.Pose, drift DriftConfig) (*Tracker, error) {
	if err := drift.Validate(); err != nil {
		return nil, err
	}
	start.Heading = world.NormalizeAngle(start.Heading)
	return &Tracker{
		truth:    start,
		estimate: start,
		drift:    drift,
		rng:      rand.New(rand.NewSource(drift.Seed)),
	}, nil
}

// Truth returns the ground-truth pose.
func (t *Tracker) Truth() world.Pose { return t.truth }

// Estimate returns the odometry estimate.
func (t *Tracker) Estimate() world.Pose { return t.estimate }

// Reset places both poses at p. The drift sequence is not reseeded.
func (t *Tracker) Reset(p world.Pose) {
	p.Heading = world.NormalizeAngle(p.Heading)
	t.truth = p
	t.estimate = p
}

// Update advances both poses by one step of length dt under command (v, w).
func (t *Tracker) Update(v, w, dt float64) {
	t.truth = integrate(t.truth, v, w, dt)

	ve, we := v, w
	if (v != 0 || w != 0) && !t.drift.zero() {
		ve = v*(1+t.drift.LinearScaleError) + t.rng.NormFloat64()*t.drift.LinearNoise
		we = w + t.drift.AngularBias + t.rng.NormFloat64()*t.drift.AngularNoise
	}
	t.estimate = integrate(t.estimate, ve, we, dt)
}

// Error returns how far the estimate has drifted from the truth.
func (t *Tracker) Error() PoseError {
	return PoseError{
		Position: math.Hypot(t.estimate.X-t.truth.X, t.estimate.Y-t.truth.Y),
		Heading:  world.NormalizeAngle(t.estimate.Heading - t.truth.Heading),
	}
}

func integrate(p world.Pose, v, w, dt float64) world.Pose {
	h := world.NormalizeAngle(p.Heading + w*dt)
	s, c := math.Sincos(h)
	return world.Pose{
		X:       p.X + v*c*dt,
		Y:       p.Y + v*s*dt,
		Heading: h,
	}
}
