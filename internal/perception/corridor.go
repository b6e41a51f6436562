package perception

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/config"
)

// Observation is an obstacle point in the robot frame. Forward is along
// the heading; Lateral is positive to the left.
type Observation struct {
	Forward float64
	Lateral float64
}

// Left reports whether the observation lies on the left of the heading.
func (o Observation) Left() bool { return o.Lateral > 0 }

// Right reports whether the observation lies on the right of the heading.
func (o Observation) Right() bool { return o.Lateral < 0 }

// Corridor is the rectangular region in front of the rover that is
// considered blocking.
type Corridor struct {
	HalfWidth    float64 // robot radius (default: 0.3)
	StopDistance float64 // forward reach (default: 0.4)
}

// DefaultCorridor returns the corridor sized for the reference rover.
func DefaultCorridor() Corridor {
	return Corridor{HalfWidth: 0.3, StopDistance: 0.4}
}

// CorridorFromTuning builds a Corridor from a loaded TuningConfig.
func CorridorFromTuning(cfg *config.TuningConfig) Corridor {
	return Corridor{
		HalfWidth:    cfg.GetCorridorHalfWidth(),
		StopDistance: cfg.GetCorridorStopDistance(),
	}
}

// Contains reports whether robot-frame point p is inside the corridor.
// Points exactly on the rover (forward == 0) are excluded.
func (c Corridor) Contains(p r2.Vec) bool {
	return p.X > 0 && math.Abs(p.Y) <= c.HalfWidth && p.X <= c.StopDistance
}

// Filter returns the observations for the points inside the corridor,
// preserving input order. The result is nil when nothing is close.
func (c Corridor) Filter(points []r2.Vec) []Observation {
	var out []Observation
	for _, p := range points {
		if c.Contains(p) {
			out = append(out, Observation{Forward: p.X, Lateral: p.Y})
		}
	}
	return out
}

// Count tallies observations by side. Points on the centre line count
// toward neither.
func Count(obs []Observation) (left, right int) {
	for _, o := range obs {
		switch {
		case o.Left():
			left++
		case o.Right():
			right++
		}
	}
	return left, right
}
