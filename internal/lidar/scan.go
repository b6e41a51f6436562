package lidar

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/world"
)

// Beam is one range sample. Point is in the robot frame; RayStart, RayEnd
// are world-frame and exist for renderers only.
type Beam struct {
	Offset   float64 // angle from heading, radians
	Range    float64
	Point    r2.Vec
	RayStart r2.Vec
	RayEnd   r2.Vec
	Hit      bool
}

// Scan is the result of a single sweep. It holds no state across ticks.
type Scan struct {
	Pose     world.Pose // pose the scan was taken from
	MaxRange float64
	Beams    []Beam
}

// Ranges returns the per-beam ranges in beam order.
func (s Scan) Ranges() []float64 {
	out := make([]float64, len(s.Beams))
	for i, b := range s.Beams {
		out[i] = b.Range
	}
	return out
}

// Points returns the robot-frame beam endpoints in beam order.
func (s Scan) Points() []r2.Vec {
	out := make([]r2.Vec, len(s.Beams))
	for i, b := range s.Beams {
		out[i] = b.Point
	}
	return out
}

// Hits returns the world-frame endpoints of beams that struck an obstacle.
func (s Scan) Hits() []r2.Vec {
	var out []r2.Vec
	for _, b := range s.Beams {
		if b.Hit {
			out = append(out, b.RayEnd)
		}
	}
	return out
}

// MinAll returns the smallest range across every beam.
func (s Scan) MinAll() float64 {
	m := s.MaxRange
	for _, b := range s.Beams {
		m = math.Min(m, b.Range)
	}
	return m
}

// Min returns the smallest range across the beams in set. Indices outside
// the scan are ignored; an empty set yields MaxRange.
func (s Scan) Min(set BeamSet) float64 {
	m := s.MaxRange
	for _, i := range set {
		if i < 0 || i >= len(s.Beams) {
			continue
		}
		m = math.Min(m, s.Beams[i].Range)
	}
	return m
}

// Clone returns a deep copy so that observers cannot alias simulator memory.
func (s Scan) Clone() Scan {
	out := s
	out.Beams = append([]Beam(nil), s.Beams...)
	return out
}
