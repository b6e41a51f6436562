package lidar

import "math"

// BeamSet is an ordered list of beam indices.
type BeamSet []int

// Sectors groups beams by direction relative to the heading.
// Left covers (0, half], Right covers [-half, 0), Front covers both plus
// the beam straight ahead.
type Sectors struct {
	Front BeamSet
	Left  BeamSet
	Right BeamSet
}

// NewSectors derives the beam groupings from the scanner geometry.
// With 36 beams at 10 degrees and a 50 degree half-angle this yields
// Front = 0..5 and 31..35, Left = 1..5, Right = 31..35.
func NewSectors(cfg Config) Sectors {
	var s Sectors
	const eps = 1e-9
	for i := 0; i < cfg.Beams; i++ {
		off := signedOffsetDeg(float64(i) * cfg.AngleStepDeg)
		if math.Abs(off) > cfg.SectorHalfAngleDeg+eps {
			continue
		}
		s.Front = append(s.Front, i)
		switch {
		case off > eps:
			s.Left = append(s.Left, i)
		case off < -eps:
			s.Right = append(s.Right, i)
		}
	}
	return s
}

// Ranges summarizes a scan over the sectors.
type Ranges struct {
	All   float64
	Front float64
	Left  float64
	Right float64
}

// Summarize returns the minimum ranges per sector for scan.
func (s Sectors) Summarize(scan Scan) Ranges {
	return Ranges{
		All:   scan.MinAll(),
		Front: scan.Min(s.Front),
		Left:  scan.Min(s.Left),
		Right: scan.Min(s.Right),
	}
}
