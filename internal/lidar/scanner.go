package lidar

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/world"
)

// Scanner produces simulated range scans against a static world.
// A Scanner is not safe for concurrent use: each scan draws from its
// seeded noise source.
type Scanner struct {
	cfg     Config
	world   *world.World
	rng     *rand.Rand
	offsets []float64 // beam offsets from heading, radians
	sectors Sectors
}

// NewScanner validates cfg and builds a scanner over w.
func NewScanner(cfg Config, w *world.World) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	offsets := make([]float64, cfg.Beams)
	for i := range offsets {
		offsets[i] = degToRad(float64(i) * cfg.AngleStepDeg)
	}
	return &Scanner{
		cfg:     cfg,
		world:   w,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		offsets: offsets,
		sectors: NewSectors(cfg),
	}, nil
}

// Config returns the scanner configuration.
func (s *Scanner) Config() Config { return s.cfg }

// Sectors returns the forward/left/right beam groupings.
func (s *Scanner) Sectors() Sectors { return s.sectors }

// Scan casts every beam from pose and returns exactly Config.Beams samples.
func (s *Scanner) Scan(pose world.Pose) Scan {
	origin := pose.Position()
	scan := Scan{
		Pose:     pose,
		MaxRange: s.cfg.MaxRange,
		Beams:    make([]Beam, len(s.offsets)),
	}

	for i, offset := range s.offsets {
		angle := offset + pose.Heading
		dist, hit := s.Cast(origin, angle)

		dist += s.rng.NormFloat64() * s.cfg.NoiseSigma
		dist = math.Max(0, math.Min(dist, s.cfg.MaxRange))

		end := alongRay(origin, angle, dist)
		scan.Beams[i] = Beam{
			Offset:   offset,
			Range:    dist,
			Point:    PolarToRobot(dist, offset),
			RayStart: origin,
			RayEnd:   end,
			Hit:      hit,
		}
	}
	return scan
}

// Cast marches a single noise-free ray from origin along angle and
// returns the refined distance to the first obstacle, or MaxRange when
// nothing is hit.
func (s *Scanner) Cast(origin r2.Vec, angle float64) (float64, bool) {
	// Coarse march. Samples are computed from the index so that long rays
	// do not accumulate step error.
	prev, cur := 0.0, 0.0
	hit := false
	for i := 0; ; i++ {
		cur = float64(i) * s.cfg.StepSize
		if cur >= s.cfg.MaxRange {
			break
		}
		if s.world.Contains(alongRay(origin, angle, cur)) {
			hit = true
			break
		}
		prev = cur
	}
	if !hit {
		return s.cfg.MaxRange, false
	}
	if cur == 0 {
		// Origin is already inside an obstacle: the bracket is empty.
		return 0, true
	}

	lo, hi := prev, cur
	for k := 0; k < s.cfg.RefineIterations; k++ {
		mid := 0.5 * (lo + hi)
		if s.world.Contains(alongRay(origin, angle, mid)) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, true
}
