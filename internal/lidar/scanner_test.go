package lidar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/world"
)

func noiselessConfig() Config {
	cfg := DefaultConfig()
	cfg.NoiseSigma = 0
	return cfg
}

func newTestScanner(t *testing.T, cfg Config, w *world.World) *Scanner {
	t.Helper()
	s, err := NewScanner(cfg, w)
	require.NoError(t, err)
	return s
}

func TestScan_ProducesOneSamplePerBeam(t *testing.T) {
	t.Parallel()

	s := newTestScanner(t, DefaultConfig(), world.DefaultArena())
	scan := s.Scan(world.Pose{X: 2, Y: 2})

	require.Len(t, scan.Beams, 36)
	assert.Len(t, scan.Ranges(), 36)
	assert.Len(t, scan.Points(), 36)
	for _, b := range scan.Beams {
		assert.GreaterOrEqual(t, b.Range, 0.0)
		assert.LessOrEqual(t, b.Range, 4.0)
	}
}

func TestCast_NoObstacleReturnsMaxRangeExactly(t *testing.T) {
	t.Parallel()

	// A large arena where every ray from the centre stays clear.
	w, err := world.New(100, 0.5, nil)
	require.NoError(t, err)
	s := newTestScanner(t, noiselessConfig(), w)

	for _, angle := range []float64{0, 0.3, math.Pi / 2, -2.1} {
		d, hit := s.Cast(r2.Vec{X: 50, Y: 50}, angle)
		assert.False(t, hit)
		assert.Equal(t, 4.0, d)
	}
}

func TestScan_NoisyRangesStayInBounds(t *testing.T) {
	t.Parallel()

	w, err := world.New(100, 0.5, nil)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.NoiseSigma = 0.5 // exaggerate so the clamp is exercised
	s := newTestScanner(t, cfg, w)

	for i := 0; i < 20; i++ {
		scan := s.Scan(world.Pose{X: 50, Y: 50})
		for _, r := range scan.Ranges() {
			assert.GreaterOrEqual(t, r, 0.0)
			assert.LessOrEqual(t, r, 4.0)
		}
	}
}

func TestCast_BisectionBound(t *testing.T) {
	t.Parallel()

	// Wall face at x = 10.3 relative to an origin at x = 8.0 gives a
	// boundary at 2.3 - an exact multiple of nothing in particular.
	w, err := world.New(20, 0.3, []world.Rect{{Name: "face", X: 10.3, Y: 5, Width: 1, Height: 10}})
	require.NoError(t, err)
	cfg := noiselessConfig()
	s := newTestScanner(t, cfg, w)

	origin := r2.Vec{X: 8.0, Y: 10.0}
	want := 2.3
	tol := cfg.StepSize / math.Pow(2, float64(cfg.RefineIterations))

	d, hit := s.Cast(origin, 0)
	require.True(t, hit)
	assert.LessOrEqual(t, d, want, "refinement converges from outside")
	assert.InDelta(t, want, d, tol+1e-12)
}

func TestCast_OriginInsideObstacleIsZero(t *testing.T) {
	t.Parallel()

	s := newTestScanner(t, noiselessConfig(), world.DefaultArena())

	// Inside block-f.
	d, hit := s.Cast(r2.Vec{X: 10, Y: 10}, 1.0)
	assert.True(t, hit)
	assert.Equal(t, 0.0, d)

	scan := s.Scan(world.Pose{X: 10, Y: 10})
	for _, r := range scan.Ranges() {
		assert.Equal(t, 0.0, r)
	}
}

func TestScan_DeterministicForSeed(t *testing.T) {
	t.Parallel()

	pose := world.Pose{X: 2, Y: 2, Heading: 0.4}
	a := newTestScanner(t, DefaultConfig(), world.DefaultArena()).Scan(pose)
	b := newTestScanner(t, DefaultConfig(), world.DefaultArena()).Scan(pose)
	assert.Equal(t, a.Ranges(), b.Ranges())

	cfg := DefaultConfig()
	cfg.Seed = 99
	c := newTestScanner(t, cfg, world.DefaultArena()).Scan(pose)
	assert.NotEqual(t, a.Ranges(), c.Ranges())
}

func TestScan_RobotFramePoints(t *testing.T) {
	t.Parallel()

	s := newTestScanner(t, noiselessConfig(), world.DefaultArena())
	pose := world.Pose{X: 2, Y: 2, Heading: math.Pi / 2}
	scan := s.Scan(pose)

	for _, b := range scan.Beams {
		// Robot-frame point maps back to the world-frame ray end.
		back := pose.ToWorldFrame(b.Point)
		assert.InDelta(t, b.RayEnd.X, back.X, 1e-9)
		assert.InDelta(t, b.RayEnd.Y, back.Y, 1e-9)
		assert.Equal(t, pose.Position(), b.RayStart)
	}

	// Beam 0 looks along +Y in the world; nothing lies within range above (2,2).
	assert.False(t, scan.Beams[0].Hit)
	assert.Len(t, scan.Hits(), countHits(scan))
}

func countHits(scan Scan) int {
	n := 0
	for _, b := range scan.Beams {
		if b.Hit {
			n++
		}
	}
	return n
}

func TestNewScanner_Validates(t *testing.T) {
	t.Parallel()

	bad := []func(*Config){
		func(c *Config) { c.Beams = 0 },
		func(c *Config) { c.MaxRange = 0 },
		func(c *Config) { c.StepSize = 0 },
		func(c *Config) { c.StepSize = 10 },
		func(c *Config) { c.RefineIterations = -1 },
		func(c *Config) { c.NoiseSigma = -0.1 },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		_, err := NewScanner(cfg, world.DefaultArena())
		assert.Errorf(t, err, "case %d", i)
	}
}

func TestNewSectors_DefaultGeometry(t *testing.T) {
	t.Parallel()

	s := NewSectors(DefaultConfig())
	assert.Equal(t, BeamSet{0, 1, 2, 3, 4, 5, 31, 32, 33, 34, 35}, s.Front)
	assert.Equal(t, BeamSet{1, 2, 3, 4, 5}, s.Left)
	assert.Equal(t, BeamSet{31, 32, 33, 34, 35}, s.Right)
}

func TestScanMin(t *testing.T) {
	t.Parallel()

	scan := Scan{MaxRange: 4, Beams: []Beam{{Range: 3}, {Range: 1.5}, {Range: 2}}}
	assert.Equal(t, 1.5, scan.MinAll())
	assert.Equal(t, 2.0, scan.Min(BeamSet{0, 2}))
	assert.Equal(t, 4.0, scan.Min(nil))
	assert.Equal(t, 3.0, scan.Min(BeamSet{0, 7}))

	r := Sectors{Front: BeamSet{0, 1}, Left: BeamSet{1}, Right: BeamSet{2}}.Summarize(scan)
	assert.Equal(t, Ranges{All: 1.5, Front: 1.5, Left: 1.5, Right: 2}, r)
}

func TestScanClone_DoesNotAlias(t *testing.T) {
	t.Parallel()

	scan := Scan{MaxRange: 4, Beams: []Beam{{Range: 3}}}
	c := scan.Clone()
	c.Beams[0].Range = 0
	assert.Equal(t, 3.0, scan.Beams[0].Range)
}
