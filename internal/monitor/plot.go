package monitor

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/world"
)

// ErrEmptyTrace is returned when there is nothing to plot.
var ErrEmptyTrace = errors.New("trace has no samples")

var (
	obstacleFill  = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	pathColor     = color.RGBA{R: 30, G: 120, B: 220, A: 255}
	truthColor    = color.RGBA{R: 20, G: 160, B: 60, A: 255}
	estimateColor = color.RGBA{R: 220, G: 60, B: 40, A: 255}
	hitColor      = color.RGBA{R: 240, G: 170, B: 0, A: 255}
)

// TrajectoryPlotter draws runs over a fixed arena and path.
type TrajectoryPlotter struct {
	world *world.World
	path  navigation.Path
}

// NewTrajectoryPlotter returns a plotter for w and path.
func NewTrajectoryPlotter(w *world.World, path navigation.Path) *TrajectoryPlotter {
	return &TrajectoryPlotter{world: w, path: path}
}

// GeneratePlots writes trajectory.png and drift.png into outputDir and
// returns the files written.
func (tp *TrajectoryPlotter) GeneratePlots(t Trace, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	trajFile := filepath.Join(outputDir, "trajectory.png")
	if err := tp.SaveTrajectory(t, trajFile); err != nil {
		return nil, err
	}
	driftFile := filepath.Join(outputDir, "drift.png")
	if err := SaveDrift(t, driftFile); err != nil {
		return []string{trajFile}, err
	}
	return []string{trajFile, driftFile}, nil
}

// SaveTrajectory draws the arena, path, true and estimated trajectories
// and the hits of the last scan. The format follows the file extension.
func (tp *TrajectoryPlotter) SaveTrajectory(t Trace, file string) error {
	if t.Len() == 0 {
		return ErrEmptyTrace
	}

	p := plot.New()
	p.Title.Text = "Rover trajectory"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.X.Min, p.X.Max = 0, tp.world.Size()
	p.Y.Min, p.Y.Max = 0, tp.world.Size()

	for _, o := range tp.world.Obstacles() {
		poly, err := plotter.NewPolygon(vecsToXYs(o.Corners()))
		if err != nil {
			return fmt.Errorf("obstacle %s: %w", o.Name, err)
		}
		poly.Color = obstacleFill
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	pathLine, pathPts, err := plotter.NewLinePoints(vecsToXYs(tp.path.Waypoints()))
	if err != nil {
		return fmt.Errorf("path: %w", err)
	}
	pathLine.Color = pathColor
	pathLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	pathPts.Color = pathColor
	p.Add(pathLine, pathPts)
	p.Legend.Add("path", pathLine, pathPts)

	truth, err := plotter.NewLine(vecsToXYs(t.Truth))
	if err != nil {
		return fmt.Errorf("truth: %w", err)
	}
	truth.Color = truthColor
	truth.Width = vg.Points(1.5)
	p.Add(truth)
	p.Legend.Add("truth", truth)

	est, err := plotter.NewLine(vecsToXYs(t.Estimate))
	if err != nil {
		return fmt.Errorf("estimate: %w", err)
	}
	est.Color = estimateColor
	est.Width = vg.Points(1)
	p.Add(est)
	p.Legend.Add("odometry", est)

	if hits := t.LastScan.Hits(); len(hits) > 0 {
		sc, err := plotter.NewScatter(vecsToXYs(hits))
		if err != nil {
			return fmt.Errorf("scan hits: %w", err)
		}
		sc.GlyphStyle.Color = hitColor
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
		p.Legend.Add("lidar hits", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		return fmt.Errorf("save trajectory plot: %w", err)
	}
	return nil
}

// SaveDrift plots odometry position error and minimum range against time.
func SaveDrift(t Trace, file string) error {
	if t.Len() == 0 {
		return ErrEmptyTrace
	}

	p := plot.New()
	p.Title.Text = "Odometry drift and clearance"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Distance"

	drift, err := plotter.NewLine(seriesXYs(t.Times, t.Drift))
	if err != nil {
		return fmt.Errorf("drift: %w", err)
	}
	drift.Color = estimateColor
	drift.Width = vg.Points(1)
	p.Add(drift)
	p.Legend.Add("position error", drift)

	clearance, err := plotter.NewLine(seriesXYs(t.Times, t.MinRange))
	if err != nil {
		return fmt.Errorf("clearance: %w", err)
	}
	clearance.Color = pathColor
	clearance.Width = vg.Points(1)
	p.Add(clearance)
	p.Legend.Add("min range", clearance)

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save drift plot: %w", err)
	}
	return nil
}

func vecsToXYs(vs []r2.Vec) plotter.XYs {
	out := make(plotter.XYs, len(vs))
	for i, v := range vs {
		out[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	return out
}

func seriesXYs(xs, ys []float64) plotter.XYs {
	out := make(plotter.XYs, len(xs))
	for i := range xs {
		out[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return out
}
