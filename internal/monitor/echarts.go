package monitor

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/world"
)

// echartsAssetsPrefix is the CDN the generated pages load echarts from.
const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// maxChartPoints caps the samples per series so long runs stay usable in
// a browser.
const maxChartPoints = 2000

// ChartWriter renders a run as an interactive HTML page.
type ChartWriter struct {
	world *world.World
	path  navigation.Path
	title string
}

// NewChartWriter returns a ChartWriter for w and path.
func NewChartWriter(w *world.World, path navigation.Path, title string) *ChartWriter {
	if title == "" {
		title = "Rover run"
	}
	return &ChartWriter{world: w, path: path, title: title}
}

// WriteFile renders the page to file.
func (cw *ChartWriter) WriteFile(t Trace, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := cw.Render(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render writes a page with the arena map and the command time series.
func (cw *ChartWriter) Render(t Trace, w io.Writer) error {
	if t.Len() == 0 {
		return ErrEmptyTrace
	}
	page := components.NewPage().SetPageTitle(cw.title).SetAssetsHost(echartsAssetsPrefix)
	page.AddCharts(cw.arenaChart(t), cw.commandChart(t))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

func (cw *ChartWriter) arenaChart(t Trace) *charts.Line {
	size := cw.world.Size()
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: cw.title, Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: cw.title, Subtitle: fmt.Sprintf("ticks=%d reached=%v", t.Len(), t.Reached)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: 0, Max: size, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: size, Name: "Y", NameLocation: "middle", NameGap: 30}),
	)

	for _, o := range cw.world.Obstacles() {
		corners := o.Corners()
		ring := append(corners, corners[0])
		line.AddSeries("obstacles", xyLineData(ring, 0),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "#5a5a5a", Width: 2}),
		)
	}
	line.AddSeries("path", xyLineData(cw.path.Waypoints(), 0),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#1e78dc", Type: "dashed"}),
	)
	line.AddSeries("truth", xyLineData(t.Truth, maxChartPoints),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#14a03c", Width: 2}),
	)
	line.AddSeries("odometry", xyLineData(t.Estimate, maxChartPoints),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#dc3c28"}),
	)
	return line
}

func (cw *ChartWriter) commandChart(t Trace) *charts.Line {
	stride := strideFor(t.Len(), maxChartPoints)
	x := make([]string, 0, t.Len()/stride+1)
	v := make([]opts.LineData, 0, t.Len()/stride+1)
	w := make([]opts.LineData, 0, t.Len()/stride+1)
	drift := make([]opts.LineData, 0, t.Len()/stride+1)
	for i := 0; i < t.Len(); i += stride {
		x = append(x, fmt.Sprintf("%.2f", t.Times[i]))
		v = append(v, opts.LineData{Value: t.V[i]})
		w = append(w, opts.LineData{Value: t.W[i]})
		drift = append(drift, opts.LineData{Value: t.Drift[i]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "480px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Commands", Subtitle: "v, w and odometry error over time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)", NameLocation: "middle", NameGap: 25}),
	)
	line.SetXAxis(x).
		AddSeries("v", v, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})).
		AddSeries("w", w, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})).
		AddSeries("drift", drift, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

// xyLineData converts points to [x, y] pairs, thinning to at most limit
// samples when limit > 0. The last point is always kept.
func xyLineData(pts []r2.Vec, limit int) []opts.LineData {
	stride := strideFor(len(pts), limit)
	out := make([]opts.LineData, 0, len(pts)/stride+1)
	for i := 0; i < len(pts); i += stride {
		out = append(out, opts.LineData{Value: []interface{}{pts[i].X, pts[i].Y}})
	}
	if n := len(pts); n > 0 && (n-1)%stride != 0 {
		out = append(out, opts.LineData{Value: []interface{}{pts[n-1].X, pts[n-1].Y}})
	}
	return out
}

func strideFor(n, limit int) int {
	if limit <= 0 || n <= limit {
		return 1
	}
	return (n + limit - 1) / limit
}
