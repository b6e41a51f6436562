package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/sim"
	"github.com/banshee-data/rover.sim/internal/world"
)

// Glyphs drawn by the Viewer.
const (
	GlyphObstacle = '#'
	GlyphWaypoint = '+'
	GlyphTarget   = 'x'
	GlyphTruth    = '@'
	GlyphEstimate = 'o'
	GlyphHit      = '*'
)

var (
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWaypoint = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleTarget   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTruth    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEstimate = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHit      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// Viewer draws each snapshot onto a tcell screen. The arena is scaled to
// fill every row but the last, which carries a status line.
type Viewer struct {
	mu     sync.Mutex
	screen tcell.Screen
	world  *world.World
	path   navigation.Path
}

// NewViewer returns a Viewer drawing w and path on screen. The caller
// owns the screen and is responsible for Init and Fini.
func NewViewer(screen tcell.Screen, w *world.World, path navigation.Path) *Viewer {
	return &Viewer{screen: screen, world: w, path: path}
}

// Observe implements sim.Observer.
func (v *Viewer) Observe(s sim.Snapshot) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()
	width, height := v.screen.Size()
	rows := height - 1
	if width < 2 || rows < 2 {
		return nil
	}
	g := grid{size: v.world.Size(), cols: width, rows: rows}

	for row := 0; row < rows; row++ {
		for col := 0; col < width; col++ {
			if v.world.Contains(g.centre(col, row)) {
				v.screen.SetContent(col, row, GlyphObstacle, nil, styleObstacle)
			}
		}
	}
	for _, wp := range v.path.Waypoints() {
		v.put(g, wp, GlyphWaypoint, styleWaypoint)
	}
	if !s.Reached {
		v.put(g, s.Target, GlyphTarget, styleTarget)
	}
	if s.ShowLidar {
		for _, h := range s.Scan.Hits() {
			v.put(g, h, GlyphHit, styleHit)
		}
	}
	if s.ShowOdometry {
		v.put(g, s.Estimate.Position(), GlyphEstimate, styleEstimate)
	}
	v.put(g, s.Truth.Position(), GlyphTruth, styleTruth)

	drawText(v.screen, 0, rows, width, StatusLine(s), styleStatus)
	v.screen.Show()
	return nil
}

func (v *Viewer) put(g grid, p r2.Vec, r rune, st tcell.Style) {
	col, row, ok := g.cell(p)
	if !ok {
		return
	}
	v.screen.SetContent(col, row, r, nil, st)
}

// StatusLine formats the one-line summary shown under the arena.
func StatusLine(s sim.Snapshot) string {
	line := fmt.Sprintf("t=%.2fs %s", s.Time, s.Mode)
	if s.Reached {
		line += " GOAL"
	}
	return line + fmt.Sprintf(" %s %s wp=%d drift=%.3f",
		s.Command, s.Decision, s.Index, s.Drift.Position)
}

func drawText(screen tcell.Screen, x, y, width int, text string, st tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		screen.SetContent(col, y, r, nil, st)
		col++
	}
	for ; col < width; col++ {
		screen.SetContent(col, y, ' ', nil, st)
	}
}

// grid maps world coordinates onto screen cells with y pointing up.
type grid struct {
	size       float64
	cols, rows int
}

func (g grid) cell(p r2.Vec) (col, row int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X > g.size || p.Y > g.size {
		return 0, 0, false
	}
	col = int(p.X / g.size * float64(g.cols))
	row = g.rows - 1 - int(p.Y/g.size*float64(g.rows))
	if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	}
	return col, row, true
}

func (g grid) centre(col, row int) r2.Vec {
	return r2.Vec{
		X: (float64(col) + 0.5) / float64(g.cols) * g.size,
		Y: (float64(g.rows-1-row) + 0.5) / float64(g.rows) * g.size,
	}
}
