package world

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Default arena dimensions (world units).
const (
	ArenaSize     = 20.0
	WallThickness = 0.3
)

// Rect is the plain description of an obstacle used to build a World.
type Rect struct {
	Name          string
	X, Y          float64
	Width, Height float64
}

// World holds the arena obstacles. It is immutable once built.
type World struct {
	size      float64
	obstacles []Obstacle
}

// New builds a World of the given square size from boundary walls of the
// given thickness plus the interior rectangles.
func New(size, wall float64, interior []Rect) (*World, error) {
	if !(size > 0) || !(wall > 0) || 2*wall >= size {
		return nil, fmt.Errorf("%w: arena size %g with wall %g", ErrInvalidObstacle, size, wall)
	}
	rects := []Rect{
		{Name: "wall-bottom", X: 0, Y: 0, Width: size, Height: wall},
		{Name: "wall-top", X: 0, Y: size - wall, Width: size, Height: wall},
		{Name: "wall-left", X: 0, Y: 0, Width: wall, Height: size},
		{Name: "wall-right", X: size - wall, Y: 0, Width: wall, Height: size},
	}
	rects = append(rects, interior...)

	w := &World{size: size, obstacles: make([]Obstacle, 0, len(rects))}
	for _, r := range rects {
		o, err := NewObstacle(r.Name, r.X, r.Y, r.Width, r.Height)
		if err != nil {
			return nil, err
		}
		w.obstacles = append(w.obstacles, o)
	}
	return w, nil
}

// DefaultInterior is the fixed set of interior blocks in the standard arena.
func DefaultInterior() []Rect {
	return []Rect{
		{Name: "block-a", X: 4, Y: 4, Width: 2, Height: 6},
		{Name: "block-b", X: 8, Y: 2, Width: 3, Height: 2},
		{Name: "block-c", X: 12, Y: 5, Width: 2, Height: 8},
		{Name: "block-d", X: 5, Y: 12, Width: 6, Height: 2},
		{Name: "block-e", X: 14, Y: 14, Width: 3, Height: 3},
		{Name: "block-f", X: 9, Y: 9, Width: 2, Height: 2},
	}
}

// DefaultArena returns the standard 20x20 arena.
func DefaultArena() *World {
	w, err := New(ArenaSize, WallThickness, DefaultInterior())
	if err != nil {
		// Static geometry; cannot fail.
		panic(err)
	}
	return w
}

// Size returns the side length of the square arena.
func (w *World) Size() float64 { return w.size }

// Obstacles returns a copy of the obstacle list, walls first.
func (w *World) Obstacles() []Obstacle {
	out := make([]Obstacle, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// Contains reports whether p is inside any obstacle.
func (w *World) Contains(p r2.Vec) bool {
	for i := range w.obstacles {
		if w.obstacles[i].Contains(p) {
			return true
		}
	}
	return false
}
