package world

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidObstacle is returned when an obstacle has a non-positive size.
var ErrInvalidObstacle = errors.New("invalid obstacle")

// Obstacle is an axis-aligned rectangle anchored at its bottom-left corner.
type Obstacle struct {
	Name string
	box  r2.Box
}

// NewObstacle builds an obstacle from its origin corner (x, y), width and height.
func NewObstacle(name string, x, y, width, height float64) (Obstacle, error) {
	if !(width > 0) || !(height > 0) {
		return Obstacle{}, fmt.Errorf("%w: %q has size %gx%g", ErrInvalidObstacle, name, width, height)
	}
	return Obstacle{
		Name: name,
		box:  r2.Box{Min: r2.Vec{X: x, Y: y}, Max: r2.Vec{X: x + width, Y: y + height}},
	}, nil
}

// Origin returns the bottom-left corner.
func (o Obstacle) Origin() r2.Vec { return o.box.Min }

// Width returns the extent along X.
func (o Obstacle) Width() float64 { return o.box.Max.X - o.box.Min.X }

// Height returns the extent along Y.
func (o Obstacle) Height() float64 { return o.box.Max.Y - o.box.Min.Y }

// Contains reports whether p lies inside the rectangle. Points on an edge
// count as inside.
func (o Obstacle) Contains(p r2.Vec) bool {
	return o.box.Min.X <= p.X && p.X <= o.box.Max.X &&
		o.box.Min.Y <= p.Y && p.Y <= o.box.Max.Y
}

// Corners returns the four corners counter-clockwise from the origin:
// bottom-left, bottom-right, top-right, top-left.
func (o Obstacle) Corners() []r2.Vec {
	return o.box.Vertices()
}

func (o Obstacle) String() string {
	return fmt.Sprintf("%s[(%.2f,%.2f) %.2fx%.2f]", o.Name, o.box.Min.X, o.box.Min.Y, o.Width(), o.Height())
}
