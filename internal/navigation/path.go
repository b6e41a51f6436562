package navigation

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrEmptyPath is returned when a path has no waypoints.
var ErrEmptyPath = errors.New("path has no waypoints")

// Path is an immutable ordered list of waypoints.
type Path struct {
	waypoints []r2.Vec
}

// NewPath copies waypoints into a Path.
func NewPath(waypoints []r2.Vec) (Path, error) {
	if len(waypoints) == 0 {
		return Path{}, ErrEmptyPath
	}
	return Path{waypoints: append([]r2.Vec(nil), waypoints...)}, nil
}

// Len returns the number of waypoints.
func (p Path) Len() int { return len(p.waypoints) }

// At returns waypoint i.
func (p Path) At(i int) r2.Vec { return p.waypoints[i] }

// Last returns the goal waypoint.
func (p Path) Last() r2.Vec { return p.waypoints[len(p.waypoints)-1] }

// Waypoints returns a copy of the waypoint list.
func (p Path) Waypoints() []r2.Vec {
	return append([]r2.Vec(nil), p.waypoints...)
}
