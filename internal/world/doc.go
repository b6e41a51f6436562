// Package world owns the static arena geometry the rover drives in.
//
// Responsibilities: obstacle rectangles, the closed containment test, and
// the default arena (boundary walls plus interior blocks).
// Key types: Obstacle, World.
//
// Dependency rule: world imports only internal/config.
// The World is built once and is read-only afterwards.
package world
