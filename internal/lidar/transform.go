package lidar

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// PolarToRobot converts a range and a beam angle measured from the rover's
// heading into a robot-frame point (X forward, Y left).
func PolarToRobot(distance, angle float64) r2.Vec {
	s, c := math.Sincos(angle)
	return r2.Vec{X: distance * c, Y: distance * s}
}

// alongRay returns the world point at distance d from origin along angle.
func alongRay(origin r2.Vec, angle, d float64) r2.Vec {
	s, c := math.Sincos(angle)
	return r2.Vec{X: origin.X + d*c, Y: origin.Y + d*s}
}

// signedOffsetDeg maps a beam offset in [0, 360) to (-180, 180].
func signedOffsetDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d -= 360
	}
	return d
}
