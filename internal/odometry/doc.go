// Package odometry integrates velocity commands into rover poses.
//
// A Tracker keeps two poses side by side: the ground truth, integrated
// from the exact command, and the estimate, integrated from a command
// corrupted by the drift model. Control consumes the estimate; the sensor
// and the renderers use the truth.
//
// Integration is heading-first Euler: the heading is advanced by w*dt and
// the position is then advanced along the new heading.
//
// Dependency rule: odometry may depend on world and config only.
package odometry
