// Package lidar simulates a planar range sensor mounted on the rover.
//
// Responsibilities: ray-marched range scans against the static world,
// bisection refinement of hits, Gaussian range noise, robot-frame beam
// endpoints, and the forward/left/right beam sectors used by avoidance.
// Key types: Config, Scanner, Scan, Beam, Sectors.
//
// Dependency rule: lidar may depend on world, never on perception,
// odometry, navigation or sim.
package lidar
