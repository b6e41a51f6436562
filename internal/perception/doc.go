// Package perception extracts nearby obstacle points from a lidar scan.
//
// A Corridor keeps only points that sit directly ahead of the rover within
// its body half-width and closer than the stopping distance. The result
// drives the discrete avoidance policy in navigation.
//
// Dependency rule: perception may depend on lidar and config only.
package perception
