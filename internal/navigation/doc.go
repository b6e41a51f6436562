// Package navigation turns the estimated pose and the latest scan into a
// velocity command.
//
// Two avoidance strategies live side by side. The Pursuer follows the path
// with pure pursuit and modulates speed and steering from the sector
// ranges (continuous). Decide maps corridor observations to a discrete
// FORWARD/STOP/LEFT/RIGHT decision. A Composer combines them according to
// the configured AvoidancePolicy.
//
// Key types: Path, Config, Pursuer, PursuitResult, Decision, Composer.
//
// Dependency rule: navigation may depend on world, lidar, perception and
// config. It never reads the ground-truth pose.
package navigation
