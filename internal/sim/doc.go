// Package sim runs the closed sense, estimate, decide, actuate loop.
//
// A Simulator owns the world, scanner, pose tracker and composer and
// advances them one tick at a time. Operator input arrives as Events that
// a pure reducer folds into the ControlState between ticks. After each
// tick an immutable Snapshot is handed to every registered Observer;
// renderers, plotters and the telemetry store are all observers.
//
// The core is single-threaded. Run drains pending events before each tick
// and checks for cancellation only between ticks.
//
// Dependency rule: sim may depend on every domain package (world, lidar,
// perception, odometry, navigation, config). Output adapters depend on
// sim, never the reverse.
package sim
