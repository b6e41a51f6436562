// Package monitor records simulation history and renders it after a run.
//
// History is a sim.Observer that accumulates the true and estimated
// trajectories, commands, drift and range minima. From a Trace the
// package can draw PNG trajectory and drift plots (gonum/plot), write an
// interactive HTML page (go-echarts), and compute summary statistics
// (gonum/stat).
//
// Dependency rule: monitor depends on sim and the domain packages it
// draws; nothing in the simulation core imports monitor.
package monitor
