// Package actuator forwards velocity commands to a motor controller over
// a serial line. A Sink is attached to the simulator as an observer so a
// physical base can follow the simulated rover.
package actuator
