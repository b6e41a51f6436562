package sim

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/lidar"
	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/odometry"
	"github.com/banshee-data/rover.sim/internal/perception"
	"github.com/banshee-data/rover.sim/internal/world"
)

// Snapshot is the read-only record of one tick. It shares no mutable
// memory with the Simulator.
//
// Scan and Observations were taken from the poses at the start of the
// tick; Truth and Estimate are the poses after the command was applied.
type Snapshot struct {
	Tick int     // 1-based
	Time float64 // seconds since start

	Truth    world.Pose
	Estimate world.Pose
	Drift    odometry.PoseError

	Scan         lidar.Scan
	Ranges       lidar.Ranges
	Observations []perception.Observation

	Mode     Mode
	Command  navigation.Command
	Decision navigation.Decision
	Regime   navigation.Regime
	Target   r2.Vec
	Index    int
	Reached  bool

	ShowLidar    bool
	ShowOdometry bool
}

// Observer receives every snapshot after the tick has been applied.
// An error is logged and does not affect the simulation.
type Observer interface {
	Observe(Snapshot) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot) error

// Observe calls f(s).
func (f ObserverFunc) Observe(s Snapshot) error { return f(s) }
