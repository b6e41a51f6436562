package sim

import (
	"github.com/banshee-data/rover.sim/internal/config"
	"github.com/banshee-data/rover.sim/internal/navigation"
)

// ControlState is the operator-facing state carried between ticks.
type ControlState struct {
	Mode         Mode
	Manual       navigation.Command // operator command, zero outside manual mode
	Index        int                // pursuit waypoint index, never decreases
	Decision     navigation.Decision
	ShowLidar    bool
	ShowOdometry bool
}

// ManualConfig sets the per-keypress increments and the command limit.
type ManualConfig struct {
	LinearStep  float64 // default: 1.5
	AngularStep float64 // default: 2.0
	Limit       float64 // default: 6.0
}

// DefaultManual returns the reference key increments.
func DefaultManual() ManualConfig {
	return ManualConfig{LinearStep: 1.5, AngularStep: 2.0, Limit: 6.0}
}

// ManualFromTuning builds a ManualConfig from a loaded TuningConfig.
func ManualFromTuning(cfg *config.TuningConfig) ManualConfig {
	return ManualConfig{
		LinearStep:  cfg.GetManualLinearStep(),
		AngularStep: cfg.GetManualAngularStep(),
		Limit:       cfg.GetCommandLimit(),
	}
}

// Reduce applies e to s with the default increments.
func Reduce(s ControlState, e Event) ControlState {
	return DefaultManual().Reduce(s, e)
}

// Reduce applies e to s and returns the new state. It is pure.
// Velocity events are ignored outside manual mode. Unknown events leave
// the state unchanged.
func (m ManualConfig) Reduce(s ControlState, e Event) ControlState {
	switch e {
	case EventModeManual:
		s.Mode = ModeManual
		s.Manual = navigation.Command{}
	case EventModeAuto:
		s.Mode = ModeAuto
		s.Manual = navigation.Command{}
	case EventToggleLidar:
		s.ShowLidar = !s.ShowLidar
	case EventToggleOdometry:
		s.ShowOdometry = !s.ShowOdometry
	case EventAccelerate, EventDecelerate, EventTurnLeft, EventTurnRight, EventHalt:
		if s.Mode != ModeManual {
			return s
		}
		c := s.Manual
		switch e {
		case EventAccelerate:
			c.V += m.LinearStep
		case EventDecelerate:
			c.V -= m.LinearStep
		case EventTurnLeft:
			c.W += m.AngularStep
		case EventTurnRight:
			c.W -= m.AngularStep
		case EventHalt:
			c = navigation.Command{}
		}
		s.Manual = c.Clamp(m.Limit, m.Limit)
	}
	return s
}
