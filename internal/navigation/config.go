package navigation

import (
	"errors"
	"fmt"

	"github.com/banshee-data/rover.sim/internal/config"
)

// ErrInvalidLookahead is returned for a non-positive lookahead distance.
var ErrInvalidLookahead = errors.New("lookahead must be positive")

// Config holds the control-law parameters.
type Config struct {
	Lookahead    float64 // pure-pursuit lookahead ld (default: 0.3)
	MaxV         float64 // linear speed limit (default: 6.0)
	MaxW         float64 // angular speed limit (default: 6.0)
	GoalRadius   float64 // goal acceptance radius (default: 0.4)
	StopDistance float64 // any beam closer than this halts the rover (default: 0.4)
	SlowDistance float64 // front ranges below this scale speed down (default: 0.8)
	MinDistance  float64 // front ranges below this reverse (default: 0.3)
	AvoidGain    float64 // steering bias gain toward the open side (default: 1.5)
	Epsilon      float64 // guards the bias denominator (default: 0.01)

	ReverseFraction  float64 // reverse speed as a fraction of MaxV (default: 0.2)
	DiscreteTurnRate float64 // turn-in-place rate for LEFT/RIGHT (default: 2.0)

	Policy AvoidancePolicy // must be set explicitly
}

// DefaultConfig returns the reference control parameters. Policy is left
// empty; callers must choose one.
func DefaultConfig() Config {
	return Config{
		Lookahead:        0.3,
		MaxV:             6.0,
		MaxW:             6.0,
		GoalRadius:       0.4,
		StopDistance:     0.4,
		SlowDistance:     0.8,
		MinDistance:      0.3,
		AvoidGain:        1.5,
		Epsilon:          0.01,
		ReverseFraction:  0.2,
		DiscreteTurnRate: 2.0,
	}
}

// ConfigFromTuning builds a navigation Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		Lookahead:        cfg.GetLookahead(),
		MaxV:             cfg.GetMaxLinear(),
		MaxW:             cfg.GetMaxAngular(),
		GoalRadius:       cfg.GetGoalRadius(),
		StopDistance:     cfg.GetStopDistance(),
		SlowDistance:     cfg.GetSlowDistance(),
		MinDistance:      cfg.GetMinDistance(),
		AvoidGain:        cfg.GetAvoidGain(),
		Epsilon:          cfg.GetAvoidEpsilon(),
		ReverseFraction:  cfg.GetReverseFraction(),
		DiscreteTurnRate: cfg.GetDiscreteTurnRate(),
		Policy:           AvoidancePolicy(cfg.GetAvoidancePolicy()),
	}
}

// Validate checks the pursuit parameters. The policy is checked by
// NewComposer.
func (c Config) Validate() error {
	if !(c.Lookahead > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidLookahead, c.Lookahead)
	}
	if !(c.SlowDistance > c.MinDistance) {
		return fmt.Errorf("slow distance %g must exceed min distance %g", c.SlowDistance, c.MinDistance)
	}
	if !(c.MaxV > 0) || !(c.MaxW > 0) {
		return fmt.Errorf("speed limits must be positive, got v=%g w=%g", c.MaxV, c.MaxW)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if c.GoalRadius < 0 {
		return fmt.Errorf("goal radius must be non-negative, got %g", c.GoalRadius)
	}
	return nil
}
