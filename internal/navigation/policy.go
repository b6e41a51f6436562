package navigation

import (
	"errors"
	"fmt"

	"github.com/banshee-data/rover.sim/internal/lidar"
	"github.com/banshee-data/rover.sim/internal/perception"
	"github.com/banshee-data/rover.sim/internal/world"
)

// ErrInvalidPolicy is returned for an empty or unknown avoidance policy.
var ErrInvalidPolicy = errors.New("invalid avoidance policy")

// AvoidancePolicy selects how the continuous and discrete strategies are
// combined.
type AvoidancePolicy string

const (
	// PolicyContinuous uses the pursuit command as is.
	PolicyContinuous AvoidancePolicy = "continuous"
	// PolicyDiscrete steers at full speed on FORWARD and otherwise
	// follows the discrete decision.
	PolicyDiscrete AvoidancePolicy = "discrete"
	// PolicyCombined uses the pursuit command unless the discrete
	// decision is not FORWARD.
	PolicyCombined AvoidancePolicy = "combined"
)

// ParsePolicy validates s as an AvoidancePolicy.
func ParsePolicy(s string) (AvoidancePolicy, error) {
	switch p := AvoidancePolicy(s); p {
	case PolicyContinuous, PolicyDiscrete, PolicyCombined:
		return p, nil
	case "":
		return "", fmt.Errorf("%w: policy not set", ErrInvalidPolicy)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Output is the composed result of one control step.
type Output struct {
	Command    Command
	Decision   Decision
	Pursuit    PursuitResult
	Overridden bool // the discrete decision replaced the pursuit command
}

// Composer runs both strategies every step and selects the command.
type Composer struct {
	policy  AvoidancePolicy
	pursuer *Pursuer
}

// NewComposer builds a Composer for the pursuer's configured policy.
func NewComposer(pursuer *Pursuer) (*Composer, error) {
	policy, err := ParsePolicy(string(pursuer.Config().Policy))
	if err != nil {
		return nil, err
	}
	return &Composer{policy: policy, pursuer: pursuer}, nil
}

// Policy returns the active policy.
func (c *Composer) Policy() AvoidancePolicy { return c.policy }

// Pursuer returns the underlying pursuer.
func (c *Composer) Pursuer() *Pursuer { return c.pursuer }

// Step computes the command for the estimated pose. The discrete decision
// is always computed so it can be reported.
func (c *Composer) Step(est world.Pose, r lidar.Ranges, obs []perception.Observation) Output {
	cfg := c.pursuer.Config()
	res := c.pursuer.Step(est, r)
	out := Output{Decision: Decide(obs), Pursuit: res}

	switch {
	case res.Reached:
		// Goal dominates every policy.
	case c.policy == PolicyDiscrete:
		out.Command = c.discrete(out.Decision, res)
		out.Overridden = out.Decision != Forward
	case c.policy == PolicyCombined && out.Decision != Forward:
		out.Command = c.discrete(out.Decision, res)
		out.Overridden = true
	default:
		out.Command = res.Command
	}
	out.Command = out.Command.Clamp(cfg.MaxV, cfg.MaxW)
	return out
}

func (c *Composer) discrete(d Decision, res PursuitResult) Command {
	rate := c.pursuer.Config().DiscreteTurnRate
	switch d {
	case Stop:
		return Command{}
	case Left:
		return Command{W: rate}
	case Right:
		return Command{W: -rate}
	default:
		return c.pursuer.Steering(res)
	}
}
