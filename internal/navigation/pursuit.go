package navigation

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/lidar"
	"github.com/banshee-data/rover.sim/internal/world"
)

// Regime names the branch of the control law that produced a command.
type Regime string

const (
	RegimeGoal    Regime = "goal"    // within the goal radius
	RegimeStop    Regime = "stop"    // some beam closer than StopDistance
	RegimeReverse Regime = "reverse" // front closer than MinDistance
	RegimeSlow    Regime = "slow"    // front closer than SlowDistance
	RegimeCruise  Regime = "cruise"

	// RegimeManual marks commands supplied by an operator rather than
	// the control law.
	RegimeManual Regime = "manual"
)

// PursuitResult is the outcome of one pursuit step.
type PursuitResult struct {
	Command   Command
	Target    r2.Vec  // lookahead point
	Index     int     // persisted waypoint index after this step
	Curvature float64 // 2*ly/ld^2 toward Target
	Reached   bool
	Regime    Regime
}

// Pursuer follows a Path with pure pursuit and range-based speed control.
// It carries the waypoint index between steps; the index never decreases.
type Pursuer struct {
	cfg   Config
	path  Path
	index int
}

// NewPursuer validates cfg and returns a Pursuer at the first waypoint.
func NewPursuer(cfg Config, path Path) (*Pursuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if path.Len() == 0 {
		return nil, ErrEmptyPath
	}
	return &Pursuer{cfg: cfg, path: path}, nil
}

// Config returns the pursuer's parameters.
func (p *Pursuer) Config() Config { return p.cfg }

// Path returns the path being followed.
func (p *Pursuer) Path() Path { return p.path }

// Index returns the persisted waypoint index.
func (p *Pursuer) Index() int { return p.index }

// Step computes the command for the estimated pose and the sector ranges.
func (p *Pursuer) Step(est world.Pose, r lidar.Ranges) PursuitResult {
	goal := p.path.Last()
	if est.DistanceTo(goal) < p.cfg.GoalRadius {
		return PursuitResult{Target: goal, Index: p.index, Reached: true, Regime: RegimeGoal}
	}

	target := p.lookahead(est)
	d := r2.Sub(target, est.Position())
	s, c := math.Sincos(est.Heading)
	ly := -s*d.X + c*d.Y
	ld := p.cfg.Lookahead
	curvature := 2 * ly / (ld * ld)

	res := PursuitResult{Target: target, Index: p.index, Curvature: curvature}
	w := clamp(curvature*p.cfg.MaxV, p.cfg.MaxW)

	switch {
	case r.All < p.cfg.StopDistance:
		res.Regime = RegimeStop
	case r.Front < p.cfg.MinDistance:
		res.Regime = RegimeReverse
		res.Command = Command{V: -p.cfg.ReverseFraction * p.cfg.MaxV}
	case r.Front < p.cfg.SlowDistance:
		res.Regime = RegimeSlow
		scale := (r.Front - p.cfg.MinDistance) / (p.cfg.SlowDistance - p.cfg.MinDistance)
		bias := p.cfg.AvoidGain * (r.Right - r.Left) / (r.Right + r.Left + p.cfg.Epsilon)
		res.Command = Command{V: p.cfg.MaxV * scale, W: clamp(w+bias, p.cfg.MaxW)}
	default:
		res.Regime = RegimeCruise
		res.Command = Command{V: p.cfg.MaxV, W: w}
	}
	return res
}

// Steering returns the unmodulated pursuit command for a step result:
// full speed along the curvature. Goal results yield a stop.
func (p *Pursuer) Steering(res PursuitResult) Command {
	if res.Reached {
		return Command{}
	}
	return Command{V: p.cfg.MaxV, W: clamp(res.Curvature*p.cfg.MaxV, p.cfg.MaxW)}
}

// lookahead advances the index to the first waypoint at least ld away.
// When none qualifies the goal is targeted and the index is kept.
func (p *Pursuer) lookahead(est world.Pose) r2.Vec {
	for i := p.index; i < p.path.Len(); i++ {
		wp := p.path.At(i)
		if est.DistanceTo(wp) >= p.cfg.Lookahead {
			p.index = i
			return wp
		}
	}
	return p.path.Last()
}
