package sim

import (
	"fmt"
	"time"

	"github.com/banshee-data/rover.sim/internal/config"
	"github.com/banshee-data/rover.sim/internal/lidar"
	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/odometry"
	"github.com/banshee-data/rover.sim/internal/perception"
	"github.com/banshee-data/rover.sim/internal/world"
)

// Config gathers everything a Simulator needs besides the world and path.
type Config struct {
	TickSeconds float64
	StopAtGoal  bool
	StartMode   Mode
	Start       world.Pose
	Pace        time.Duration // wall-clock delay between ticks in Run; 0 runs flat out

	Lidar      lidar.Config
	Drift      odometry.DriftConfig
	Corridor   perception.Corridor
	Navigation navigation.Config
	Manual     ManualConfig
}

// ConfigFromTuning builds a simulator Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) (Config, error) {
	mode, err := ParseMode(cfg.GetStartMode())
	if err != nil {
		return Config{}, err
	}
	return Config{
		TickSeconds: cfg.GetTickSeconds(),
		StopAtGoal:  cfg.GetStopAtGoal(),
		StartMode:   mode,
		Start:       world.StartPoseFromTuning(cfg),
		Lidar:       lidar.ConfigFromTuning(cfg),
		Drift:       odometry.DriftConfigFromTuning(cfg),
		Corridor:    perception.CorridorFromTuning(cfg),
		Navigation:  navigation.ConfigFromTuning(cfg),
		Manual:      ManualFromTuning(cfg),
	}, nil
}

// Simulator advances the rover one tick at a time. Not safe for
// concurrent use; observers run on the caller's goroutine.
type Simulator struct {
	cfg      Config
	world    *world.World
	scanner  *lidar.Scanner
	tracker  *odometry.Tracker
	composer *navigation.Composer

	state     ControlState
	tick      int
	reached   bool
	observers []Observer
}

// New wires a Simulator. Any configuration error is returned before the
// first tick can run.
func New(w *world.World, path navigation.Path, cfg Config) (*Simulator, error) {
	if !(cfg.TickSeconds > 0) {
		return nil, fmt.Errorf("tick seconds must be positive, got %g", cfg.TickSeconds)
	}
	scanner, err := lidar.NewScanner(cfg.Lidar, w)
	if err != nil {
		return nil, fmt.Errorf("lidar: %w", err)
	}
	tracker, err := odometry.NewTracker(cfg.Start, cfg.Drift)
	if err != nil {
		return nil, fmt.Errorf("odometry: %w", err)
	}
	pursuer, err := navigation.NewPursuer(cfg.Navigation, path)
	if err != nil {
		return nil, fmt.Errorf("navigation: %w", err)
	}
	composer, err := navigation.NewComposer(pursuer)
	if err != nil {
		return nil, fmt.Errorf("navigation: %w", err)
	}
	return &Simulator{
		cfg:      cfg,
		world:    w,
		scanner:  scanner,
		tracker:  tracker,
		composer: composer,
		state:    ControlState{Mode: cfg.StartMode},
	}, nil
}

// AddObserver registers o. Observers are called in registration order.
func (s *Simulator) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// World returns the arena.
func (s *Simulator) World() *world.World { return s.world }

// Path returns the path being followed.
func (s *Simulator) Path() navigation.Path { return s.composer.Pursuer().Path() }

// Config returns the simulator configuration.
func (s *Simulator) Config() Config { return s.cfg }

// State returns the current control state.
func (s *Simulator) State() ControlState { return s.state }

// Tick returns the number of completed ticks.
func (s *Simulator) Tick() int { return s.tick }

// Truth returns the current ground-truth pose.
func (s *Simulator) Truth() world.Pose { return s.tracker.Truth() }

// Estimate returns the current odometry estimate.
func (s *Simulator) Estimate() world.Pose { return s.tracker.Estimate() }

// Step applies events, runs one tick and notifies observers.
// Events are validated first and applied all-or-nothing.
func (s *Simulator) Step(events ...Event) (Snapshot, error) {
	for _, e := range events {
		if !e.Valid() {
			opsf("rejected %v at tick %d", e, s.tick)
			return Snapshot{}, fmt.Errorf("%w: %v", ErrUnknownEvent, e)
		}
	}
	prev := s.state.Mode
	for _, e := range events {
		s.state = s.cfg.Manual.Reduce(s.state, e)
	}
	if s.state.Mode != prev {
		diagf("mode %v -> %v at tick %d", prev, s.state.Mode, s.tick)
	}

	// Sense from the truth; decide from the estimate.
	scan := s.scanner.Scan(s.tracker.Truth())
	ranges := s.scanner.Sectors().Summarize(scan)
	obs := s.cfg.Corridor.Filter(scan.Points())
	est := s.tracker.Estimate()

	var (
		cmd     navigation.Command
		regime  navigation.Regime
		reached bool
		out     navigation.Output
	)
	if s.state.Mode == ModeAuto {
		out = s.composer.Step(est, ranges, obs)
		cmd = out.Command
		regime = out.Pursuit.Regime
		reached = out.Pursuit.Reached
	} else {
		out.Decision = navigation.Decide(obs)
		out.Pursuit.Index = s.composer.Pursuer().Index()
		cmd = s.state.Manual
		regime = navigation.RegimeManual
	}
	s.state.Decision = out.Decision
	s.state.Index = s.composer.Pursuer().Index()

	s.tracker.Update(cmd.V, cmd.W, s.cfg.TickSeconds)
	s.tick++

	if reached && !s.reached {
		diagf("goal reached at tick %d, estimate %v, truth %v", s.tick, est, s.tracker.Truth())
	}
	s.reached = reached

	snap := Snapshot{
		Tick:         s.tick,
		Time:         float64(s.tick) * s.cfg.TickSeconds,
		Truth:        s.tracker.Truth(),
		Estimate:     s.tracker.Estimate(),
		Drift:        s.tracker.Error(),
		Scan:         scan.Clone(),
		Ranges:       ranges,
		Observations: append([]perception.Observation(nil), obs...),
		Mode:         s.state.Mode,
		Command:      cmd,
		Decision:     out.Decision,
		Regime:       regime,
		Target:       out.Pursuit.Target,
		Index:        s.state.Index,
		Reached:      reached,
		ShowLidar:    s.state.ShowLidar,
		ShowOdometry: s.state.ShowOdometry,
	}
	tracef("tick=%d mode=%v regime=%s %v decision=%v front=%.3f all=%.3f drift=%.3f",
		snap.Tick, snap.Mode, snap.Regime, snap.Command, snap.Decision, ranges.Front, ranges.All, snap.Drift.Position)

	for i, o := range s.observers {
		if err := o.Observe(snap); err != nil {
			opsf("observer %d failed at tick %d: %v", i, snap.Tick, err)
		}
	}
	return snap, nil
}
