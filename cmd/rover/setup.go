package main

import (
	"encoding/json"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/config"
	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/sim"
	"github.com/banshee-data/rover.sim/internal/storage/sqlite"
	"github.com/banshee-data/rover.sim/internal/world"
)

// overrides are the command-line values that replace config fields.
// Zero values leave the config untouched.
type overrides struct {
	seed    *int64
	policy  string
	manual  bool
	noStop  bool
	pathCSV string
}

// loadConfig reads the tuning file, applies overrides and validates the
// result.
func loadConfig(path string, o overrides) (*config.TuningConfig, error) {
	cfg, err := config.LoadTuningConfig(path)
	if err != nil {
		return nil, err
	}
	if o.seed != nil {
		seed := *o.seed
		cfg.Seed = &seed
	}
	if o.policy != "" {
		policy := o.policy
		cfg.AvoidancePolicy = &policy
	}
	if o.manual {
		mode := "manual"
		cfg.StartMode = &mode
	}
	if o.noStop {
		stop := false
		cfg.StopAtGoal = &stop
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadPath returns the waypoints from csvPath when set, otherwise from
// the config.
func loadPath(cfg *config.TuningConfig, csvPath string) (navigation.Path, error) {
	var pts []r2.Vec
	if csvPath != "" {
		var err error
		if pts, err = config.LoadPathCSV(csvPath); err != nil {
			return navigation.Path{}, err
		}
	} else {
		pts = cfg.GetPath()
	}
	return navigation.NewPath(pts)
}

// buildSimulator wires the world, path and simulator described by cfg.
// pace is the wall-clock delay between ticks; 0 runs flat out.
func buildSimulator(cfg *config.TuningConfig, csvPath string, pace time.Duration) (*sim.Simulator, error) {
	w, err := world.FromTuning(cfg)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	path, err := loadPath(cfg, csvPath)
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}
	simCfg, err := sim.ConfigFromTuning(cfg)
	if err != nil {
		return nil, err
	}
	simCfg.Pace = pace
	return sim.New(w, path, simCfg)
}

// newRunRecord describes the run for the telemetry database.
func newRunRecord(cfg *config.TuningConfig) (*sqlite.Run, error) {
	blob, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return &sqlite.Run{
		Policy:     cfg.GetAvoidancePolicy(),
		Seed:       cfg.GetSeed(),
		ConfigJSON: blob,
	}, nil
}
