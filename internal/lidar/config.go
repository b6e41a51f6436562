package lidar

import (
	"fmt"

	"github.com/banshee-data/rover.sim/internal/config"
)

// Config holds the scanner geometry and noise model.
type Config struct {
	Beams              int     // Number of beams per scan (default: 36)
	AngleStepDeg       float64 // Angular spacing between beams (default: 10)
	MaxRange           float64 // Maximum range R (default: 4.0)
	StepSize           float64 // Coarse march increment (default: 0.05)
	RefineIterations   int     // Bisection iterations after a coarse hit (default: 10)
	NoiseSigma         float64 // Std-dev of additive range noise (default: 0.01)
	SectorHalfAngleDeg float64 // Half-width of the forward sector (default: 50)
	Seed               int64   // Noise source seed
}

// DefaultConfig returns the scanner configuration of the reference rover.
func DefaultConfig() Config {
	return Config{
		Beams:              36,
		AngleStepDeg:       10,
		MaxRange:           4.0,
		StepSize:           0.05,
		RefineIterations:   10,
		NoiseSigma:         0.01,
		SectorHalfAngleDeg: 50,
		Seed:               1,
	}
}

// ConfigFromTuning builds a scanner Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		Beams:              cfg.GetLidarBeams(),
		AngleStepDeg:       cfg.GetLidarAngleStepDeg(),
		MaxRange:           cfg.GetLidarMaxRange(),
		StepSize:           cfg.GetLidarStepSize(),
		RefineIterations:   cfg.GetLidarRefineIterations(),
		NoiseSigma:         cfg.GetLidarNoiseSigma(),
		SectorHalfAngleDeg: cfg.GetLidarSectorHalfAngleDeg(),
		Seed:               cfg.GetSeed(),
	}
}

// Validate checks that the configuration describes a usable scanner.
func (c Config) Validate() error {
	if c.Beams <= 0 {
		return fmt.Errorf("beams must be positive, got %d", c.Beams)
	}
	if !(c.MaxRange > 0) {
		return fmt.Errorf("max range must be positive, got %g", c.MaxRange)
	}
	if !(c.StepSize > 0) || c.StepSize > c.MaxRange {
		return fmt.Errorf("step size must be in (0, %g], got %g", c.MaxRange, c.StepSize)
	}
	if c.RefineIterations < 0 {
		return fmt.Errorf("refine iterations must be non-negative, got %d", c.RefineIterations)
	}
	if c.NoiseSigma < 0 {
		return fmt.Errorf("noise sigma must be non-negative, got %g", c.NoiseSigma)
	}
	return nil
}
