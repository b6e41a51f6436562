package odometry

import (
	"fmt"

	"github.com/banshee-data/rover.sim/internal/config"
)

// DriftConfig describes how the estimated pose diverges from the truth.
//
//	v_est = v*(1+LinearScaleError) + N(0, LinearNoise)
//	w_est = w + AngularBias + N(0, AngularNoise)
//
// Drift only applies while the commanded velocity is non-zero. The zero
// value yields an estimate identical to the truth.
type DriftConfig struct {
	LinearScaleError float64
	AngularBias      float64 // rad/s
	LinearNoise      float64 // std-dev, units/s
	AngularNoise     float64 // std-dev, rad/s
	Seed             int64
}

// DriftConfigFromTuning builds a DriftConfig from a loaded TuningConfig.
func DriftConfigFromTuning(cfg *config.TuningConfig) DriftConfig {
	return DriftConfig{
		LinearScaleError: cfg.GetDriftLinearScale(),
		AngularBias:      cfg.GetDriftAngularBias(),
		LinearNoise:      cfg.GetDriftLinearNoise(),
		AngularNoise:     cfg.GetDriftAngularNoise(),
		Seed:             cfg.GetSeed(),
	}
}

// Validate checks the noise terms.
func (d DriftConfig) Validate() error {
	if d.LinearNoise < 0 {
		return fmt.Errorf("linear noise must be non-negative, got %g", d.LinearNoise)
	}
	if d.AngularNoise < 0 {
		return fmt.Errorf("angular noise must be non-negative, got %g", d.AngularNoise)
	}
	return nil
}

func (d DriftConfig) zero() bool {
	return d.LinearScaleError == 0 && d.AngularBias == 0 && d.LinearNoise == 0 && d.AngularNoise == 0
}
