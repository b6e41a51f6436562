package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// ErrInvalidConfig wraps every validation failure reported by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Avoidance policy names accepted by avoidance_policy.
const (
	PolicyContinuous = "continuous"
	PolicyDiscrete   = "discrete"
	PolicyCombined   = "combined"
)

// ObstacleConfig describes one interior obstacle rectangle.
type ObstacleConfig struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TuningConfig represents the root configuration for a simulation run.
// Every field is optional; Get* accessors supply the defaults, so partial
// files are safe.
type TuningConfig struct {
	// Run params
	Seed         *int64   `json:"seed,omitempty"`
	TickSeconds  *float64 `json:"tick_seconds,omitempty"`
	StopAtGoal   *bool    `json:"stop_at_goal,omitempty"`
	StartMode    *string  `json:"start_mode,omitempty"` // "auto" or "manual"
	StartX       *float64 `json:"start_x,omitempty"`
	StartY       *float64 `json:"start_y,omitempty"`
	StartHeading *float64 `json:"start_heading,omitempty"`

	// World params
	ArenaSize     *float64         `json:"arena_size,omitempty"`
	WallThickness *float64         `json:"wall_thickness,omitempty"`
	Obstacles     []ObstacleConfig `json:"obstacles,omitempty"`
	Path          [][2]float64     `json:"path,omitempty"`

	// Lidar params
	LidarBeams              *int     `json:"lidar_beams,omitempty"`
	LidarAngleStepDeg       *float64 `json:"lidar_angle_step_deg,omitempty"`
	LidarMaxRange           *float64 `json:"lidar_max_range,omitempty"`
	LidarStepSize           *float64 `json:"lidar_step_size,omitempty"`
	LidarRefineIterations   *int     `json:"lidar_refine_iterations,omitempty"`
	LidarNoiseSigma         *float64 `json:"lidar_noise_sigma,omitempty"`
	LidarSectorHalfAngleDeg *float64 `json:"lidar_sector_half_angle_deg,omitempty"`

	// Odometry drift params
	DriftLinearScale  *float64 `json:"drift_linear_scale,omitempty"`
	DriftAngularBias  *float64 `json:"drift_angular_bias,omitempty"`
	DriftLinearNoise  *float64 `json:"drift_linear_noise,omitempty"`
	DriftAngularNoise *float64 `json:"drift_angular_noise,omitempty"`

	// Corridor filter params
	CorridorHalfWidth    *float64 `json:"corridor_half_width,omitempty"`
	CorridorStopDistance *float64 `json:"corridor_stop_distance,omitempty"`

	// Navigation params
	AvoidancePolicy  *string  `json:"avoidance_policy,omitempty"`
	Lookahead        *float64 `json:"lookahead,omitempty"`
	MaxLinear        *float64 `json:"max_linear,omitempty"`
	MaxAngular       *float64 `json:"max_angular,omitempty"`
	GoalRadius       *float64 `json:"goal_radius,omitempty"`
	StopDistance     *float64 `json:"stop_distance,omitempty"`
	SlowDistance     *float64 `json:"slow_distance,omitempty"`
	MinDistance      *float64 `json:"min_distance,omitempty"`
	AvoidGain        *float64 `json:"avoid_gain,omitempty"`
	AvoidEpsilon     *float64 `json:"avoid_epsilon,omitempty"`
	ReverseFraction  *float64 `json:"reverse_fraction,omitempty"`
	DiscreteTurnRate *float64 `json:"discrete_turn_rate,omitempty"`

	// Manual driving params
	ManualLinearStep  *float64 `json:"manual_linear_step,omitempty"`
	ManualAngularStep *float64 `json:"manual_angular_step,omitempty"`
	CommandLimit      *float64 `json:"command_limit,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/rover/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from internal/storage/sqlite/
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid. Only fields
// that are set are checked; unset fields fall back to valid defaults.
func (c *TuningConfig) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.TickSeconds != nil && !(*c.TickSeconds > 0) {
		return invalid("tick_seconds must be positive, got %g", *c.TickSeconds)
	}
	if c.StartMode != nil {
		switch strings.ToLower(*c.StartMode) {
		case "auto", "manual":
		default:
			return invalid("start_mode must be auto or manual, got %q", *c.StartMode)
		}
	}
	if c.Lookahead != nil && !(*c.Lookahead > 0) {
		return invalid("lookahead must be positive, got %g", *c.Lookahead)
	}
	if c.AvoidancePolicy != nil {
		switch *c.AvoidancePolicy {
		case PolicyContinuous, PolicyDiscrete, PolicyCombined:
		default:
			return invalid("avoidance_policy must be one of %s, %s, %s; got %q",
				PolicyContinuous, PolicyDiscrete, PolicyCombined, *c.AvoidancePolicy)
		}
	}
	if c.GetSlowDistance() <= c.GetMinDistance() {
		return invalid("slow_distance (%g) must exceed min_distance (%g)", c.GetSlowDistance(), c.GetMinDistance())
	}
	if c.LidarBeams != nil && *c.LidarBeams <= 0 {
		return invalid("lidar_beams must be positive, got %d", *c.LidarBeams)
	}
	if c.LidarMaxRange != nil && !(*c.LidarMaxRange > 0) {
		return invalid("lidar_max_range must be positive, got %g", *c.LidarMaxRange)
	}
	if c.LidarStepSize != nil && !(*c.LidarStepSize > 0) {
		return invalid("lidar_step_size must be positive, got %g", *c.LidarStepSize)
	}
	if c.LidarNoiseSigma != nil && *c.LidarNoiseSigma < 0 {
		return invalid("lidar_noise_sigma must be non-negative, got %g", *c.LidarNoiseSigma)
	}
	if c.DriftLinearNoise != nil && *c.DriftLinearNoise < 0 {
		return invalid("drift_linear_noise must be non-negative, got %g", *c.DriftLinearNoise)
	}
	if c.DriftAngularNoise != nil && *c.DriftAngularNoise < 0 {
		return invalid("drift_angular_noise must be non-negative, got %g", *c.DriftAngularNoise)
	}
	if c.CommandLimit != nil && !(*c.CommandLimit > 0) {
		return invalid("command_limit must be positive, got %g", *c.CommandLimit)
	}
	for i, o := range c.Obstacles {
		if !(o.Width > 0) || !(o.Height > 0) {
			return invalid("obstacles[%d] %q must have positive size", i, o.Name)
		}
	}
	return nil
}

// GetSeed returns the seed value or the default.
func (c *TuningConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}

// GetTickSeconds returns the tick_seconds value or the default.
func (c *TuningConfig) GetTickSeconds() float64 {
	if c.TickSeconds == nil {
		return 0.01
	}
	return *c.TickSeconds
}

// GetStopAtGoal returns the stop_at_goal value or the default.
func (c *TuningConfig) GetStopAtGoal() bool {
	if c.StopAtGoal == nil {
		return true
	}
	return *c.StopAtGoal
}

// GetStartMode returns the start_mode value or the default ("auto").
func (c *TuningConfig) GetStartMode() string {
	if c.StartMode == nil {
		return "auto"
	}
	return strings.ToLower(*c.StartMode)
}

// GetStartX returns the start_x value or the default.
func (c *TuningConfig) GetStartX() float64 {
	if c.StartX == nil {
		return 2.0
	}
	return *c.StartX
}

// GetStartY returns the start_y value or the default.
func (c *TuningConfig) GetStartY() float64 {
	if c.StartY == nil {
		return 2.0
	}
	return *c.StartY
}

// GetStartHeading returns the start_heading value or the default.
func (c *TuningConfig) GetStartHeading() float64 {
	if c.StartHeading == nil {
		return 0
	}
	return *c.StartHeading
}

// GetArenaSize returns the arena_size value or the default.
func (c *TuningConfig) GetArenaSize() float64 {
	if c.ArenaSize == nil {
		return 20.0
	}
	return *c.ArenaSize
}

// GetWallThickness returns the wall_thickness value or the default.
func (c *TuningConfig) GetWallThickness() float64 {
	if c.WallThickness == nil {
		return 0.3
	}
	return *c.WallThickness
}

// GetLidarBeams returns the lidar_beams value or the default.
func (c *TuningConfig) GetLidarBeams() int {
	if c.LidarBeams == nil {
		return 36
	}
	return *c.LidarBeams
}

// GetLidarAngleStepDeg returns the lidar_angle_step_deg value or the default.
func (c *TuningConfig) GetLidarAngleStepDeg() float64 {
	if c.LidarAngleStepDeg == nil {
		return 10
	}
	return *c.LidarAngleStepDeg
}

// GetLidarMaxRange returns the lidar_max_range value or the default.
func (c *TuningConfig) GetLidarMaxRange() float64 {
	if c.LidarMaxRange == nil {
		return 4.0
	}
	return *c.LidarMaxRange
}

// GetLidarStepSize returns the lidar_step_size value or the default.
func (c *TuningConfig) GetLidarStepSize() float64 {
	if c.LidarStepSize == nil {
		return 0.05
	}
	return *c.LidarStepSize
}

// GetLidarRefineIterations returns the lidar_refine_iterations value or the default.
func (c *TuningConfig) GetLidarRefineIterations() int {
	if c.LidarRefineIterations == nil {
		return 10
	}
	return *c.LidarRefineIterations
}

// GetLidarNoiseSigma returns the lidar_noise_sigma value or the default.
func (c *TuningConfig) GetLidarNoiseSigma() float64 {
	if c.LidarNoiseSigma == nil {
		return 0.01
	}
	return *c.LidarNoiseSigma
}

// GetLidarSectorHalfAngleDeg returns the lidar_sector_half_angle_deg value or the default.
func (c *TuningConfig) GetLidarSectorHalfAngleDeg() float64 {
	if c.LidarSectorHalfAngleDeg == nil {
		return 50
	}
	return *c.LidarSectorHalfAngleDeg
}

// GetDriftLinearScale returns the drift_linear_scale value or the default.
func (c *TuningConfig) GetDriftLinearScale() float64 {
	if c.DriftLinearScale == nil {
		return 0.02
	}
	return *c.DriftLinearScale
}

// GetDriftAngularBias returns the drift_angular_bias value or the default.
func (c *TuningConfig) GetDriftAngularBias() float64 {
	if c.DriftAngularBias == nil {
		return 0.01
	}
	return *c.DriftAngularBias
}

// GetDriftLinearNoise returns the drift_linear_noise value or the default.
func (c *TuningConfig) GetDriftLinearNoise() float64 {
	if c.DriftLinearNoise == nil {
		return 0.05
	}
	return *c.DriftLinearNoise
}

// GetDriftAngularNoise returns the drift_angular_noise value or the default.
func (c *TuningConfig) GetDriftAngularNoise() float64 {
	if c.DriftAngularNoise == nil {
		return 0.02
	}
	return *c.DriftAngularNoise
}

// GetCorridorHalfWidth returns the corridor_half_width value or the default.
func (c *TuningConfig) GetCorridorHalfWidth() float64 {
	if c.CorridorHalfWidth == nil {
		return 0.3
	}
	return *c.CorridorHalfWidth
}

// GetCorridorStopDistance returns the corridor_stop_distance value or the default.
func (c *TuningConfig) GetCorridorStopDistance() float64 {
	if c.CorridorStopDistance == nil {
		return 0.4
	}
	return *c.CorridorStopDistance
}

// GetAvoidancePolicy returns the avoidance_policy value. There is no
// default: the empty string means the policy was never chosen.
func (c *TuningConfig) GetAvoidancePolicy() string {
	if c.AvoidancePolicy == nil {
		return ""
	}
	return *c.AvoidancePolicy
}

// GetLookahead returns the lookahead value or the default.
func (c *TuningConfig) GetLookahead() float64 {
	if c.Lookahead == nil {
		return 0.3
	}
	return *c.Lookahead
}

// GetMaxLinear returns the max_linear value or the default.
func (c *TuningConfig) GetMaxLinear() float64 {
	if c.MaxLinear == nil {
		return 6.0
	}
	return *c.MaxLinear
}

// GetMaxAngular returns the max_angular value or the default.
func (c *TuningConfig) GetMaxAngular() float64 {
	if c.MaxAngular == nil {
		return 6.0
	}
	return *c.MaxAngular
}

// GetGoalRadius returns the goal_radius value or the default.
func (c *TuningConfig) GetGoalRadius() float64 {
	if c.GoalRadius == nil {
		return 0.4
	}
	return *c.GoalRadius
}

// GetStopDistance returns the stop_distance value or the default.
func (c *TuningConfig) GetStopDistance() float64 {
	if c.StopDistance == nil {
		return 0.4
	}
	return *c.StopDistance
}

// GetSlowDistance returns the slow_distance value or the default.
func (c *TuningConfig) GetSlowDistance() float64 {
	if c.SlowDistance == nil {
		return 0.8
	}
	return *c.SlowDistance
}

// GetMinDistance returns the min_distance value or the default.
func (c *TuningConfig) GetMinDistance() float64 {
	if c.MinDistance == nil {
		return 0.3
	}
	return *c.MinDistance
}

// GetAvoidGain returns the avoid_gain value or the default.
func (c *TuningConfig) GetAvoidGain() float64 {
	if c.AvoidGain == nil {
		return 1.5
	}
	return *c.AvoidGain
}

// GetAvoidEpsilon returns the avoid_epsilon value or the default.
func (c *TuningConfig) GetAvoidEpsilon() float64 {
	if c.AvoidEpsilon == nil {
		return 0.01
	}
	return *c.AvoidEpsilon
}

// GetReverseFraction returns the reverse_fraction value or the default.
func (c *TuningConfig) GetReverseFraction() float64 {
	if c.ReverseFraction == nil {
		return 0.2
	}
	return *c.ReverseFraction
}

// GetDiscreteTurnRate returns the discrete_turn_rate value or the default.
func (c *TuningConfig) GetDiscreteTurnRate() float64 {
	if c.DiscreteTurnRate == nil {
		return 2.0
	}
	return *c.DiscreteTurnRate
}

// GetManualLinearStep returns the manual_linear_step value or the default.
func (c *TuningConfig) GetManualLinearStep() float64 {
	if c.ManualLinearStep == nil {
		return 1.5
	}
	return *c.ManualLinearStep
}

// GetManualAngularStep returns the manual_angular_step value or the default.
func (c *TuningConfig) GetManualAngularStep() float64 {
	if c.ManualAngularStep == nil {
		return 2.0
	}
	return *c.ManualAngularStep
}

// GetCommandLimit returns the command_limit value or the default.
func (c *TuningConfig) GetCommandLimit() float64 {
	if c.CommandLimit == nil {
		return 6.0
	}
	return *c.CommandLimit
}
