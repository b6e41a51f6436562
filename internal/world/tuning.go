package world

import "github.com/banshee-data/rover.sim/internal/config"

// FromTuning builds the arena described by cfg. With no obstacles
// configured the default interior blocks are used.
func FromTuning(cfg *config.TuningConfig) (*World, error) {
	interior := DefaultInterior()
	if len(cfg.Obstacles) > 0 {
		interior = make([]Rect, len(cfg.Obstacles))
		for i, o := range cfg.Obstacles {
			interior[i] = Rect{Name: o.Name, X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
		}
	}
	return New(cfg.GetArenaSize(), cfg.GetWallThickness(), interior)
}

// StartPoseFromTuning returns the configured initial rover pose.
func StartPoseFromTuning(cfg *config.TuningConfig) Pose {
	return Pose{
		X:       cfg.GetStartX(),
		Y:       cfg.GetStartY(),
		Heading: NormalizeAngle(cfg.GetStartHeading()),
	}
}
