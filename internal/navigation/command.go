package navigation

import "fmt"

// Command is a differential-drive velocity command.
type Command struct {
	V float64 // linear, units/s
	W float64 // angular, rad/s, positive turns left
}

// IsZero reports whether the command is a full stop.
func (c Command) IsZero() bool { return c.V == 0 && c.W == 0 }

// Clamp limits V to [-maxV, maxV] and W to [-maxW, maxW].
func (c Command) Clamp(maxV, maxW float64) Command {
	return Command{V: clamp(c.V, maxV), W: clamp(c.W, maxW)}
}

func (c Command) String() string {
	return fmt.Sprintf("v=%.3f w=%.3f", c.V, c.W)
}

func clamp(x, limit float64) float64 {
	if x > limit {
		return limit
	}
	if x < -limit {
		return -limit
	}
	return x
}
