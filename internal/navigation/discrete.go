package navigation

import (
	"fmt"
	"strings"

	"github.com/banshee-data/rover.sim/internal/perception"
)

// Decision is the output of the discrete avoidance policy.
type Decision int

const (
	Forward Decision = iota
	Stop
	Left
	Right
)

var decisionNames = [...]string{
	Forward: "FORWARD",
	Stop:    "STOP",
	Left:    "LEFT",
	Right:   "RIGHT",
}

func (d Decision) String() string {
	if d < 0 || int(d) >= len(decisionNames) {
		return fmt.Sprintf("Decision(%d)", int(d))
	}
	return decisionNames[d]
}

// ParseDecision accepts the names produced by String, case-insensitively.
func ParseDecision(s string) (Decision, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range decisionNames {
		if name == up {
			return Decision(i), nil
		}
	}
	return Forward, fmt.Errorf("unknown decision %q", s)
}

// Decide maps corridor observations to a discrete decision:
//
//	no observations               -> FORWARD
//	left == right, both non-zero  -> STOP
//	more on the left              -> RIGHT
//	otherwise                     -> LEFT
//
// Observations on the centre line count toward neither side, so a
// corridor blocked only dead ahead yields LEFT.
func Decide(obs []perception.Observation) Decision {
	if len(obs) == 0 {
		return Forward
	}
	left, right := perception.Count(obs)
	switch {
	case left == right && left > 0:
		return Stop
	case left > right:
		return Right
	default:
		return Left
	}
}
