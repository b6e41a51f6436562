package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEvent is returned by Step for an event it cannot apply.
var ErrUnknownEvent = errors.New("unknown event")

// Event is an operator input applied between ticks.
type Event int

const (
	EventModeManual Event = iota + 1 // switch to manual, zero the command
	EventModeAuto
	EventAccelerate
	EventDecelerate
	EventTurnLeft
	EventTurnRight
	EventHalt
	EventToggleLidar
	EventToggleOdometry
)

var eventNames = map[Event]string{
	EventModeManual:     "mode-manual",
	EventModeAuto:       "mode-auto",
	EventAccelerate:     "accelerate",
	EventDecelerate:     "decelerate",
	EventTurnLeft:       "turn-left",
	EventTurnRight:      "turn-right",
	EventHalt:           "halt",
	EventToggleLidar:    "toggle-lidar",
	EventToggleOdometry: "toggle-odometry",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Valid reports whether e is a known event.
func (e Event) Valid() bool {
	_, ok := eventNames[e]
	return ok
}

// Mode selects who drives the rover.
type Mode int

const (
	ModeAuto Mode = iota
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "AUTO"
	case ModeManual:
		return "MANUAL"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "auto" or "manual" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return ModeAuto, nil
	case "manual":
		return ModeManual, nil
	}
	return ModeAuto, fmt.Errorf("unknown mode %q", s)
}
