package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/rover.sim/internal/sim"
)

// Action is what a key press asks the front end to do.
type Action int

const (
	ActionNone Action = iota
	ActionEvent
	ActionQuit
)

// KeyToEvent maps a key press to a simulator event.
//
//	m / a        manual / auto mode
//	arrows       accelerate, decelerate, turn left, turn right
//	space        halt (manual mode only)
//	l / o        toggle lidar / odometry overlays
//	q, Esc, ^C   quit
func KeyToEvent(ev *tcell.EventKey) (sim.Event, Action) {
	switch ev.Key() {
	case tcell.KeyUp:
		return sim.EventAccelerate, ActionEvent
	case tcell.KeyDown:
		return sim.EventDecelerate, ActionEvent
	case tcell.KeyLeft:
		return sim.EventTurnLeft, ActionEvent
	case tcell.KeyRight:
		return sim.EventTurnRight, ActionEvent
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, ActionQuit
	case tcell.KeyRune:
	default:
		return 0, ActionNone
	}

	switch ev.Rune() {
	case 'm', 'M':
		return sim.EventModeManual, ActionEvent
	case 'a', 'A':
		return sim.EventModeAuto, ActionEvent
	case ' ':
		return sim.EventHalt, ActionEvent
	case 'l', 'L':
		return sim.EventToggleLidar, ActionEvent
	case 'o', 'O':
		return sim.EventToggleOdometry, ActionEvent
	case 'q', 'Q':
		return 0, ActionQuit
	}
	return 0, ActionNone
}
