package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/rover.sim/internal/sim"
)

// PollInput reads screen events until the screen is finalized or a quit
// key is pressed. Simulator events are sent on events; a full channel
// drops the key rather than stalling the terminal. quit is called once
// when a quit key is seen. Resize events trigger a Sync.
func PollInput(screen tcell.Screen, events chan<- sim.Event, quit func()) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			e, action := KeyToEvent(ev)
			switch action {
			case ActionQuit:
				if quit != nil {
					quit()
				}
				return
			case ActionEvent:
				select {
				case events <- e:
				default:
				}
			}
		}
	}
}
