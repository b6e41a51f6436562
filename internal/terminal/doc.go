// Package terminal renders the simulation on a character-cell screen and
// turns key presses into simulator events.
//
// Dependency rule: terminal may depend on sim, world and navigation. The
// simulator never imports it; a Viewer is attached as a sim.Observer.
package terminal
