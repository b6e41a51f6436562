package monitor

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/rover.sim/internal/lidar"
	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/sim"
)

// Trace is a copy of everything a History has recorded. Slices are
// index-aligned by tick.
type Trace struct {
	Times     []float64
	Truth     []r2.Vec
	Estimate  []r2.Vec
	V         []float64
	W         []float64
	Drift     []float64
	MinRange  []float64
	Regimes   map[navigation.Regime]int
	Decisions map[navigation.Decision]int
	LastScan  lidar.Scan
	Reached   bool
	ReachedAt float64 // sim time of the first tick at the goal
}

// Len returns the number of recorded ticks.
func (t Trace) Len() int { return len(t.Times) }

// History records snapshots. It is safe to read from another goroutine
// while the simulator writes to it.
type History struct {
	mu sync.Mutex
	tr Trace
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{tr: Trace{
		Regimes:   make(map[navigation.Regime]int),
		Decisions: make(map[navigation.Decision]int),
	}}
}

// Observe implements sim.Observer.
func (h *History) Observe(s sim.Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tr.Times = append(h.tr.Times, s.Time)
	h.tr.Truth = append(h.tr.Truth, s.Truth.Position())
	h.tr.Estimate = append(h.tr.Estimate, s.Estimate.Position())
	h.tr.V = append(h.tr.V, s.Command.V)
	h.tr.W = append(h.tr.W, s.Command.W)
	h.tr.Drift = append(h.tr.Drift, s.Drift.Position)
	h.tr.MinRange = append(h.tr.MinRange, s.Ranges.All)
	h.tr.Regimes[s.Regime]++
	h.tr.Decisions[s.Decision]++
	h.tr.LastScan = s.Scan.Clone()
	if s.Reached && !h.tr.Reached {
		h.tr.Reached = true
		h.tr.ReachedAt = s.Time
	}
	return nil
}

// Trace returns a deep copy of the recorded history.
func (h *History) Trace() Trace {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := Trace{
		Times:     append([]float64(nil), h.tr.Times...),
		Truth:     append([]r2.Vec(nil), h.tr.Truth...),
		Estimate:  append([]r2.Vec(nil), h.tr.Estimate...),
		V:         append([]float64(nil), h.tr.V...),
		W:         append([]float64(nil), h.tr.W...),
		Drift:     append([]float64(nil), h.tr.Drift...),
		MinRange:  append([]float64(nil), h.tr.MinRange...),
		Regimes:   make(map[navigation.Regime]int, len(h.tr.Regimes)),
		Decisions: make(map[navigation.Decision]int, len(h.tr.Decisions)),
		LastScan:  h.tr.LastScan.Clone(),
		Reached:   h.tr.Reached,
		ReachedAt: h.tr.ReachedAt,
	}
	for k, v := range h.tr.Regimes {
		out.Regimes[k] = v
	}
	for k, v := range h.tr.Decisions {
		out.Decisions[k] = v
	}
	return out
}
