package monitor

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Summary holds run statistics.
type Summary struct {
	Ticks      int
	Duration   float64 // seconds of sim time
	Distance   float64 // path length travelled by the true pose
	MeanSpeed  float64 // mean commanded linear speed
	SpeedStd   float64
	MeanDrift  float64
	RMSDrift   float64
	MaxDrift   float64
	FinalDrift float64
	MinRange   float64 // closest approach seen by any beam
	Reached    bool
	ReachedAt  float64
	Regimes    map[string]int
}

// Summarize computes statistics over a trace. An empty trace yields a
// zero Summary.
func Summarize(t Trace) Summary {
	s := Summary{Regimes: make(map[string]int, len(t.Regimes))}
	for k, v := range t.Regimes {
		s.Regimes[string(k)] = v
	}
	n := t.Len()
	if n == 0 {
		return s
	}

	s.Ticks = n
	s.Duration = t.Times[n-1]
	s.Reached = t.Reached
	s.ReachedAt = t.ReachedAt

	steps := make([]float64, 0, n)
	for i := 1; i < len(t.Truth); i++ {
		steps = append(steps, r2.Norm(r2.Sub(t.Truth[i], t.Truth[i-1])))
	}
	s.Distance = floats.Sum(steps)

	s.MeanSpeed, s.SpeedStd = stat.MeanStdDev(t.V, nil)
	if n == 1 {
		s.SpeedStd = 0
	}

	s.MeanDrift = stat.Mean(t.Drift, nil)
	s.RMSDrift = math.Sqrt(floats.Dot(t.Drift, t.Drift) / float64(n))
	s.MaxDrift = floats.Max(t.Drift)
	s.FinalDrift = t.Drift[n-1]
	s.MinRange = floats.Min(t.MinRange)
	return s
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ticks=%d time=%.2fs distance=%.2f reached=%v", s.Ticks, s.Duration, s.Distance, s.Reached)
	if s.Reached {
		fmt.Fprintf(&b, " at=%.2fs", s.ReachedAt)
	}
	fmt.Fprintf(&b, "\nspeed mean=%.3f std=%.3f", s.MeanSpeed, s.SpeedStd)
	fmt.Fprintf(&b, "\ndrift mean=%.3f rms=%.3f max=%.3f final=%.3f", s.MeanDrift, s.RMSDrift, s.MaxDrift, s.FinalDrift)
	fmt.Fprintf(&b, "\nmin range=%.3f", s.MinRange)

	names := make([]string, 0, len(s.Regimes))
	for k := range s.Regimes {
		names = append(names, k)
	}
	sort.Strings(names)
	b.WriteString("\nregimes:")
	for _, k := range names {
		fmt.Fprintf(&b, " %s=%d", k, s.Regimes[k])
	}
	return b.String()
}
