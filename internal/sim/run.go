package sim

import (
	"context"
	"time"
)

// StopReason says why Run returned.
type StopReason string

const (
	StopGoal     StopReason = "goal"
	StopMaxTicks StopReason = "max_ticks"
	StopCanceled StopReason = "canceled"
)

// RunResult summarizes a Run.
type RunResult struct {
	Ticks   int // ticks completed by this call
	Reached bool
	Reason  StopReason
	Last    Snapshot
}

// Run steps the simulator until ctx is done, the goal is reached in auto
// mode with StopAtGoal set, or maxTicks ticks have run (0 means no limit).
// Pending events are drained without blocking before each tick; a closed
// events channel is simply ignored from then on. Cancellation is observed
// only between ticks and is not an error.
func (s *Simulator) Run(ctx context.Context, events <-chan Event, maxTicks int) (RunResult, error) {
	var res RunResult
	diagf("run start: tick=%d mode=%v max_ticks=%d", s.tick, s.state.Mode, maxTicks)

	var pace <-chan time.Time
	if s.cfg.Pace > 0 {
		t := time.NewTicker(s.cfg.Pace)
		defer t.Stop()
		pace = t.C
	}

	for {
		if ctx.Err() != nil {
			res.Reason = StopCanceled
			break
		}
		if maxTicks > 0 && res.Ticks >= maxTicks {
			res.Reason = StopMaxTicks
			break
		}
		if pace != nil && res.Ticks > 0 {
			select {
			case <-ctx.Done():
				res.Reason = StopCanceled
				diagf("run stop: %s after %d ticks", res.Reason, res.Ticks)
				return res, nil
			case <-pace:
			}
		}

		var pending []Event
		pending, events = drain(events, pending)

		snap, err := s.Step(pending...)
		if err != nil {
			return res, err
		}
		res.Ticks++
		res.Last = snap
		res.Reached = snap.Reached
		if snap.Reached && snap.Mode == ModeAuto && s.cfg.StopAtGoal {
			res.Reason = StopGoal
			break
		}
	}
	diagf("run stop: %s after %d ticks", res.Reason, res.Ticks)
	return res, nil
}

// drain collects every event currently queued on ch. It returns a nil
// channel once ch is closed.
func drain(ch <-chan Event, buf []Event) ([]Event, <-chan Event) {
	if ch == nil {
		return buf, nil
	}
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return buf, nil
			}
			buf = append(buf, e)
		default:
			return buf, ch
		}
	}
}
