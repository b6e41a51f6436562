package sqlite

import (
	"fmt"

	"github.com/banshee-data/rover.sim/internal/sim"
)

// DefaultBatchSize is the number of ticks buffered before a flush.
const DefaultBatchSize = 200

// Recorder is a sim.Observer that stores every snapshot under one run.
// Ticks are buffered and written in batches; call Close to flush the tail
// and record the outcome.
type Recorder struct {
	runs      *RunStore
	ticks     *TelemetryStore
	run       *Run
	batchSize int
	buf       []TickRecord
	written   int
}

// NewRecorder inserts run and returns a recorder for it. batchSize <= 0
// selects DefaultBatchSize.
func NewRecorder(db *DB, run *Run, batchSize int) (*Recorder, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	runs := NewRunStore(db.DB)
	if err := runs.Insert(run); err != nil {
		return nil, err
	}
	return &Recorder{
		runs:      runs,
		ticks:     NewTelemetryStore(db.DB),
		run:       run,
		batchSize: batchSize,
		buf:       make([]TickRecord, 0, batchSize),
	}, nil
}

// RunID returns the ID of the run being recorded.
func (r *Recorder) RunID() string { return r.run.RunID }

// Observe implements sim.Observer.
func (r *Recorder) Observe(s sim.Snapshot) error {
	r.buf = append(r.buf, TickRecordFromSnapshot(r.run.RunID, s))
	if len(r.buf) >= r.batchSize {
		return r.Flush()
	}
	return nil
}

// Flush writes any buffered ticks. On failure the batch is dropped so
// that a broken database cannot grow the buffer without bound.
func (r *Recorder) Flush() error {
	if len(r.buf) == 0 {
		return nil
	}
	n := len(r.buf)
	err := r.ticks.InsertBatch(r.buf)
	r.buf = r.buf[:0]
	if err != nil {
		opsf("dropped %d ticks for run %s: %v", n, r.run.RunID, err)
		return err
	}
	r.written += n
	tracef("flushed %d ticks for run %s (total %d)", n, r.run.RunID, r.written)
	return nil
}

// Close flushes the buffer and records the run outcome.
func (r *Recorder) Close(result sim.RunResult) error {
	flushErr := r.Flush()
	if err := r.runs.Finish(r.run.RunID, result.Ticks, result.Reached, string(result.Reason)); err != nil {
		return err
	}
	if flushErr != nil {
		return fmt.Errorf("final flush: %w", flushErr)
	}
	return nil
}
