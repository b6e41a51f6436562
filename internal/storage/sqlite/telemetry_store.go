package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/banshee-data/rover.sim/internal/sim"
)

// TickRecord is the persisted form of one simulation tick.
type TickRecord struct {
	RunID         string
	Tick          int
	Time          float64
	TruthX        float64
	TruthY        float64
	TruthHeading  float64
	EstX          float64
	EstY          float64
	EstHeading    float64
	V             float64
	W             float64
	Mode          string
	Decision      string
	Regime        string
	WaypointIndex int
	MinRange      float64
	FrontRange    float64
	Obstacles     int
	Drift         float64
}

// TickRecordFromSnapshot flattens a snapshot for storage.
func TickRecordFromSnapshot(runID string, s sim.Snapshot) TickRecord {
	return TickRecord{
		RunID:         runID,
		Tick:          s.Tick,
		Time:          s.Time,
		TruthX:        s.Truth.X,
		TruthY:        s.Truth.Y,
		TruthHeading:  s.Truth.Heading,
		EstX:          s.Estimate.X,
		EstY:          s.Estimate.Y,
		EstHeading:    s.Estimate.Heading,
		V:             s.Command.V,
		W:             s.Command.W,
		Mode:          s.Mode.String(),
		Decision:      s.Decision.String(),
		Regime:        string(s.Regime),
		WaypointIndex: s.Index,
		MinRange:      s.Ranges.All,
		FrontRange:    s.Ranges.Front,
		Obstacles:     len(s.Observations),
		Drift:         s.Drift.Position,
	}
}

// TelemetryStore provides persistence for tick records.
type TelemetryStore struct {
	db *sql.DB
}

// NewTelemetryStore creates a new TelemetryStore.
func NewTelemetryStore(db *sql.DB) *TelemetryStore {
	return &TelemetryStore{db: db}
}

// InsertBatch writes records in a single transaction.
func (s *TelemetryStore) InsertBatch(records []TickRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tick batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO ticks (
			run_id, tick, sim_time,
			truth_x, truth_y, truth_heading,
			est_x, est_y, est_heading,
			v, w, mode, decision, regime, waypoint_index,
			min_range, front_range, obstacles, drift
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare tick insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.RunID, r.Tick, r.Time,
			r.TruthX, r.TruthY, r.TruthHeading,
			r.EstX, r.EstY, r.EstHeading,
			r.V, r.W, r.Mode, r.Decision, r.Regime, r.WaypointIndex,
			r.MinRange, r.FrontRange, r.Obstacles, r.Drift,
		); err != nil {
			return fmt.Errorf("insert tick %d: %w", r.Tick, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tick batch: %w", err)
	}
	return nil
}

// ListByRun returns the ticks of a run in order.
func (s *TelemetryStore) ListByRun(runID string) ([]TickRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, tick, sim_time,
		       truth_x, truth_y, truth_heading,
		       est_x, est_y, est_heading,
		       v, w, mode, decision, regime, waypoint_index,
		       min_range, front_range, obstacles, drift
		FROM ticks WHERE run_id = ? ORDER BY tick`, runID)
	if err != nil {
		return nil, fmt.Errorf("list ticks: %w", err)
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var r TickRecord
		if err := rows.Scan(
			&r.RunID, &r.Tick, &r.Time,
			&r.TruthX, &r.TruthY, &r.TruthHeading,
			&r.EstX, &r.EstY, &r.EstHeading,
			&r.V, &r.W, &r.Mode, &r.Decision, &r.Regime, &r.WaypointIndex,
			&r.MinRange, &r.FrontRange, &r.Obstacles, &r.Drift,
		); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticks: %w", err)
	}
	return out, nil
}

// CountByRun returns the number of ticks stored for a run.
func (s *TelemetryStore) CountByRun(runID string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ticks WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ticks: %w", err)
	}
	return n, nil
}
