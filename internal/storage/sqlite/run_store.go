package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run ID has no row.
var ErrRunNotFound = errors.New("run not found")

// Run is one simulation session.
type Run struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Policy     string     `json:"policy"`
	Seed       int64      `json:"seed"`
	ConfigJSON []byte     `json:"config_json,omitempty"`
	Ticks      int        `json:"ticks"`
	Reached    bool       `json:"reached"`
	Reason     string     `json:"reason,omitempty"`
}

// RunStore provides persistence for runs.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// Insert creates a run row. If run.RunID is empty a new UUID is
// generated; a zero StartedAt is set to now.
func (s *RunStore) Insert(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (run_id, started_at, policy, seed, config_json)
		VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.StartedAt.UnixNano(), run.Policy, run.Seed, run.ConfigJSON,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	diagf("run %s started (policy=%s seed=%d)", run.RunID, run.Policy, run.Seed)
	return nil
}

// Finish records the outcome of a run.
func (s *RunStore) Finish(runID string, ticks int, reached bool, reason string) error {
	res, err := s.db.Exec(`
		UPDATE runs SET finished_at = ?, ticks = ?, reached = ?, reason = ?
		WHERE run_id = ?`,
		time.Now().UnixNano(), ticks, reached, reason, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	diagf("run %s finished: ticks=%d reached=%v reason=%s", runID, ticks, reached, reason)
	return nil
}

// Get returns the run with the given ID.
func (s *RunStore) Get(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, started_at, finished_at, policy, seed, config_json, ticks, reached, reason
		FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}

// List returns the most recent runs first, up to limit (0 for all).
func (s *RunStore) List(limit int) ([]*Run, error) {
	query := `
		SELECT run_id, started_at, finished_at, policy, seed, config_json, ticks, reached, reason
		FROM runs ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	r := &Run{}
	var startedAt int64
	var finishedAt sql.NullInt64
	var reason sql.NullString
	if err := row.Scan(
		&r.RunID, &startedAt, &finishedAt, &r.Policy, &r.Seed,
		&r.ConfigJSON, &r.Ticks, &r.Reached, &reason,
	); err != nil {
		return nil, err
	}
	r.StartedAt = time.Unix(0, startedAt)
	if finishedAt.Valid {
		t := time.Unix(0, finishedAt.Int64)
		r.FinishedAt = &t
	}
	if reason.Valid {
		r.Reason = reason.String
	}
	return r, nil
}
