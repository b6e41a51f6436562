package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/rover.sim/internal/config"
	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/sim"
	"github.com/banshee-data/rover.sim/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "telemetry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestSim(t *testing.T) *sim.Simulator {
	t.Helper()
	tuning := config.MustLoadDefaultConfig()
	w, err := world.FromTuning(tuning)
	require.NoError(t, err)
	path, err := navigation.NewPath(tuning.GetPath())
	require.NoError(t, err)
	cfg, err := sim.ConfigFromTuning(tuning)
	require.NoError(t, err)
	s, err := sim.New(w, path, cfg)
	require.NoError(t, err)
	return s
}

func TestOpen_AppliesMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")
	db, err := Open(dbPath)
	require.NoError(t, err)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
	require.NoError(t, db.Close())

	// Reopening an up-to-date file is a no-op.
	db, err = Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	version, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	run := &Run{Policy: "continuous", Seed: 1}
	require.NoError(t, NewRunStore(db.DB).Insert(run))
	_, err = NewRunStore(db.DB).Get(run.RunID)
	assert.NoError(t, err)
}

func TestRunStore(t *testing.T) {
	db := openTestDB(t)
	store := NewRunStore(db.DB)

	run := &Run{Policy: "combined", Seed: 42, ConfigJSON: []byte(`{"seed":42}`)}
	require.NoError(t, store.Insert(run))
	assert.NotEmpty(t, run.RunID, "run id is generated")
	assert.False(t, run.StartedAt.IsZero())

	got, err := store.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, "combined", got.Policy)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, []byte(`{"seed":42}`), got.ConfigJSON)
	assert.Nil(t, got.FinishedAt)
	assert.True(t, got.StartedAt.Equal(time.Unix(0, run.StartedAt.UnixNano())))

	require.NoError(t, store.Finish(run.RunID, 120, true, "goal"))
	got, err = store.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.Ticks)
	assert.True(t, got.Reached)
	assert.Equal(t, "goal", got.Reason)
	assert.NotNil(t, got.FinishedAt)

	older := &Run{Policy: "discrete", Seed: 1, StartedAt: run.StartedAt.Add(-time.Hour)}
	require.NoError(t, store.Insert(older))
	runs, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, run.RunID, runs[0].RunID, "newest first")

	runs, err = store.List(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunStore_NotFound(t *testing.T) {
	store := NewRunStore(openTestDB(t).DB)

	_, err := store.Get("missing")
	assert.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)

	err = store.Finish("missing", 1, false, "canceled")
	assert.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)
}

func TestTelemetryStore_RequiresRun(t *testing.T) {
	store := NewTelemetryStore(openTestDB(t).DB)
	err := store.InsertBatch([]TickRecord{{RunID: "ghost", Tick: 1, Mode: "AUTO", Decision: "FORWARD", Regime: "cruise"}})
	assert.Error(t, err, "foreign key should reject ticks for an unknown run")
}

func TestRecorder_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	s := newTestSim(t)

	rec, err := NewRecorder(db, &Run{Policy: "continuous", Seed: 1}, 10)
	require.NoError(t, err)

	var snaps []sim.Snapshot
	s.AddObserver(rec)
	s.AddObserver(sim.ObserverFunc(func(snap sim.Snapshot) error {
		snaps = append(snaps, snap)
		return nil
	}))

	res, err := s.Run(context.Background(), nil, 25)
	require.NoError(t, err)
	require.NoError(t, rec.Close(res))

	ticks := NewTelemetryStore(db.DB)
	n, err := ticks.CountByRun(rec.RunID())
	require.NoError(t, err)
	assert.Equal(t, 25, n, "tail batch flushed on close")

	got, err := ticks.ListByRun(rec.RunID())
	require.NoError(t, err)
	require.Len(t, got, 25)
	for i, snap := range snaps {
		want := TickRecordFromSnapshot(rec.RunID(), snap)
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Fatalf("tick %d mismatch (-want +got):\n%s", i+1, diff)
		}
	}

	run, err := NewRunStore(db.DB).Get(rec.RunID())
	require.NoError(t, err)
	assert.Equal(t, 25, run.Ticks)
	assert.Equal(t, string(sim.StopMaxTicks), run.Reason)
}

func TestTickRecordFromSnapshot(t *testing.T) {
	snap := sim.Snapshot{
		Tick:     7,
		Time:     0.07,
		Truth:    world.Pose{X: 1, Y: 2, Heading: 0.5},
		Estimate: world.Pose{X: 1.1, Y: 2.1, Heading: 0.4},
		Mode:     sim.ModeManual,
		Command:  navigation.Command{V: 1.5, W: -2},
		Decision: navigation.Right,
		Regime:   navigation.RegimeManual,
		Index:    3,
	}
	r := TickRecordFromSnapshot("run-1", snap)
	assert.Equal(t, "MANUAL", r.Mode)
	assert.Equal(t, "RIGHT", r.Decision)
	assert.Equal(t, "manual", r.Regime)
	assert.Equal(t, 3, r.WaypointIndex)
	assert.Equal(t, 1.1, r.EstX)
	assert.Equal(t, 0, r.Obstacles)
}
