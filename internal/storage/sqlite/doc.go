// Package sqlite persists simulation runs and per-tick telemetry.
//
// The schema is embedded and applied with golang-migrate on Open, so a
// fresh file is usable immediately. A Recorder adapts the stores to the
// sim.Observer interface and writes ticks in batched transactions.
//
// Key types: DB, RunStore, TelemetryStore, Recorder.
//
// Dependency rule: storage depends on sim for the Snapshot type; nothing
// in the simulation core imports storage.
package sqlite
