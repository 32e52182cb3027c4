// Package store provides SQLite-backed export of flattened songs.
//
// Each exported song gets a row in songs and one row per materialized note
// or harmony table row in events. Rows carry the filled table values, so a
// missing chord is stored as "0" exactly as the in-memory table shows it.
//
// # Determinism
//
//   - songs.seq and events.seq are logical positions, never timestamps
//   - All reads ORDER BY seq so results match document order
//   - JSON columns use record.MarshalCanonical
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
