// Package store provides SQLite-backed history of pageorder evaluation runs.
//
// The store is append-only:
//   - Runs: one row per evaluation (totals, puzzle hash, source)
//   - Verdicts: one row per update in a run, keyed by (run_id, idx)
//
// # Ordering
//
// Runs are ordered by seq INTEGER, a logical clock assigned inside the
// insert transaction as MAX(seq)+1. Listing queries always use
// ORDER BY seq ASC, so output is identical regardless of wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Page lists are stored as canonical JSON produced by ir.MarshalCanonical.
package store
