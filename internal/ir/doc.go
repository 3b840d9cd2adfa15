// Package ir provides the data model shared by every pageorder package.
//
// This package contains type definitions and their canonical encoding only.
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Pages are non-negative int64 identifiers, never floats
//   - All JSON tags use snake_case
//   - Persisted runs are ordered by a logical clock (seq), never wall time
//   - Content hashes use canonical JSON with domain separation
package ir
