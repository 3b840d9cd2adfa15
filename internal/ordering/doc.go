// Package ordering validates page updates against pairwise ordering rules.
//
// A ConstraintStore is built once from the rule list and then shared,
// read-only, by every validation:
//
//	cs := ordering.Build(puzzle.Rules)
//	total, err := ordering.SumMiddleOfCompliant(puzzle.Updates, cs)
//
// # Semantics
//
// A rule X|Y binds only when both X and Y occur in the same update; X must
// then occur before Y. Rules naming a page absent from the update are
// vacuously satisfied. Compliance is a yes/no question per update: no
// global order is computed, cycles among rules are not detected, and
// non-compliant updates are never reordered.
//
// # Concurrency
//
// A ConstraintStore is immutable after Build and safe for concurrent reads.
// EvaluateParallel spreads validation of independent updates across a
// bounded number of goroutines.
package ordering
