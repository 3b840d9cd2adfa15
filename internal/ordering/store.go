package ordering

import (
	"slices"

	"github.com/roach88/pageorder/internal/ir"
)

// ConstraintStore maps a page to the pages that must follow it.
// It is derived additively from a rule list and never mutated afterwards.
type ConstraintStore struct {
	after map[ir.Page][]ir.Page
	rules int
}

// Build aggregates rules by their Before page.
//
// Insertion order is preserved within each requirement list but carries no
// meaning. Duplicate rules produce duplicate entries, which are harmless to
// the membership checks performed by the validator.
func Build(rules []ir.Rule) *ConstraintStore {
	cs := &ConstraintStore{
		after: make(map[ir.Page][]ir.Page),
		rules: len(rules),
	}
	for _, r := range rules {
		cs.after[r.Before] = append(cs.after[r.Before], r.After)
	}
	return cs
}

// Lookup returns the pages that must follow p. Pages without rules yield an
// empty result. The returned slice is a copy.
func (cs *ConstraintStore) Lookup(p ir.Page) []ir.Page {
	return slices.Clone(cs.requiredAfter(p))
}

// requiredAfter is Lookup without the copy, for internal readers.
func (cs *ConstraintStore) requiredAfter(p ir.Page) []ir.Page {
	if cs == nil {
		return nil
	}
	return cs.after[p]
}

// Len returns the number of pages that carry at least one requirement.
func (cs *ConstraintStore) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.after)
}

// RuleCount returns the number of rules the store was built from,
// duplicates included.
func (cs *ConstraintStore) RuleCount() int {
	if cs == nil {
		return 0
	}
	return cs.rules
}
