package ordering

import (
	"fmt"

	"github.com/roach88/pageorder/internal/ir"
)

// Violation describes the first rule an update breaks.
type Violation struct {
	Rule      ir.Rule `json:"rule"`
	BeforePos int     `json:"before_pos"` // Position of Rule.Before being checked
	AfterPos  int     `json:"after_pos"`  // Last position of Rule.After, earlier than BeforePos
}

// String renders the violation for diagnostics.
func (v Violation) String() string {
	return fmt.Sprintf("rule %s broken: %d at position %d, %d last seen at position %d",
		v.Rule, v.Rule.Before, v.BeforePos, v.Rule.After, v.AfterPos)
}

// IsCompliant reports whether update satisfies every rule in cs whose two
// pages both occur in it. An update with no applicable rules is compliant.
func IsCompliant(update ir.Update, cs *ConstraintStore) bool {
	_, violated := FirstViolation(update, cs)
	return !violated
}

// FirstViolation walks update left to right and returns the first rule
// whose After page occurs in the update but not in the tail following the
// current Before page.
//
// A page is "in the tail" of position i exactly when its last occurrence is
// after i, so one position index replaces both per-rule scans.
func FirstViolation(update ir.Update, cs *ConstraintStore) (Violation, bool) {
	if cs.Len() == 0 {
		return Violation{}, false
	}

	last := make(map[ir.Page]int, len(update))
	for i, p := range update {
		last[p] = i
	}

	for page, tail := range WithFollowing(update) {
		tailStart := len(update) - len(tail)
		for _, required := range cs.requiredAfter(page) {
			pos, present := last[required]
			if !present {
				// Rule does not bind: required page is not in this update
				continue
			}
			if pos < tailStart {
				return Violation{
					Rule:      ir.Rule{Before: page, After: required},
					BeforePos: tailStart - 1,
					AfterPos:  pos,
				}, true
			}
		}
	}
	return Violation{}, false
}
