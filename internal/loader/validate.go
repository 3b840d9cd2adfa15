package loader

import (
	"fmt"

	"github.com/roach88/pageorder/internal/ir"
)

// Validate checks a parsed puzzle for shape problems.
// Returns all errors found (does not fail-fast).
//
// An even-length update is reported because it has no middle page; it only
// breaks aggregation if it turns out to be compliant.
func Validate(p ir.Puzzle) []ValidationError {
	var errs []ValidationError

	// E207: rules are required for a meaningful check
	if len(p.Rules) == 0 {
		errs = append(errs, ValidationError{
			Field:   "rules",
			Message: "at least one ordering rule is required",
			Code:    ErrCodeNoRules,
		})
	}

	for i, r := range p.Rules {
		// E203: pages are non-negative
		if r.Before < 0 || r.After < 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("rules[%d]", i),
				Message: fmt.Sprintf("negative page in rule %s", r),
				Code:    ErrCodeNegative,
			})
		}
	}

	for i, u := range p.Updates {
		field := fmt.Sprintf("updates[%d]", i)

		// E205: updates must not be empty
		if len(u) == 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "update has no pages",
				Code:    ErrCodeEmptyUpdate,
			})
			continue
		}

		// E206: a middle page needs odd length
		if len(u)%2 == 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("update has %d pages and no middle page", len(u)),
				Code:    ErrCodeEvenUpdate,
			})
		}

		for _, page := range u {
			if page < 0 {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("negative page %d", page),
					Code:    ErrCodeNegative,
				})
				break
			}
		}
	}

	return errs
}
