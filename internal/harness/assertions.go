package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/pageorder/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Verdicts []ir.Verdict // All verdicts for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Verdicts) > 0 {
		fmt.Fprintf(&buf, "\nVerdicts:\n")
		for _, v := range e.Verdicts {
			status := "non-compliant"
			if v.Compliant {
				status = "compliant"
			}
			fmt.Fprintf(&buf, "  [%d] %v %s\n", v.Index, []ir.Page(v.Pages), status)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	if a.Type == AssertPrecondition {
		return assertPrecondition(result, a)
	}
	if result.EvalError != "" {
		return &AssertionError{
			Type:     a.Type,
			Expected: "evaluation to complete",
			Actual:   "evaluation failed: " + result.EvalError,
		}
	}

	switch a.Type {
	case AssertTotal:
		return assertTotal(result, a)
	case AssertCompliant:
		return assertCompliant(result, a)
	case AssertVerdict:
		return assertVerdict(result, a)
	case AssertViolation:
		return assertViolation(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertTotal checks the middle-page sum.
func assertTotal(result *Result, a Assertion) error {
	if result.Total == *a.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertTotal,
		Expected: fmt.Sprintf("total %d", *a.Value),
		Actual:   fmt.Sprintf("total %d", result.Total),
		Verdicts: result.Verdicts,
	}
}

// assertCompliant checks that exactly the listed updates are compliant.
// Index order in the assertion does not matter.
func assertCompliant(result *Result, a Assertion) error {
	want := slices.Clone(a.Indexes)
	slices.Sort(want)

	got := []int{}
	for _, v := range result.Verdicts {
		if v.Compliant {
			got = append(got, v.Index)
		}
	}
	slices.Sort(got)

	if slices.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     AssertCompliant,
		Expected: fmt.Sprintf("compliant updates %v", want),
		Actual:   fmt.Sprintf("compliant updates %v", got),
		Verdicts: result.Verdicts,
	}
}

// assertVerdict checks one update's compliance and middle page.
func assertVerdict(result *Result, a Assertion) error {
	v, ok := result.verdict(*a.Index)
	if !ok {
		return &AssertionError{
			Type:     AssertVerdict,
			Expected: fmt.Sprintf("verdict for update %d", *a.Index),
			Actual:   fmt.Sprintf("no such update (%d updates)", len(result.Verdicts)),
		}
	}

	if a.Compliant != nil && v.Compliant != *a.Compliant {
		return &AssertionError{
			Type:     AssertVerdict,
			Expected: fmt.Sprintf("update %d compliant=%t", *a.Index, *a.Compliant),
			Actual:   fmt.Sprintf("update %d compliant=%t", *a.Index, v.Compliant),
			Verdicts: result.Verdicts,
		}
	}

	if a.Middle != nil {
		actual := "no middle page"
		if v.Middle != nil {
			if int64(*v.Middle) == *a.Middle {
				return nil
			}
			actual = fmt.Sprintf("middle page %d", *v.Middle)
		}
		return &AssertionError{
			Type:     AssertVerdict,
			Expected: fmt.Sprintf("update %d middle page %d", *a.Index, *a.Middle),
			Actual:   fmt.Sprintf("update %d %s", *a.Index, actual),
			Verdicts: result.Verdicts,
		}
	}

	return nil
}

// assertViolation checks the first rule a non-compliant update breaks.
func assertViolation(result *Result, a Assertion) error {
	rule, ok := result.Violations[*a.Index]
	if ok && rule == a.Rule {
		return nil
	}

	actual := "no violation"
	if ok {
		actual = "rule " + rule
	}
	return &AssertionError{
		Type:     AssertViolation,
		Expected: fmt.Sprintf("update %d breaks rule %s", *a.Index, a.Rule),
		Actual:   fmt.Sprintf("update %d: %s", *a.Index, actual),
		Verdicts: result.Verdicts,
	}
}

// assertPrecondition checks that evaluation aborted, optionally on a
// specific update.
func assertPrecondition(result *Result, a Assertion) error {
	if result.EvalError == "" {
		return &AssertionError{
			Type:     AssertPrecondition,
			Expected: "evaluation to fail on an even-length compliant update",
			Actual:   fmt.Sprintf("evaluation completed with total %d", result.Total),
			Verdicts: result.Verdicts,
		}
	}
	if a.Index != nil && result.PreconditionIndex != *a.Index {
		return &AssertionError{
			Type:     AssertPrecondition,
			Expected: fmt.Sprintf("precondition failure on update %d", *a.Index),
			Actual:   fmt.Sprintf("precondition failure on update %d", result.PreconditionIndex),
		}
	}
	return nil
}
