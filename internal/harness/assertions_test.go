package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageorder/internal/ir"
)

// exampleResult is a hand-built result for three updates: two compliant.
func exampleResult() *Result {
	mid0, mid2 := ir.Page(61), ir.Page(29)
	r := NewResult()
	r.Total = 90
	r.CompliantCount = 2
	r.Verdicts = []ir.Verdict{
		{Index: 0, Pages: ir.Update{75, 47, 61, 53, 29}, Compliant: true, Middle: &mid0},
		{Index: 1, Pages: ir.Update{75, 97, 47, 61, 53}},
		{Index: 2, Pages: ir.Update{75, 29, 13}, Compliant: true, Middle: &mid2},
	}
	r.Violations[1] = "97|75"
	return r
}

func TestAssertTotal(t *testing.T) {
	r := exampleResult()

	assert.Empty(t, EvaluateAssertions(r, []Assertion{{Type: AssertTotal, Value: int64Ptr(90)}}))

	errs := EvaluateAssertions(r, []Assertion{{Type: AssertTotal, Value: int64Ptr(143)}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: total 143")
	assert.Contains(t, errs[0], "Actual: total 90")
	assert.Contains(t, errs[0], "[1] [75 97 47 61 53] non-compliant")
}

func TestAssertCompliant(t *testing.T) {
	r := exampleResult()

	tests := []struct {
		name    string
		indexes []int
		pass    bool
	}{
		{"exact", []int{0, 2}, true},
		{"any order", []int{2, 0}, true},
		{"missing one", []int{0}, false},
		{"extra one", []int{0, 1, 2}, false},
		{"none", []int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(r, []Assertion{{Type: AssertCompliant, Indexes: tt.indexes}})
			if tt.pass {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Contains(t, errs[0], "Actual: compliant updates [0 2]")
			}
		})
	}
}

func TestAssertCompliant_DoesNotMutateAssertion(t *testing.T) {
	indexes := []int{2, 0}
	EvaluateAssertions(exampleResult(), []Assertion{{Type: AssertCompliant, Indexes: indexes}})
	assert.Equal(t, []int{2, 0}, indexes)
}

func TestAssertVerdict(t *testing.T) {
	r := exampleResult()

	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{
			name:      "compliant matches",
			assertion: Assertion{Type: AssertVerdict, Index: intPtr(0), Compliant: boolPtr(true)},
		},
		{
			name:      "middle matches",
			assertion: Assertion{Type: AssertVerdict, Index: intPtr(2), Middle: int64Ptr(29)},
		},
		{
			name:      "compliance mismatch",
			assertion: Assertion{Type: AssertVerdict, Index: intPtr(1), Compliant: boolPtr(true)},
			wantErr:   "Actual: update 1 compliant=false",
		},
		{
			name:      "middle mismatch",
			assertion: Assertion{Type: AssertVerdict, Index: intPtr(0), Middle: int64Ptr(47)},
			wantErr:   "Actual: update 0 middle page 61",
		},
		{
			name:      "no middle on non-compliant",
			assertion: Assertion{Type: AssertVerdict, Index: intPtr(1), Middle: int64Ptr(47)},
			wantErr:   "Actual: update 1 no middle page",
		},
		{
			name:      "index out of range",
			assertion: Assertion{Type: AssertVerdict, Index: intPtr(9), Compliant: boolPtr(true)},
			wantErr:   "no such update (3 updates)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(r, []Assertion{tt.assertion})
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.wantErr)
		})
	}
}

func TestAssertViolation(t *testing.T) {
	r := exampleResult()

	assert.Empty(t, EvaluateAssertions(r, []Assertion{
		{Type: AssertViolation, Index: intPtr(1), Rule: "97|75"},
	}))

	errs := EvaluateAssertions(r, []Assertion{
		{Type: AssertViolation, Index: intPtr(1), Rule: "75|97"},
		{Type: AssertViolation, Index: intPtr(0), Rule: "75|47"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Actual: update 1: rule 97|75")
	assert.Contains(t, errs[1], "Actual: update 0: no violation")
}

func TestAssertPrecondition(t *testing.T) {
	completed := exampleResult()
	errs := EvaluateAssertions(completed, []Assertion{{Type: AssertPrecondition}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "evaluation completed with total 90")

	aborted := NewResult()
	aborted.EvalError = "evaluate: update 4 has length 2: middle page requires odd length"
	aborted.PreconditionIndex = 4

	assert.Empty(t, EvaluateAssertions(aborted, []Assertion{{Type: AssertPrecondition}}))
	assert.Empty(t, EvaluateAssertions(aborted, []Assertion{{Type: AssertPrecondition, Index: intPtr(4)}}))

	errs = EvaluateAssertions(aborted, []Assertion{{Type: AssertPrecondition, Index: intPtr(1)}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: precondition failure on update 1")
}

func TestAssertions_FailAfterAbortedEvaluation(t *testing.T) {
	aborted := NewResult()
	aborted.EvalError = "boom"

	errs := EvaluateAssertions(aborted, []Assertion{
		{Type: AssertTotal, Value: int64Ptr(0)},
		{Type: AssertCompliant, Indexes: []int{}},
	})
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Contains(t, e, "Actual: evaluation failed: boom")
	}
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTotal,
		Expected: "total 1",
		Actual:   "total 2",
	}
	assert.Equal(t, "Assertion failed: total\n  Expected: total 1\n  Actual: total 2\n", err.Error())
}
