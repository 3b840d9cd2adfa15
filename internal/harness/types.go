package harness

import "github.com/roach88/pageorder/internal/ir"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	// RunID identifies the run persisted for this execution.
	// Empty when evaluation failed.
	RunID string `json:"run_id,omitempty"`

	// Total is the middle-page sum of compliant updates.
	Total int64 `json:"total"`

	// CompliantCount is the number of compliant updates.
	CompliantCount int `json:"compliant_count"`

	// Verdicts holds one entry per update, read back from the run store.
	Verdicts []ir.Verdict `json:"verdicts"`

	// Violations maps the index of each non-compliant update to the first
	// rule it breaks, in "before|after" form.
	Violations map[int]string `json:"violations,omitempty"`

	// EvalError is set when evaluation aborted, e.g. on an even-length
	// compliant update. Verdicts and Total are then empty.
	EvalError string `json:"eval_error,omitempty"`

	// PreconditionIndex is the update that aborted evaluation, or -1.
	PreconditionIndex int `json:"-"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:              true,
		Verdicts:          []ir.Verdict{},
		Violations:        make(map[int]string),
		PreconditionIndex: -1,
		Errors:            []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// verdict returns the verdict for update index, if one was produced.
func (r *Result) verdict(index int) (ir.Verdict, bool) {
	for _, v := range r.Verdicts {
		if v.Index == index {
			return v, true
		}
	}
	return ir.Verdict{}, false
}
