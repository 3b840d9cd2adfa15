package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/pageorder/internal/ir"
)

// Snapshot captures the observable outcome of a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type Snapshot struct {
	ScenarioName   string         `json:"scenario_name"`
	Total          int64          `json:"total"`
	CompliantCount int            `json:"compliant_count"`
	Verdicts       []ir.Verdict   `json:"verdicts"`
	Violations     map[int]string `json:"-"`
	EvalError      string         `json:"error,omitempty"`
}

// NewSnapshot builds the snapshot of result under scenarioName.
func NewSnapshot(scenarioName string, result *Result) Snapshot {
	return Snapshot{
		ScenarioName:   scenarioName,
		Total:          result.Total,
		CompliantCount: result.CompliantCount,
		Verdicts:       result.Verdicts,
		Violations:     result.Violations,
		EvalError:      result.EvalError,
	}
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON serialization.
// An aborted evaluation snapshots only its error.
func (s *Snapshot) toCanonicalMap() map[string]any {
	if s.EvalError != "" {
		return map[string]any{
			"scenario_name": s.ScenarioName,
			"error":         s.EvalError,
		}
	}

	verdicts := make([]any, len(s.Verdicts))
	for i, v := range s.Verdicts {
		entry := map[string]any{
			"index":     v.Index,
			"pages":     v.Pages,
			"compliant": v.Compliant,
		}
		if v.Middle != nil {
			entry["middle"] = *v.Middle
		}
		if rule, ok := s.Violations[v.Index]; ok {
			entry["violation"] = rule
		}
		verdicts[i] = entry
	}

	return map[string]any{
		"scenario_name":   s.ScenarioName,
		"total":           s.Total,
		"compliant_count": s.CompliantCount,
		"verdicts":        verdicts,
	}
}

// MarshalCanonical renders the snapshot as golden file content.
func (s *Snapshot) MarshalCanonical() ([]byte, error) {
	return ir.MarshalCanonical(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := NewSnapshot(scenarioName, result)
	data, err := snapshot.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
