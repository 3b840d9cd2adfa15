// Package harness provides scenario-based conformance testing for pageorder.
//
// A scenario names a puzzle and asserts on what evaluating it produces.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	input: ../puzzles/example.txt   # or inline rules/updates
//	workers: 4                      # optional parallel evaluation
//	assertions:
//	  - type: total
//	    value: 143
//	  - type: compliant
//	    indexes: [0, 1, 2]
//	  - type: verdict
//	    index: 0
//	    compliant: true
//	    middle: 61
//	  - type: violation
//	    index: 3
//	    rule: "97|75"
//
// Inline puzzles replace input:
//
//	rules: [[47, 53], [97, 13]]
//	updates: [[47, 53, 97]]
//
// # Assertion Types
//
//   - total: Verifies the middle-page sum of compliant updates
//   - compliant: Verifies exactly which updates are compliant
//   - verdict: Verifies one update's compliance and middle page
//   - violation: Verifies the first rule a non-compliant update breaks
//   - precondition: Verifies evaluation aborted on an even-length compliant update
//
// # Deterministic Testing
//
// Each scenario runs against an in-memory SQLite store with sequential run
// IDs. Verdicts are read back from the store before assertions run, and the
// canonical JSON snapshot of the result is compared against a golden file.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/example.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
