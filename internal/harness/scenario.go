package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// A scenario names a puzzle, either by file or inline, and asserts on the
// verdicts and total its evaluation produces.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is a puzzle file in any loader format.
	// Relative paths are resolved against the scenario file's directory.
	Input string `yaml:"input,omitempty"`

	// Rules and Updates define the puzzle inline when Input is empty.
	// Each rule is a [before, after] pair.
	Rules   [][]int64 `yaml:"rules,omitempty"`
	Updates [][]int64 `yaml:"updates,omitempty"`

	// Workers selects parallel evaluation when greater than 1.
	Workers int `yaml:"workers,omitempty"`

	// Assertions validate the evaluation result.
	// Supported types: total, compliant, verdict, violation, precondition
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates part of an evaluation result.
type Assertion struct {
	// Type specifies the assertion type:
	// - "total": Check the middle-page sum of compliant updates
	// - "compliant": Check the exact set of compliant update indexes
	// - "verdict": Check one update's compliance and middle page
	// - "violation": Check the first rule an update breaks
	// - "precondition": Check that evaluation failed on an even-length compliant update
	Type string `yaml:"type"`

	// Value is the expected total (used by total).
	Value *int64 `yaml:"value,omitempty"`

	// Indexes are the expected compliant update indexes (used by compliant).
	Indexes []int `yaml:"indexes,omitempty"`

	// Index selects an update (used by verdict, violation and precondition).
	Index *int `yaml:"index,omitempty"`

	// Compliant is the expected compliance (used by verdict).
	Compliant *bool `yaml:"compliant,omitempty"`

	// Middle is the expected middle page (used by verdict).
	Middle *int64 `yaml:"middle,omitempty"`

	// Rule is the expected broken rule in "before|after" form (used by violation).
	Rule string `yaml:"rule,omitempty"`
}

// Assertion type constants.
const (
	AssertTotal        = "total"
	AssertCompliant    = "compliant"
	AssertVerdict      = "verdict"
	AssertViolation    = "violation"
	AssertPrecondition = "precondition"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative Input is resolved against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative Input against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	// Resolve input path BEFORE validation
	if scenario.Input != "" && !filepath.IsAbs(scenario.Input) && basePath != "" {
		scenario.Input = filepath.Join(basePath, scenario.Input)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario decodes scenario YAML without validating it.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	inline := len(s.Rules) > 0 || len(s.Updates) > 0
	switch {
	case s.Input != "" && inline:
		return fmt.Errorf("input and inline rules/updates are mutually exclusive")
	case s.Input == "" && !inline:
		return fmt.Errorf("input or inline rules/updates is required")
	}

	if s.Input != "" {
		if _, err := os.Stat(s.Input); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", s.Input)
		}
	}

	for i, rule := range s.Rules {
		if len(rule) != 2 {
			return fmt.Errorf("rules[%d]: want [before, after], got %d values", i, len(rule))
		}
	}

	if s.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTotal:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for total", index)
		}
	case AssertCompliant:
		if a.Indexes == nil {
			return fmt.Errorf("assertions[%d]: indexes is required for compliant (use [] for none)", index)
		}
	case AssertVerdict:
		if a.Index == nil {
			return fmt.Errorf("assertions[%d]: index is required for verdict", index)
		}
		if a.Compliant == nil && a.Middle == nil {
			return fmt.Errorf("assertions[%d]: compliant or middle is required for verdict", index)
		}
	case AssertViolation:
		if a.Index == nil {
			return fmt.Errorf("assertions[%d]: index is required for violation", index)
		}
		if a.Rule == "" {
			return fmt.Errorf("assertions[%d]: rule is required for violation", index)
		}
	case AssertPrecondition:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
