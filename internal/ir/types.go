package ir

import "fmt"

// Page identifies one element of an update. Valid pages are non-negative.
type Page int64

// Rule is a pairwise ordering constraint: whenever both Before and After
// appear in the same update, Before must appear first.
type Rule struct {
	Before Page `json:"before"`
	After  Page `json:"after"`
}

// String renders the rule in its input form, e.g. "47|53".
func (r Rule) String() string {
	return fmt.Sprintf("%d|%d", r.Before, r.After)
}

// Update is one ordered list of pages to check against the rules.
// Updates are treated as immutable once parsed.
type Update []Page

// Puzzle is a parsed input: the rule list and the updates to evaluate.
type Puzzle struct {
	Rules   []Rule   `json:"rules"`
	Updates []Update `json:"updates"`
}

// Verdict is the evaluation outcome for a single update.
// Middle is only set for compliant updates.
type Verdict struct {
	Index     int    `json:"index"`
	Pages     Update `json:"pages"`
	Compliant bool   `json:"compliant"`
	Middle    *Page  `json:"middle,omitempty"`
}

// Run is one persisted evaluation of a puzzle.
type Run struct {
	ID             string    `json:"id"`          // UUIDv7
	Seq            int64     `json:"seq"`         // Logical clock assigned by the store
	PuzzleHash     string    `json:"puzzle_hash"` // See PuzzleHash
	Source         string    `json:"source"`      // Input path or "-" for stdin
	RuleCount      int       `json:"rule_count"`
	UpdateCount    int       `json:"update_count"`
	CompliantCount int       `json:"compliant_count"`
	Total          int64     `json:"total"`
	Verdicts       []Verdict `json:"verdicts,omitempty"`
}
