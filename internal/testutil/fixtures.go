package testutil

import "github.com/roach88/pageorder/internal/ir"

// ExampleText is the canonical worked example in the text input format.
// Its first three updates are compliant and their middle pages sum to 143.
const ExampleText = `47|53
97|13
97|61
97|47
75|29
61|13
75|53
29|13
97|29
53|29
61|53
97|53
61|29
47|13
75|47
97|75
47|61
75|61
47|29
75|13
53|13

75,47,61,53,29
97,61,53,29,13
75,29,13
75,97,47,61,53
61,13,29
97,13,75,29,47
`

// ExampleTotal is the sum of middle pages of the compliant example updates.
const ExampleTotal int64 = 143

// ExampleCompliance lists the expected verdict of each example update.
var ExampleCompliance = []bool{true, true, true, false, false, false}

// ExampleRules returns the rules of the canonical example, in input order.
func ExampleRules() []ir.Rule {
	return []ir.Rule{
		{Before: 47, After: 53},
		{Before: 97, After: 13},
		{Before: 97, After: 61},
		{Before: 97, After: 47},
		{Before: 75, After: 29},
		{Before: 61, After: 13},
		{Before: 75, After: 53},
		{Before: 29, After: 13},
		{Before: 97, After: 29},
		{Before: 53, After: 29},
		{Before: 61, After: 53},
		{Before: 97, After: 53},
		{Before: 61, After: 29},
		{Before: 47, After: 13},
		{Before: 75, After: 47},
		{Before: 97, After: 75},
		{Before: 47, After: 61},
		{Before: 75, After: 61},
		{Before: 47, After: 29},
		{Before: 75, After: 13},
		{Before: 53, After: 13},
	}
}

// ExampleUpdates returns the updates of the canonical example.
func ExampleUpdates() []ir.Update {
	return []ir.Update{
		{75, 47, 61, 53, 29},
		{97, 61, 53, 29, 13},
		{75, 29, 13},
		{75, 97, 47, 61, 53},
		{61, 13, 29},
		{97, 13, 75, 29, 47},
	}
}

// ExamplePuzzle returns the canonical example as a fresh Puzzle.
func ExamplePuzzle() ir.Puzzle {
	return ir.Puzzle{
		Rules:   ExampleRules(),
		Updates: ExampleUpdates(),
	}
}
