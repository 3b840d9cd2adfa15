// Package loader turns puzzle input files into ir.Puzzle values.
//
// Three formats are accepted, selected by file extension:
//
//	.txt (and stdin)  rules "47|53", a blank line, updates "75,47,61"
//	.yaml / .yml      {rules: [[47, 53]], updates: [[75, 47, 61]]}
//	.cue              same shape, checked against an embedded CUE schema
//
// Parse failures are reported as *LoadError values carrying an E-code and,
// where known, the 1-based line number. Validate performs shape checks that
// do not stop parsing (empty or even-length updates, missing rules) and
// returns every problem at once.
package loader
