package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/pageorder/internal/ir"
)

// ParseText reads the line format: one "before|after" rule per line, a
// blank line, then one comma-separated update per line.
//
// Whitespace around lines and tokens is ignored. Blank lines inside the
// update section are skipped. Input without a blank separator has rules
// only.
func ParseText(r io.Reader) (*ir.Puzzle, error) {
	p := &ir.Puzzle{
		Rules:   []ir.Rule{},
		Updates: []ir.Update{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inRules := true
	lineNo := 0
	sawContent := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if inRules {
			if line == "" {
				if sawContent {
					inRules = false
				}
				continue
			}
			sawContent = true
			rule, err := parseRuleLine(line)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeRuleLine, Message: err.Error(), Line: lineNo}
			}
			if rule.Before < 0 || rule.After < 0 {
				return nil, &LoadError{Code: ErrCodeNegative, Message: fmt.Sprintf("negative page in rule %q", line), Line: lineNo}
			}
			p.Rules = append(p.Rules, rule)
			continue
		}

		if line == "" {
			continue
		}
		update, err := parseUpdateLine(line)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeUpdateLine, Message: err.Error(), Line: lineNo}
		}
		for _, page := range update {
			if page < 0 {
				return nil, &LoadError{Code: ErrCodeNegative, Message: fmt.Sprintf("negative page in update %q", line), Line: lineNo}
			}
		}
		p.Updates = append(p.Updates, update)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading input: %v", err)}
	}

	if !sawContent {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: "input is empty"}
	}
	return p, nil
}

func parseRuleLine(line string) (ir.Rule, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 2 {
		return ir.Rule{}, fmt.Errorf("rule %q must have the form before|after", line)
	}
	before, err := parsePage(fields[0])
	if err != nil {
		return ir.Rule{}, fmt.Errorf("rule %q: %w", line, err)
	}
	after, err := parsePage(fields[1])
	if err != nil {
		return ir.Rule{}, fmt.Errorf("rule %q: %w", line, err)
	}
	return ir.Rule{Before: before, After: after}, nil
}

func parseUpdateLine(line string) (ir.Update, error) {
	fields := strings.Split(line, ",")
	update := make(ir.Update, 0, len(fields))
	for i, f := range fields {
		page, err := parsePage(f)
		if err != nil {
			return nil, fmt.Errorf("update %q field %d: %w", line, i+1, err)
		}
		update = append(update, page)
	}
	return update, nil
}

func parsePage(s string) (ir.Page, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	return ir.Page(n), nil
}
