package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/pageorder/internal/ir"
)

// yamlDocument mirrors the YAML input shape.
type yamlDocument struct {
	Rules   []yamlRule   `yaml:"rules"`
	Updates []yamlUpdate `yaml:"updates"`
}

type yamlRule ir.Rule

// UnmarshalYAML decodes a [before, after] pair and checks its arity.
func (r *yamlRule) UnmarshalYAML(n *yaml.Node) error {
	var pair []int64
	if err := n.Decode(&pair); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("rule must be a list of integers: %v", err), Line: n.Line}
	}
	if len(pair) != 2 {
		return &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("rule must have exactly 2 pages, got %d", len(pair)), Line: n.Line}
	}
	if pair[0] < 0 || pair[1] < 0 {
		return &LoadError{Code: ErrCodeNegative, Message: fmt.Sprintf("negative page in rule %v", pair), Line: n.Line}
	}
	*r = yamlRule{Before: ir.Page(pair[0]), After: ir.Page(pair[1])}
	return nil
}

type yamlUpdate ir.Update

// UnmarshalYAML decodes a list of non-negative pages.
func (u *yamlUpdate) UnmarshalYAML(n *yaml.Node) error {
	var pages []int64
	if err := n.Decode(&pages); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("update must be a list of integers: %v", err), Line: n.Line}
	}
	out := make(yamlUpdate, len(pages))
	for i, p := range pages {
		if p < 0 {
			return &LoadError{Code: ErrCodeNegative, Message: fmt.Sprintf("negative page in update %v", pages), Line: n.Line}
		}
		out[i] = ir.Page(p)
	}
	*u = out
	return nil
}

// ParseYAML decodes the YAML input format.
// Unknown top-level fields are rejected to catch typos like "rule:".
func ParseYAML(data []byte) (*ir.Puzzle, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: "input is empty"}
	}

	var doc yamlDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, loadErr
		}
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeEmpty, Message: "input is empty"}
		}
		return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}

	p := &ir.Puzzle{
		Rules:   make([]ir.Rule, len(doc.Rules)),
		Updates: make([]ir.Update, len(doc.Updates)),
	}
	for i, r := range doc.Rules {
		p.Rules[i] = ir.Rule(r)
	}
	for i, u := range doc.Updates {
		p.Updates[i] = ir.Update(u)
	}
	return p, nil
}
