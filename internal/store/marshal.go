package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/pageorder/internal/ir"
)

// marshalPages converts an update to canonical JSON TEXT for storage.
func marshalPages(pages ir.Update) (string, error) {
	if pages == nil {
		pages = ir.Update{}
	}
	data, err := ir.MarshalCanonical(pages)
	if err != nil {
		return "", fmt.Errorf("marshal pages: %w", err)
	}
	return string(data), nil
}

// unmarshalPages parses a stored page list. Canonical JSON is a subset of
// JSON, so the standard decoder reads it back.
func unmarshalPages(data string) (ir.Update, error) {
	var pages ir.Update
	if err := json.Unmarshal([]byte(data), &pages); err != nil {
		return nil, fmt.Errorf("unmarshal pages: %w", err)
	}
	if pages == nil {
		pages = ir.Update{}
	}
	return pages, nil
}
