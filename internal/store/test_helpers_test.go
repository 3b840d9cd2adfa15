package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/pageorder/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func pagePtr(p ir.Page) *ir.Page {
	return &p
}

// createTestRun creates a run with one compliant and one non-compliant verdict.
func createTestRun(id, puzzleHash string) ir.Run {
	return ir.Run{
		ID:             id,
		PuzzleHash:     puzzleHash,
		Source:         "example.txt",
		RuleCount:      21,
		UpdateCount:    2,
		CompliantCount: 1,
		Total:          61,
		Verdicts: []ir.Verdict{
			{Index: 0, Pages: ir.Update{75, 47, 61, 53, 29}, Compliant: true, Middle: pagePtr(61)},
			{Index: 1, Pages: ir.Update{75, 97, 47, 61, 53}, Compliant: false},
		},
	}
}
