package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator returns predictable run IDs for tests.
//
// IDs have the form "<prefix>-0001", "<prefix>-0002", ... so that golden
// output and persisted runs are identical across test executions.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator whose first ID ends in 0001.
// If prefix is empty, "test-run" is used.
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "test-run"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
//
// Implements store.IDGenerator interface.
func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Reset restarts the sequence. After Reset(), the next ID ends in 0001.
func (g *SequentialIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
