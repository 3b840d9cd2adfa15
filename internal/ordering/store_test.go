package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/pageorder/internal/ir"
	"github.com/roach88/pageorder/internal/testutil"
)

func TestBuild_Empty(t *testing.T) {
	cs := Build(nil)
	assert.Equal(t, 0, cs.Len())
	assert.Equal(t, 0, cs.RuleCount())
	assert.Empty(t, cs.Lookup(47))
}

func TestBuild_AggregatesByBefore(t *testing.T) {
	cs := Build([]ir.Rule{
		{Before: 97, After: 13},
		{Before: 97, After: 61},
		{Before: 47, After: 53},
	})

	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, 3, cs.RuleCount())
	assert.Equal(t, []ir.Page{13, 61}, cs.Lookup(97), "insertion order is preserved")
	assert.Equal(t, []ir.Page{53}, cs.Lookup(47))
}

func TestBuild_KeepsDuplicates(t *testing.T) {
	cs := Build([]ir.Rule{
		{Before: 1, After: 2},
		{Before: 1, After: 2},
	})

	assert.Equal(t, []ir.Page{2, 2}, cs.Lookup(1))
	assert.Equal(t, 2, cs.RuleCount())
}

func TestLookup_MissingKeyIsEmpty(t *testing.T) {
	cs := Build(testutil.ExampleRules())
	assert.Empty(t, cs.Lookup(13), "13 is never a Before page")
	assert.Empty(t, cs.Lookup(1000))
}

func TestLookup_ReturnsCopy(t *testing.T) {
	cs := Build([]ir.Rule{{Before: 1, After: 2}})

	got := cs.Lookup(1)
	got[0] = 99

	assert.Equal(t, []ir.Page{2}, cs.Lookup(1), "callers must not mutate the store")
}

func TestNilStore(t *testing.T) {
	var cs *ConstraintStore
	assert.Equal(t, 0, cs.Len())
	assert.Empty(t, cs.Lookup(1))
	assert.True(t, IsCompliant(ir.Update{2, 1}, cs))
}
