package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopOrder(t *testing.T) {
	// chain 1 -> 2 -> 3
	s := NewSat(3)
	s.AddBinary(LitFromDimacs(-1), LitFromDimacs(2))
	s.AddBinary(LitFromDimacs(-2), LitFromDimacs(3))

	top := NewTopOrder(&s.CNF)
	require.True(t, top.Valid)
	require.Len(t, top.Lits, 6)

	a, b, c := LitFromDimacs(1), LitFromDimacs(2), LitFromDimacs(3)
	assert.Less(t, top.Order(a), top.Order(b))
	assert.Less(t, top.Order(b), top.Order(c))
	// the mirrored implications go the other way
	assert.Less(t, top.Order(c.Neg()), top.Order(b.Neg()))
	assert.Less(t, top.Order(b.Neg()), top.Order(a.Neg()))
}

func TestTopOrderDetectsCycle(t *testing.T) {
	// 1 -> 2 and 2 -> 1
	s := NewSat(2)
	s.AddBinary(LitFromDimacs(-1), LitFromDimacs(2))
	s.AddBinary(LitFromDimacs(-2), LitFromDimacs(1))
	assert.False(t, NewTopOrder(&s.CNF).Valid)
}

func TestStampsReachability(t *testing.T) {
	// chain 1 -> 2 -> 3, isolated 4
	s := NewSat(4)
	s.AddBinary(LitFromDimacs(-1), LitFromDimacs(2))
	s.AddBinary(LitFromDimacs(-2), LitFromDimacs(3))

	st := NewStamps(&s.CNF)
	a, b, c, d := LitFromDimacs(1), LitFromDimacs(2), LitFromDimacs(3), LitFromDimacs(4)
	assert.True(t, st.HasPath(a, b))
	assert.True(t, st.HasPath(a, c))
	assert.True(t, st.HasPath(b, c))
	assert.True(t, st.HasPath(c.Neg(), a.Neg()))
	assert.False(t, st.HasPath(c, a))
	assert.False(t, st.HasPath(a, d))
}

func TestRunSCCFindsEquivalence(t *testing.T) {
	// 1 <-> 2: clauses (-1 2) and (1 -2)
	s := NewSat(2)
	s.AddClauseSafe(lits(-1, 2))
	s.AddClauseSafe(lits(1, -2))

	n := RunSCC(s)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.VarCount())
	assert.False(t, s.Contradiction)
	assert.Equal(t, 2, s.RuleCount(), "equivalence recorded for reconstruction")
}

func TestRunSCCContradiction(t *testing.T) {
	// 1 <-> 2 and 1 <-> -2 forces 1 == -1
	s := NewSat(2)
	s.AddClauseSafe(lits(-1, 2))
	s.AddClauseSafe(lits(1, -2))
	s.AddClauseSafe(lits(1, 2))
	s.AddClauseSafe(lits(-1, -2))

	RunSCC(s)
	assert.True(t, s.Contradiction)
}

func TestRunSCCNoChange(t *testing.T) {
	s := NewSat(3)
	s.AddClauseSafe(lits(-1, 2))
	s.AddClauseSafe(lits(-2, 3))
	assert.Equal(t, 0, RunSCC(s))
	assert.Equal(t, 3, s.VarCount())
}

func TestBinaryReduction(t *testing.T) {
	// 1 -> 2 -> 3 plus the redundant shortcut 1 -> 3
	s := NewSat(3)
	s.AddClauseSafe(lits(-1, 2))
	s.AddClauseSafe(lits(-2, 3))
	s.AddClauseSafe(lits(-1, 3))
	require.Equal(t, 3, s.BinaryCount())

	removed := RunBinaryReduction(s)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, s.BinaryCount())

	// the symmetric storage invariant survives
	for i := 0; i < 2*s.VarCount(); i++ {
		a := Lit(i)
		for _, b := range s.Bins[a] {
			assert.Contains(t, s.Bins[b], a)
		}
	}
}

func TestBinaryReductionDeduplicates(t *testing.T) {
	s := NewSat(2)
	s.AddBinary(LitFromDimacs(1), LitFromDimacs(2))
	s.AddBinary(LitFromDimacs(1), LitFromDimacs(2))
	RunBinaryReduction(s)
	assert.Equal(t, 1, s.BinaryCount())
}
