package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkWatchInvariant verifies that every live long clause is watched on
// exactly its first two literals.
func checkWatchInvariant(t *testing.T, p *PropEngine) {
	t.Helper()
	watched := map[CRef]int{}
	for i, ws := range p.Watches {
		for _, ci := range ws {
			cl := p.sat.Clauses.Clause(ci)
			require.True(t, Lit(i) == cl.Get(0) || Lit(i) == cl.Get(1),
				"watch of clause %d on a non-watched position", ci)
			watched[ci]++
		}
	}
	for ci, n := range watched {
		assert.Equal(t, 2, n, "clause %d has %d watches", ci, n)
	}
}

func TestPropagateBinaryChain(t *testing.T) {
	s := NewSat(4)
	s.AddClauseSafe(lits(-1, 2))
	s.AddClauseSafe(lits(-2, 3))
	s.AddClauseSafe(lits(-3, 4))

	p := NewPropEngine(s, nil)
	require.False(t, p.Conflict)
	p.Branch(LitFromDimacs(1))

	assert.False(t, p.Conflict)
	assert.Len(t, p.Trail(), 4)
	for _, x := range []int{1, 2, 3, 4} {
		assert.True(t, p.Assign.IsTrue(LitFromDimacs(x)))
	}
	assert.Equal(t, 1, p.Level())

	p.Unroll(0, nil)
	assert.Len(t, p.Trail(), 0)
	for _, x := range []int{1, 2, 3, 4} {
		assert.False(t, p.Assign.Assigned(LitFromDimacs(x)))
	}
}

func TestPropagateLongClause(t *testing.T) {
	s := NewSat(3)
	s.AddClauseSafe(lits(1, 2, 3))

	p := NewPropEngine(s, nil)
	p.Branch(LitFromDimacs(-1))
	assert.False(t, p.Conflict)
	assert.False(t, p.Assign.Assigned(LitFromDimacs(2)), "watch moves, no propagation yet")

	p.Branch(LitFromDimacs(-2))
	assert.False(t, p.Conflict)
	assert.True(t, p.Assign.IsTrue(LitFromDimacs(3)), "last literal propagates")
	checkWatchInvariant(t, p)
}

func TestUnitPropagationAtConstruction(t *testing.T) {
	s := NewSat(2)
	s.AddUnary(LitFromDimacs(1))
	s.AddClauseSafe(lits(-1, 2))

	p := NewPropEngine(s, nil)
	require.False(t, p.Conflict)
	assert.True(t, p.Assign.IsTrue(LitFromDimacs(1)))
	assert.True(t, p.Assign.IsTrue(LitFromDimacs(2)))
	assert.Equal(t, 0, p.Level())
}

func TestConflictingUnits(t *testing.T) {
	s := NewSat(1)
	s.AddUnary(LitFromDimacs(1))
	s.AddUnary(LitFromDimacs(-1))
	p := NewPropEngine(s, nil)
	assert.True(t, p.Conflict)
}

func TestAnalyzeConflictFirstUIP(t *testing.T) {
	// a -> b, a&b -> c, b&c -> d, c&d -> conflict; branching a fails and the
	// asserting clause is the unit (-a)
	s := NewSat(4)
	s.AddClauseSafe(lits(-1, 2))
	s.AddClauseSafe(lits(-1, -2, 3))
	s.AddClauseSafe(lits(-2, -3, 4))
	s.AddClauseSafe(lits(-3, -4))

	p := NewPropEngine(s, nil)
	p.Branch(LitFromDimacs(1))
	require.True(t, p.Conflict)
	require.NotEmpty(t, p.ConflictClause)

	learnt := p.AnalyzeConflict(nil, false)
	require.Equal(t, lits(-1), learnt)

	// every learnt literal is currently assigned false
	for _, l := range learnt {
		assert.True(t, p.Assign.IsFalse(l))
	}
	assert.Equal(t, 0, p.BacktrackLevel(learnt))
	assert.Equal(t, 1, p.CalcGlue(learnt))
}

func TestAnalyzeConflictTwoLevels(t *testing.T) {
	// two independent decisions meet in a conflict: learn a binary clause
	// whose first literal is the UIP of the second level
	s := NewSat(3)
	s.AddClauseSafe(lits(-1, -2, 3))
	s.AddClauseSafe(lits(-1, -2, -3))

	p := NewPropEngine(s, nil)
	p.Branch(LitFromDimacs(1))
	require.False(t, p.Conflict)
	p.Branch(LitFromDimacs(2))
	require.True(t, p.Conflict)

	learnt := p.AnalyzeConflict(nil, false)
	require.Len(t, learnt, 2)
	assert.Equal(t, LitFromDimacs(-2), learnt[0], "UIP leads the learnt clause")
	assert.Equal(t, LitFromDimacs(-1), learnt[1])
	assert.Equal(t, 1, p.BacktrackLevel(learnt))
	assert.Equal(t, 2, p.CalcGlue(learnt))

	// asserting after backtracking flips the UIP
	p.Unroll(1, nil)
	s.AddBinary(learnt[0], learnt[1])
	p.PropagateFull(learnt[0], ReasonBinary(learnt[1]))
	assert.False(t, p.Conflict)
	assert.True(t, p.Assign.IsTrue(LitFromDimacs(-2)))
}

func TestProbeCountsAndFails(t *testing.T) {
	s := NewSat(3)
	s.AddClauseSafe(lits(-1, 2))
	s.AddClauseSafe(lits(-1, 3))
	s.AddClauseSafe(lits(-2, -3))

	p := NewPropEngine(s, nil)
	assert.Equal(t, -1, p.Probe(LitFromDimacs(1)), "1 implies both 2 and 3, conflicting")
	assert.False(t, p.Conflict, "probe unrolls the conflict")
	assert.Equal(t, 2, p.Probe(LitFromDimacs(2)), "2 and the implied -3")
	assert.Equal(t, 0, p.Level())
}
