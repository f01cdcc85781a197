package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructionRulesApplyInReverse(t *testing.T) {
	r := NewReconstruction(2)
	r.AddRule(lits(1))
	r.AddRule(lits(-1))

	// the later rule (-1) is applied first and already holds; the earlier
	// rule (1) is applied last and sets 1
	a := NewAssignment(2)
	out := r.Apply(&a)
	assert.True(t, out.IsTrue(LitFromDimacs(1)))
}

func TestReconstructionPivotLeads(t *testing.T) {
	r := NewReconstruction(3)
	r.AddRulePivot(lits(2, 3), LitFromDimacs(3))

	a := NewAssignment(3)
	out := r.Apply(&a)
	assert.True(t, out.IsTrue(LitFromDimacs(3)), "the pivot is the flipped variable")
	assert.False(t, out.IsTrue(LitFromDimacs(2)))
}

func TestReconstructionSatisfiedRuleUntouched(t *testing.T) {
	r := NewReconstruction(2)
	r.AddRulePivot(lits(1, 2), LitFromDimacs(1))

	a := NewAssignment(2)
	a.Set(LitFromDimacs(2))
	out := r.Apply(&a)
	assert.False(t, out.IsTrue(LitFromDimacs(1)), "satisfied rules flip nothing")
	assert.True(t, out.IsTrue(LitFromDimacs(2)))
}

func TestReconstructionRenumberFixed(t *testing.T) {
	r := NewReconstruction(2)
	// var 0 fixed true, var 1 becomes inner var 0
	r.Renumber([]Lit{LitOne, NewLit(0, false)}, 1)

	inner := NewAssignment(1)
	inner.Set(NewLit(0, false))
	out := r.Apply(&inner)
	require.Equal(t, 2, out.VarCount())
	assert.True(t, out.IsTrue(LitFromDimacs(1)), "fixed value lifted by rule")
	assert.True(t, out.IsTrue(LitFromDimacs(2)), "surviving variable mapped through")
}

func TestReconstructionRenumberNegated(t *testing.T) {
	r := NewReconstruction(1)
	// inner var 0 is the negation of outer var 0
	r.Renumber([]Lit{NewLit(0, true)}, 1)

	inner := NewAssignment(1)
	inner.Set(NewLit(0, false)) // inner true
	out := r.Apply(&inner)
	assert.True(t, out.IsTrue(LitFromDimacs(-1)))
}

func TestReconstructionEquivalence(t *testing.T) {
	r := NewReconstruction(2)
	// both outer vars collapse onto one inner var
	r.Renumber([]Lit{NewLit(0, false), NewLit(0, false)}, 1)

	inner := NewAssignment(1)
	inner.Set(NewLit(0, false))
	out := r.Apply(&inner)
	assert.True(t, out.IsTrue(LitFromDimacs(1)))
	assert.True(t, out.IsTrue(LitFromDimacs(2)), "merged variable tracks the representative")
}

func TestSatRenumberRecordsReconstruction(t *testing.T) {
	s := NewSat(2)
	s.AddClauseSafe(lits(1, 2))
	s.Renumber([]Lit{LitOne, NewLit(0, false)}, 1)

	inner := NewAssignment(1)
	sol := s.ReconstructSolution(&inner)
	assert.True(t, sol.Satisfied(lits(1, 2)))
}
