package sat

import "fmt"

// Reconstruction maps a solution of the current, possibly transformed, CNF
// back to a solution of the original problem. Inprocessing passes that remove
// clauses or variables (BVE, BCE, renumbering) record their transformations
// here as they run.
//
// A rule is a clause in original variable numbering, interpreted as "if the
// candidate model does not satisfy these literals, flip the leading variable".
// Rules are not clauses of the problem; a rule may well end up unsatisfied
// after a later rule flips one of its variables. They must be applied in
// reverse order of creation.
type Reconstruction struct {
	outerVarCount int
	origVarCount  int

	// inner variable -> outer literal; injective, not necessarily surjective
	toOuterLit []Lit

	rules ClauseStorage
}

// NewReconstruction creates an identity reconstruction over n variables. The
// original variable count is fixed for the lifetime of the value; auxiliary
// variables appear implicitly when rules mention them.
func NewReconstruction(n int) Reconstruction {
	to := make([]Lit, n)
	for i := range to {
		to[i] = NewLit(i, false)
	}
	return Reconstruction{outerVarCount: n, origVarCount: n, toOuterLit: to}
}

// OrigVarCount returns the variable count of the original problem.
func (r *Reconstruction) OrigVarCount() int { return r.origVarCount }

// RuleCount returns the number of rules recorded so far.
func (r *Reconstruction) RuleCount() int { return len(r.rules.Crefs()) }

// ToOuter translates an inner literal to outer numbering, lazily allocating
// outer variables for inner ones never seen before.
func (r *Reconstruction) ToOuter(a Lit) Lit {
	if !a.Proper() {
		panic(fmt.Sprintf("sat: cannot translate %v to outer numbering", a))
	}
	for a.Var() >= len(r.toOuterLit) {
		r.toOuterLit = append(r.toOuterLit, NewLit(r.outerVarCount, false))
		r.outerVarCount++
	}
	return r.toOuterLit[a.Var()].XorSign(a.Sign())
}

// AddRule records a rule given in inner numbering.
func (r *Reconstruction) AddRule(cl []Lit) {
	if len(cl) == 0 {
		panic("sat: empty reconstruction rule")
	}
	ci := r.rules.AddClause(cl, ColorBlue)
	lits := r.rules.Clause(ci).Lits()
	for i, a := range lits {
		lits[i] = r.ToOuter(a)
	}
}

// AddRulePivot records a rule with the given literal moved to the leading
// position, making its variable the one flipped on application.
func (r *Reconstruction) AddRulePivot(cl []Lit, pivot Lit) {
	ci := r.rules.AddClause(cl, ColorBlue)
	lits := r.rules.Clause(ci).Lits()
	for i, a := range lits {
		lits[i] = r.ToOuter(a)
		if a == pivot {
			lits[0], lits[i] = lits[i], lits[0]
		}
	}
}

// AddUnit records a rule fixing a single literal.
func (r *Reconstruction) AddUnit(a Lit) { r.AddRule([]Lit{a}) }

// AddEquivalence records rules forcing a and b to the same value.
func (r *Reconstruction) AddEquivalence(a, b Lit) {
	if a.Var() == b.Var() {
		panic("sat: equivalence rule on a single variable")
	}
	r.AddRule([]Lit{a, b.Neg()})
	r.AddRule([]Lit{a.Neg(), b})
}

// Renumber updates the inner-to-outer mapping under the variable translation
// trans. Fixed variables become unit rules; when several old variables map to
// the same new one, equivalence rules keep the extra ones in sync.
func (r *Reconstruction) Renumber(trans []Lit, newVarCount int) {
	if len(trans) < len(r.toOuterLit) {
		panic("sat: reconstruction renumber translation too short")
	}
	toNew := make([]Lit, newVarCount)
	for i := range toNew {
		toNew[i] = LitUndef
	}
	for i, t := range trans {
		switch {
		case t == LitElim:
		case t.Fixed():
			r.AddUnit(NewLit(i, t.Sign()))
		case t.Proper() && t.Var() < newVarCount:
			if toNew[t.Var()] == LitUndef {
				toNew[t.Var()] = r.ToOuter(NewLit(i, t.Sign()))
			} else {
				// second old variable mapped onto the same new one: record
				// the equivalence directly in outer numbering
				a := r.ToOuter(NewLit(i, t.Sign()))
				b := toNew[t.Var()]
				r.rules.AddClause([]Lit{a, b.Neg()}, ColorBlue)
				r.rules.AddClause([]Lit{a.Neg(), b}, ColorBlue)
			}
		default:
			panic(fmt.Sprintf("sat: invalid renumber target %v", t))
		}
	}
	for _, a := range toNew {
		if a == LitUndef {
			panic("sat: renumber target variable left unmapped")
		}
	}
	r.toOuterLit = toNew
}

// Apply lifts an inner assignment to a complete assignment of the original
// problem. Unassigned outer variables default to false before the rules run
// in reverse creation order.
func (r *Reconstruction) Apply(a *Assignment) Assignment {
	if a.VarCount() < len(r.toOuterLit) {
		panic("sat: inner assignment too small for reconstruction")
	}
	out := NewAssignment(r.outerVarCount)
	for i := 0; i < 2*len(r.toOuterLit); i++ {
		l := Lit(i)
		if a.IsTrue(l) {
			out.Set(r.toOuterLit[l.Var()].XorSign(l.Sign()))
		}
	}
	out.FixUnassigned()

	crefs := r.rules.Crefs()
	for i := len(crefs) - 1; i >= 0; i-- {
		cl := r.rules.Clause(crefs[i])
		if !out.Satisfied(cl.Lits()) {
			out.ForceSet(cl.Get(0))
		}
	}
	return out
}

// MemoryUsage returns the heap bytes held by the rules and mapping.
func (r *Reconstruction) MemoryUsage() int {
	return r.rules.MemoryUsage() + 4*cap(r.toOuterLit)
}
