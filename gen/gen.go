// Package gen builds SAT instances: random satisfiable 3-CNF, hard
// combinatorial group/partition instances, random circuit inversion problems
// and SHA-256 preimage instances.
package gen

import (
	"math/rand"

	"github.com/xDarkicex/cdcl/sat"
)

// DefaultRatio is the clause/variable ratio of random 3-SAT generation.
// Around 4.26 lies the phase transition between mostly satisfiable and
// mostly unsatisfiable instances, which is also roughly where the hardest
// instances live. This generator only emits satisfiable instances, so the
// fact does not apply exactly, but it remains a reasonable default.
const DefaultRatio = 4.26

// Random3SAT generates a random 3-CNF with a planted solution: clauses are
// sampled uniformly and kept only when the hidden assignment satisfies them.
// Returns the formula and the planted assignment.
func Random3SAT(nvars, nclauses int, rng *rand.Rand) (*sat.CNF, sat.Assignment) {
	sol := sat.NewAssignment(nvars)
	for i := 0; i < nvars; i++ {
		sol.Set(sat.NewLit(i, rng.Intn(2) == 1))
	}

	cnf := sat.NewCNF(nvars)
	cl := make([]sat.Lit, 0, 3)
	for ci := 0; ci < nclauses; {
		cl = cl[:0]
		for len(cl) < 3 {
			a := sat.Lit(rng.Intn(2 * nvars))
			dup := false
			for _, b := range cl {
				if a.Var() == b.Var() {
					dup = true
					break
				}
			}
			if !dup {
				cl = append(cl, a)
			}
		}
		if sol.Satisfied(cl) {
			ci++
			cnf.AddClause(append([]sat.Lit(nil), cl...), sat.ColorBlue)
		}
	}
	return cnf, sol
}
