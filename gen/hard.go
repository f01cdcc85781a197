package gen

import (
	"math/rand"

	"github.com/xDarkicex/cdcl/sat"
)

// Hard generates an "at most one per group" times "at least one per group"
// instance: variables split into groups, the first partition permits at most
// one true variable per group, and every further partition reshuffles the
// variables and requires at least one true variable per group. The number of
// variables is rounded up to a multiple of groupSize.
func Hard(nvars, groupSize, partitions int, rng *rand.Rand) *sat.CNF {
	nGroups := (nvars + groupSize - 1) / groupSize
	nvars = nGroups * groupSize

	// in the planted solution the pos literals are true, the rest false
	var pos, neg []sat.Lit
	for i := 0; i < nvars; {
		pos = append(pos, sat.NewLit(i, false))
		i++
		for j := 1; j < groupSize; j++ {
			neg = append(neg, sat.NewLit(i, false))
			i++
		}
	}

	cnf := sat.NewCNF(nvars)
	tail := func(g int) []sat.Lit {
		return neg[g*(groupSize-1) : (g+1)*(groupSize-1)]
	}

	// first partition: at most one true variable per group
	for g := 0; g < nGroups; g++ {
		a := pos[g]
		t := tail(g)
		for _, b := range t {
			cnf.AddBinary(a.Neg(), b.Neg())
		}
		for i := range t {
			for j := i + 1; j < len(t); j++ {
				cnf.AddBinary(t[i].Neg(), t[j].Neg())
			}
		}
	}

	// further partitions: at least one true variable per group
	for iter := 1; iter < partitions; iter++ {
		rng.Shuffle(len(pos), func(i, j int) { pos[i], pos[j] = pos[j], pos[i] })
		rng.Shuffle(len(neg), func(i, j int) { neg[i], neg[j] = neg[j], neg[i] })
		for g := 0; g < nGroups; g++ {
			cl := append([]sat.Lit(nil), tail(g)...)
			cl = append(cl, pos[g])
			cnf.AddClause(cl, sat.ColorBlue)
		}
	}
	return cnf
}
