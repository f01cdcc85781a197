package sat

import "math/rand"

// Sat bundles a CNF with the reconstruction stack mapping it back to the
// original problem and the solver's random number source. All inprocessing
// passes and the search operate on a Sat so that every transformation is
// recorded for solution reconstruction.
type Sat struct {
	CNF

	recon Reconstruction

	// Rng drives every randomized choice in the solver. Runs with the same
	// seed and configuration produce identical traces.
	Rng *rand.Rand
}

// NewSat creates an empty problem over n variables, seeded with 0.
func NewSat(n int) *Sat {
	return &Sat{
		CNF:   *NewCNF(n),
		recon: NewReconstruction(n),
		Rng:   rand.New(rand.NewSource(0)),
	}
}

// NewSatFromStorage creates a problem over n variables from pre-parsed clause
// storage, normalizing short clauses into their dedicated representation.
func NewSatFromStorage(n int, clauses ClauseStorage) *Sat {
	return &Sat{
		CNF:   *NewCNFFromStorage(n, clauses),
		recon: NewReconstruction(n),
		Rng:   rand.New(rand.NewSource(0)),
	}
}

// NewSatFromCNF wraps an existing CNF into a problem with a fresh
// reconstruction stack, taking ownership of the formula.
func NewSatFromCNF(c *CNF) *Sat {
	return &Sat{
		CNF:   *c,
		recon: NewReconstruction(c.VarCount()),
		Rng:   rand.New(rand.NewSource(0)),
	}
}

// Seed reseeds the random number source.
func (s *Sat) Seed(seed int64) { s.Rng = rand.New(rand.NewSource(seed)) }

// OrigVarCount returns the variable count of the original problem.
func (s *Sat) OrigVarCount() int { return s.recon.OrigVarCount() }

// AddRule forwards a reconstruction rule in current inner numbering.
func (s *Sat) AddRule(cl []Lit) { s.recon.AddRule(cl) }

// AddRulePivot forwards a reconstruction rule with an explicit pivot.
func (s *Sat) AddRulePivot(cl []Lit, pivot Lit) { s.recon.AddRulePivot(cl, pivot) }

// ToOuter translates an inner literal to outer numbering.
func (s *Sat) ToOuter(a Lit) Lit { return s.recon.ToOuter(a) }

// RuleCount returns the number of reconstruction rules recorded so far.
func (s *Sat) RuleCount() int { return s.recon.RuleCount() }

// ReconstructSolution lifts a model of the current CNF to a model of the
// original problem.
func (s *Sat) ReconstructSolution(a *Assignment) Assignment {
	return s.recon.Apply(a)
}

// Renumber renumbers the variables of the problem, first recording the
// translation in the reconstruction stack, then rewriting the CNF.
func (s *Sat) Renumber(trans []Lit, newVarCount int) {
	s.recon.Renumber(trans, newVarCount)
	s.CNF.Renumber(trans, newVarCount)
}

// ShuffleVariables applies a random permutation and random polarities to all
// variables. Useful for benchmarking heuristics against instance structure.
func ShuffleVariables(s *Sat) {
	n := s.VarCount()
	trans := make([]Lit, n)
	for i := 0; i < n; i++ {
		trans[i] = NewLit(i, s.Rng.Intn(2) == 1)
		j := s.Rng.Intn(i + 1)
		trans[i], trans[j] = trans[j], trans[i]
	}
	s.Renumber(trans, n)
}
