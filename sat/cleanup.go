package sat

// runUnitPropagation propagates all unit clauses and renumbers the fixed
// variables away. Returns the number of variables removed.
func runUnitPropagation(s *Sat) int {
	if !s.Contradiction && len(s.Units) == 0 {
		return 0
	}

	p := NewLightEngine(&s.CNF, true)

	if p.Conflict {
		// contradiction: drop everything, the empty clause says it all
		s.AddEmpty()
		s.Units = nil
		for i := range s.Bins {
			s.Bins[i] = nil
		}
		s.Clauses.Clear()
		n := s.VarCount()
		trans := make([]Lit, n)
		for i := range trans {
			trans[i] = LitElim
		}
		s.Renumber(trans, 0)
		return n
	}

	trans := make([]Lit, s.VarCount())
	for i := range trans {
		trans[i] = LitUndef
	}
	for _, u := range p.Trail() {
		trans[u.Var()] = LitFixed(u.Sign())
	}
	newCount := 0
	for i := range trans {
		if trans[i] == LitUndef {
			trans[i] = NewLit(newCount, false)
			newCount++
		}
	}
	removed := s.VarCount() - newCount
	s.Renumber(trans, newCount)
	return removed
}

// CleanupOpts selects the optional parts of a cleanup round.
type CleanupOpts struct {
	TBR     bool // transitive binary reduction at the end
	Probing bool // failed-literal probing in the fixed-point loop
}

// Cleanup runs the cheap simplifications to a fixed point: unit propagation,
// equivalent-literal substitution and failed-literal probing, followed by
// transitive binary reduction and clause storage compaction. Cheap enough to
// run before and after every serious pass.
func Cleanup(s *Sat) { CleanupWith(s, CleanupOpts{TBR: true, Probing: true}) }

// CleanupWith is Cleanup with the optional passes selected explicitly.
func CleanupWith(s *Sat, opts CleanupOpts) {
	log := NewLogger("cleanup")

	// this loop could theoretically go quadratic, but in practice a few
	// iterations settle it
	for {
		runUnitPropagation(s)
		if RunSCC(s) != 0 {
			continue
		}
		if opts.Probing && RunProbing(s) {
			continue
		}
		break
	}
	if opts.TBR && !s.Contradiction {
		RunBinaryReduction(s)
	}
	s.Clauses.PruneBlack()
	s.Clauses.Compactify()
	log.Debugf("now at %d vars, %d bins, %d irred, %d learnt",
		s.VarCount(), s.BinaryCount(), s.LongCountIrred(), s.LongCountRed())
}

// IsNormalForm reports whether the CNF has no contradiction flag with
// leftover variables, no unit clauses, and an acyclic binary graph. Cleanup
// establishes this form.
func IsNormalForm(c *CNF) bool {
	if c.Contradiction && c.VarCount() != 0 {
		return false
	}
	if len(c.Units) != 0 {
		return false
	}
	return NewTopOrder(c).Valid
}
