package sat

// Failed-literal probing over the binary implication graph, with lazy
// hyper-binary resolution, plus the much more expensive probing of literal
// pairs.

// probeDFS probes a and, reusing its propagation, every literal implying a.
// Returns a learnt unit (the negation of a failed literal) or LitUndef.
func probeDFS(a Lit, p *LightEngine, done *bitVec) Lit {
	if done.get(int(a)) {
		return LitUndef
	}
	done.set(int(a))

	p.Mark()
	p.PropagateWithHBR(a)
	if p.Conflict {
		p.Unroll()
		return a.Neg()
	}
	for _, b := range p.cnf.Bins[a] {
		// b.Neg() implies a, so probing it on top reuses the current trail
		if u := probeDFS(b.Neg(), p, done); u != LitUndef {
			p.Unroll()
			return u
		}
	}
	p.Unroll()
	return LitUndef
}

// RunProbing probes the sinks of the binary implication graph, walking up
// towards stronger literals. Failed literals become units, and hyper-binary
// resolution records a binary for every long-clause propagation reached from
// a single probe. Returns true if anything was learnt.
func RunProbing(s *Sat) bool {
	if s.Contradiction {
		return false
	}
	log := NewLogger("probing")
	p := NewLightEngine(&s.CNF, true)
	if p.Conflict {
		s.AddEmpty()
		return true
	}

	done := newBitVec(2 * s.VarCount())
	nUnits := 0
	for i := 0; i < 2*s.VarCount(); i++ {
		a := Lit(i)
		// only literals with predecessors and no successors; everything else
		// is reached through them
		if len(s.Bins[a]) == 0 || len(s.Bins[a.Neg()]) != 0 {
			continue
		}
		u := probeDFS(a, p, &done)
		if u == LitUndef {
			continue
		}
		nUnits++
		s.AddUnary(u)
		if p.Propagate(u) == -1 {
			break // contradiction, the next cleanup settles it
		}
	}
	if nUnits > 0 || p.NHbr > 0 {
		log.Infof("found %d units and %d hyper-binaries", nUnits, p.NHbr)
		return true
	}
	return false
}

// RunProbingFull probes every unassigned literal, not just the graph sinks.
// Failed literals are analyzed into units and propagated immediately.
// Returns the number of failed literals found.
func RunProbingFull(s *Sat, stats *Stats) int {
	if s.Contradiction {
		return 0
	}
	log := NewLogger("probing")
	p := NewPropEngine(s, stats)
	if p.Conflict {
		return 0
	}

	nFound := 0
	for i := 0; i < 2*s.VarCount(); i++ {
		branch := Lit(i)
		if p.Assign.Assigned(branch) {
			continue
		}
		p.Branch(branch)
		if !p.Conflict {
			p.Unroll(0, nil)
			continue
		}
		// everything besides the failed branch is at level 0, so the
		// asserting clause is the unit
		learnt := p.AnalyzeConflict(nil, false)
		p.Unroll(0, nil)
		p.AddClause(learnt, ColorBlue)
		nFound++
		if len(learnt) >= 1 {
			p.PropagateFull(learnt[0], ReasonUndef)
		}
		if p.Conflict {
			break // contradiction, the next cleanup settles it
		}
	}
	if nFound > 0 {
		log.Infof("found %d failed literals", nFound)
	}
	return nFound
}

// ProbeBinary probes ordered pairs of literals: branch a, branch b, and on
// conflict learn the binary (not-a or not-b). Successful probes are cached in
// a seen bitmap, since nothing implied by a non-conflicting b can conflict
// either; walking the pairs in topological order and hopping from a to a
// weaker successor keeps that cache valid across outer literals. Returns the
// number of learnt units and binaries.
func ProbeBinary(s *Sat, stats *Stats) int {
	log := NewLogger("bin-probing")
	if s.Contradiction {
		return 0
	}
	p := NewPropEngine(s, stats)
	top := NewTopOrder(&s.CNF)

	// running this without cheap normalization first is a waste of time
	if !top.Valid || p.Conflict || len(s.Units) != 0 {
		log.Warnf("CNF not normalized, skipping binary probing")
		return 0
	}

	seenA := newBitVec(2 * s.VarCount())
	seenB := newBitVec(2 * s.VarCount())
	nTries, nUnitFails, nBinFails := 0, 0, 0

	for _, a0 := range top.Lits {
		if s.Contradiction {
			break
		}
		if p.Conflict {
			s.AddEmpty()
			break
		}
		a := a0
		if p.Assign.Assigned(a) || seenA.get(int(a)) {
			continue
		}
		seenB.clear()

	useThisA:
		for {
			seenA.set(int(a))
			p.Branch(a)

			for _, b := range top.Lits {
				if p.Conflict {
					// a itself failed
					nUnitFails++
					p.Unroll(0, nil)
					s.AddUnary(a.Neg())
					p.PropagateFull(a.Neg(), ReasonUndef)
					break useThisA
				}
				if p.Assign.Assigned(b) || seenB.get(int(b)) {
					continue
				}
				if uint32(b) > uint32(a) {
					continue // symmetry breaking
				}
				p.Branch(b)
				nTries++
				if p.Conflict {
					nBinFails++
					p.Unroll(1, nil)
					s.AddBinary(a.Neg(), b.Neg())
					p.PropagateFull(b.Neg(), ReasonBinary(a.Neg()))
					continue
				}
				for _, c := range p.TrailLevel(2) {
					seenB.set(int(c))
				}
				p.Unroll(1, nil)
			}
			if p.Conflict {
				// conflict from the very last b
				nUnitFails++
				p.Unroll(0, nil)
				s.AddUnary(a.Neg())
				p.PropagateFull(a.Neg(), ReasonUndef)
				break
			}
			p.Unroll(0, nil)

			// hop to a weaker literal implied by a so seenB stays usable
			hopped := false
			for _, a2 := range s.Bins[a.Neg()] {
				if !p.Assign.Assigned(a2) && !seenA.get(int(a2)) {
					a = a2
					hopped = true
					break
				}
			}
			if !hopped {
				break
			}
		}
	}

	log.Infof("found %d units and %d binaries using %d tries",
		nUnitFails, nBinFails, nTries)
	return nUnitFails + nBinFails
}
