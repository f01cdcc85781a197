package sat

// Clause vivification: propagate the negation of a clause literal by literal;
// a conflict or an implied literal along the way proves a shorter or stronger
// clause, which replaces the original.

// RunVivification vivifies long clauses. Level 1 handles irredundant
// clauses, level 2 additionally attempts binary-assisted strengthening of
// individual literals, level 3 also treats learnt clauses. Returns the number
// of clauses rewritten.
func RunVivification(s *Sat, level int) int {
	if s.Contradiction || level <= 0 {
		return 0
	}
	log := NewLogger("vivify")
	p := NewLightEngine(&s.CNF, true)
	if p.Conflict {
		s.AddEmpty()
		return 0
	}

	nRewritten := 0
	snapshot := append([]CRef(nil), s.Clauses.Crefs()...)
	for _, ci := range snapshot {
		cl := s.Clauses.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}
		if cl.Color() == ColorGreen && level < 3 {
			continue
		}
		color := cl.Color()

		// the clause must not propagate against itself while its negation is
		// assumed
		p.DetachClause(ci)

		lits := append([]Lit(nil), cl.Lits()...)
		newLits := make([]Lit, 0, len(lits))
		changed := false

		p.Mark()
		for idx, l := range lits {
			if p.Assign.IsTrue(l) {
				// the previous literals already imply l
				newLits = append(newLits, l)
				changed = changed || idx < len(lits)-1
				break
			}
			if p.Assign.IsFalse(l) {
				// l is falsified whenever the rest of the prefix is
				changed = true
				continue
			}

			if level >= 2 {
				// try to replace l by a stronger literal implying it
				for _, a := range s.Bins[l] {
					if p.Assign.Assigned(a) {
						continue
					}
					if p.Probe(a) == -1 {
						l = a.Neg()
						changed = true
						break
					}
				}
			}

			if p.Propagate(l.Neg()) == -1 {
				// negated prefix plus l conflicts: the clause holds already
				// at this literal
				newLits = append(newLits, l)
				changed = changed || idx < len(lits)-1
				break
			}
			newLits = append(newLits, l)
		}
		p.Unroll()

		if !changed {
			p.AttachClause(ci)
			continue
		}

		nRewritten++
		cl.SetColor(ColorBlack)
		if n := normalizeLits(newLits); n >= 0 {
			newLits = newLits[:n]
			if cj := s.AddClause(newLits, color); cj != CRefUndef {
				p.AttachClause(cj)
			}
		}
	}
	s.Clauses.PruneBlack()
	if nRewritten > 0 {
		log.Infof("rewrote %d clauses", nRewritten)
	}
	return nRewritten
}
