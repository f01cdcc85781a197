package sat

// Subsumption and self-subsuming resolution over long clauses, plus the
// virtual-binary variant that treats the transitive closure of the binary
// implication graph as a source of subsuming binaries.

type subsumption struct {
	s    *Sat
	occs [][]CRef
	seen bitVec
	log  Logger

	nRemoved      int
	nStrengthened int
}

func newSubsumption(s *Sat) *subsumption {
	su := &subsumption{
		s:    s,
		occs: make([][]CRef, 2*s.VarCount()),
		seen: newBitVec(2 * s.VarCount()),
		log:  NewLogger("subsume"),
	}
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}
		for _, a := range cl.Lits() {
			su.occs[a] = append(su.occs[a], ci)
		}
	}
	return su
}

// strengthen removes the literal a from the clause. Clauses that shrink below
// three literals move to their dedicated representation.
func (su *subsumption) strengthen(ci CRef, a Lit) {
	cl := su.s.Clauses.Clause(ci)
	lits := cl.Lits()
	n := len(lits)
	for i, l := range lits {
		if l == a {
			copy(lits[i:], lits[i+1:n])
			break
		}
	}
	cl.setSize(n - 1)
	su.nStrengthened++
	if n-1 == 2 {
		su.s.AddBinary(cl.Get(0), cl.Get(1))
		cl.SetColor(ColorBlack)
	}
}

// runLong does long/long subsumption and self-subsuming resolution. For each
// clause the candidate set comes from the occurrence lists of its rarest
// variable; a candidate matching every literal with at most one sign
// discrepancy is removed (zero discrepancies) or strengthened (one).
func (su *subsumption) runLong() {
	for _, ci := range su.s.Clauses.Crefs() {
		cl := su.s.Clauses.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}

		// rarest pivot variable of the clause
		pivot := cl.Get(0)
		best := len(su.occs[pivot]) + len(su.occs[pivot.Neg()])
		for _, a := range cl.Lits()[1:] {
			if n := len(su.occs[a]) + len(su.occs[a.Neg()]); n < best {
				pivot, best = a, n
			}
		}

		for _, list := range [][]CRef{su.occs[pivot], su.occs[pivot.Neg()]} {
			for _, cj := range list {
				if cj == ci {
					continue
				}
				cl2 := su.s.Clauses.Clause(cj)
				if cl2.Color() == ColorBlack || cl2.Size() < cl.Size() {
					continue
				}

				su.seen.clear()
				for _, l := range cl2.Lits() {
					su.seen.set(int(l))
				}
				flips := 0
				var flipped Lit
				match := true
				for _, l := range cl.Lits() {
					switch {
					case su.seen.get(int(l)):
					case su.seen.get(int(l.Neg())):
						flips++
						flipped = l
					default:
						match = false
					}
					if !match || flips > 1 {
						break
					}
				}
				if !match || flips > 1 {
					continue
				}

				if flips == 0 {
					// cl2 subsumed; a blue victim passes its color on
					if cl2.Color() == ColorBlue && cl.Color() != ColorBlue {
						cl.SetColor(ColorBlue)
					}
					cl2.SetColor(ColorBlack)
					su.nRemoved++
				} else {
					su.strengthen(cj, flipped.Neg())
				}
			}
		}
	}
}

// runVirtualBinary subsumes with the implied binaries of the implication
// graph: after marking everything reachable from a, a clause containing
// not-a and a marked literal y is subsumed by the entailed binary
// (not-a or y), and a clause containing a and a marked literal is
// strengthened by dropping a.
func (su *subsumption) runVirtualBinary() {
	var stack []Lit
	for i := 0; i < 2*su.s.VarCount(); i++ {
		a := Lit(i)
		succ := su.s.Bins[a.Neg()]
		if len(succ) == 0 {
			continue
		}
		su.seen.clear()
		stack = stack[:0]
		for _, b := range succ {
			if su.seen.add(int(b)) {
				stack = append(stack, b)
			}
		}
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, d := range su.s.Bins[c.Neg()] {
				if su.seen.add(int(d)) {
					stack = append(stack, d)
				}
			}
		}

		for _, ci := range su.occs[a.Neg()] {
			cl := su.s.Clauses.Clause(ci)
			if cl.Color() == ColorBlack {
				continue
			}
			for _, y := range cl.Lits() {
				if y != a.Neg() && su.seen.get(int(y)) {
					cl.SetColor(ColorBlack)
					su.nRemoved++
					break
				}
			}
		}
		for _, ci := range su.occs[a] {
			cl := su.s.Clauses.Clause(ci)
			if cl.Color() == ColorBlack {
				continue
			}
			for _, y := range cl.Lits() {
				if y != a && su.seen.get(int(y)) {
					su.strengthen(ci, a)
					break
				}
			}
		}
	}
}

// RunSubsumption runs the subsumption passes selected by level: 1 enables the
// virtual-binary variant, 2 additionally the full long/long pass. Returns the
// number of removed plus strengthened clauses.
func RunSubsumption(s *Sat, level int) int {
	if s.Contradiction || level <= 0 {
		return 0
	}
	su := newSubsumption(s)
	if level >= 1 {
		su.runVirtualBinary()
	}
	if level >= 2 {
		su.runLong()
	}
	s.Clauses.PruneBlack()
	if su.nRemoved > 0 || su.nStrengthened > 0 {
		su.log.Infof("removed %d and strengthened %d clauses",
			su.nRemoved, su.nStrengthened)
	}
	return su.nRemoved + su.nStrengthened
}
