package sat

import "sort"

// Bounded variable elimination, blocked clause elimination and pure literal
// elimination. All three record their removals on the reconstruction stack
// (pure literals only indirectly, through the renumbering of the following
// cleanup).

// isResolventTautological reports whether the resolvent of two clauses sharing
// exactly one variable with opposite signs is a tautology. Both literal lists
// must be sorted by variable.
func isResolventTautological(a, b []Lit) bool {
	count := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Var() < b[j].Var():
			i++
		case a[i].Var() > b[j].Var():
			j++
		default:
			if a[i] == b[j].Neg() {
				count++
				if count >= 2 {
					return true
				}
			}
			i++
			j++
		}
	}
	return false
}

// resolvent merges two sorted clauses, dropping the single variable shared
// with opposite signs. The caller guarantees the resolvent is not
// tautological; the result is sorted.
func resolvent(a, b []Lit) []Lit {
	r := make([]Lit, 0, len(a)+len(b)-2)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Var() < b[j].Var():
			r = append(r, a[i])
			i++
		case a[i].Var() > b[j].Var():
			r = append(r, b[j])
			j++
		default:
			if a[i] != b[j].Neg() {
				r = append(r, a[i])
			}
			i++
			j++
		}
	}
	r = append(r, a[i:]...)
	r = append(r, b[j:]...)
	return r
}

// resolventBin resolves a sorted clause with the binary clause (b or c).
func resolventBin(a []Lit, b, c Lit) []Lit {
	if b.Var() > c.Var() {
		b, c = c, b
	}
	return resolvent(a, []Lit{b, c})
}

// scoreHeap is a min-heap of (score, variable) pairs. Stale entries are
// allowed; consumers verify the score before acting.
type scoreHeap struct {
	score []int
	vars  []int
}

func (h *scoreHeap) len() int { return len(h.score) }

func (h *scoreHeap) push(score, v int) {
	h.score = append(h.score, score)
	h.vars = append(h.vars, v)
	i := len(h.score) - 1
	for i > 0 {
		p := (i - 1) / 2
		if h.score[p] <= h.score[i] {
			break
		}
		h.score[p], h.score[i] = h.score[i], h.score[p]
		h.vars[p], h.vars[i] = h.vars[i], h.vars[p]
		i = p
	}
}

func (h *scoreHeap) pop() (int, int) {
	s, v := h.score[0], h.vars[0]
	n := len(h.score) - 1
	h.score[0], h.vars[0] = h.score[n], h.vars[n]
	h.score, h.vars = h.score[:n], h.vars[:n]
	i := 0
	for {
		c := 2*i + 1
		if c >= n {
			break
		}
		if c+1 < n && h.score[c+1] < h.score[c] {
			c++
		}
		if h.score[i] <= h.score[c] {
			break
		}
		h.score[i], h.score[c] = h.score[c], h.score[i]
		h.vars[i], h.vars[c] = h.vars[c], h.vars[i]
		i = c
	}
	return s, v
}

// scoreInfinity is the sentinel for variables that must not or can not be
// eliminated profitably.
const scoreInfinity = 1000

// bve carries the state of one bounded variable elimination run. Invariants:
// literals of all blue clauses are sorted, and the occurrence lists contain
// exactly the live blue clauses (restored after each elimination).
type bve struct {
	s          *Sat
	occs       [][]CRef
	eliminated bitVec
	growth     int
	hasUnit    bitVec
}

func newBVE(s *Sat, growth int) *bve {
	b := &bve{
		s:          s,
		occs:       make([][]CRef, 2*s.VarCount()),
		eliminated: newBitVec(s.VarCount()),
		growth:     growth,
		hasUnit:    newBitVec(s.VarCount()),
	}
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		if cl.Color() != ColorBlue {
			continue
		}
		lits := cl.Lits()
		sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
		for _, a := range lits {
			b.occs[a] = append(b.occs[a], ci)
		}
	}
	for _, u := range s.Units {
		b.hasUnit.set(u.Var())
	}
	return b
}

// computeScore returns the number of non-tautological resolvents minus the
// number of removed clauses for eliminating v, aborting with scoreInfinity
// once the score exceeds the growth bound.
func (b *bve) computeScore(v int) int {
	// eliminating a variable with a unit clause would break the resolution
	// bookkeeping and is pointless anyway
	if b.hasUnit.get(v) {
		return scoreInfinity
	}
	pos, neg := NewLit(v, false), NewLit(v, true)

	// variables with many occurrences are not worth scoring
	if len(b.occs[pos])+len(b.s.Bins[pos]) > 10 &&
		len(b.occs[neg])+len(b.s.Bins[neg]) > 10 {
		return scoreInfinity
	}

	score := -len(b.occs[pos]) - len(b.occs[neg]) -
		len(b.s.Bins[pos]) - len(b.s.Bins[neg])

	// binary-binary resolvents; tautologies among these mean equivalent or
	// failing literals, which cheaper passes pick up, so no credit given
	score += len(b.s.Bins[pos]) * len(b.s.Bins[neg])
	if score > b.growth {
		return scoreInfinity
	}

	// long-binary resolvents
	for _, x := range b.s.Bins[neg] {
		for _, ci := range b.occs[pos] {
			if !b.s.Clauses.Clause(ci).Contains(x.Neg()) {
				score++
				if score > b.growth {
					return scoreInfinity
				}
			}
		}
	}
	for _, x := range b.s.Bins[pos] {
		for _, ci := range b.occs[neg] {
			if !b.s.Clauses.Clause(ci).Contains(x.Neg()) {
				score++
				if score > b.growth {
					return scoreInfinity
				}
			}
		}
	}

	// long-long resolvents
	for _, ci := range b.occs[pos] {
		for _, cj := range b.occs[neg] {
			if !isResolventTautological(b.s.Clauses.Clause(ci).Lits(),
				b.s.Clauses.Clause(cj).Lits()) {
				score++
				if score > b.growth {
					return scoreInfinity
				}
			}
		}
	}
	return score
}

// addResolvent inserts a resolvent clause and keeps the occurrence lists in
// sync for long clauses.
func (b *bve) addResolvent(cl []Lit) {
	ci := b.s.AddClause(cl, ColorBlue)
	if ci == CRefUndef {
		return
	}
	for _, a := range cl {
		b.occs[a] = append(b.occs[a], ci)
	}
}

// eliminate removes variable v, adding all non-tautological resolvents and
// pushing every removed clause onto the reconstruction stack with v as pivot.
func (b *bve) eliminate(v int) {
	pos, neg := NewLit(v, false), NewLit(v, true)

	// binary-binary resolvents
	for _, x := range b.s.Bins[pos] {
		for _, y := range b.s.Bins[neg] {
			if x == y {
				b.s.AddUnary(x)
				b.hasUnit.set(x.Var())
			} else if x != y.Neg() {
				b.s.AddBinary(x, y)
			}
		}
	}

	// long-binary resolvents
	for _, ci := range b.occs[pos] {
		for _, x := range b.s.Bins[neg] {
			if !b.s.Clauses.Clause(ci).Contains(x.Neg()) {
				b.addResolvent(resolventBin(b.s.Clauses.Clause(ci).Lits(), x, neg))
			}
		}
	}
	for _, ci := range b.occs[neg] {
		for _, x := range b.s.Bins[pos] {
			if !b.s.Clauses.Clause(ci).Contains(x.Neg()) {
				b.addResolvent(resolventBin(b.s.Clauses.Clause(ci).Lits(), x, pos))
			}
		}
	}

	// long-long resolvents
	for _, ci := range b.occs[pos] {
		for _, cj := range b.occs[neg] {
			li, lj := b.s.Clauses.Clause(ci).Lits(), b.s.Clauses.Clause(cj).Lits()
			if !isResolventTautological(li, lj) {
				b.addResolvent(resolvent(li, lj))
			}
		}
	}

	// collect and remove the old clauses
	var removed [][]Lit
	for _, lit := range []Lit{pos, neg} {
		for _, ci := range b.occs[lit] {
			cl := b.s.Clauses.Clause(ci)
			removed = append(removed, append([]Lit(nil), cl.Lits()...))
			cl.SetColor(ColorBlack)
		}
		b.occs[lit] = nil
		for _, x := range b.s.Bins[lit] {
			removed = append(removed, []Lit{lit, x})
		}
		b.s.Bins[lit] = nil
	}

	// record removals for solution reconstruction, pivot first
	for _, cl := range removed {
		pivot := pos
		for _, a := range cl {
			if a.Var() == v {
				pivot = a
				break
			}
		}
		b.s.AddRulePivot(cl, pivot)
	}
}

// run eliminates variables in order of ascending score until no candidate
// within the growth bound remains. Returns the number of eliminated
// variables.
func (b *bve) run() int {
	score := make([]int, b.s.VarCount())
	var queue scoreHeap
	for v := range score {
		score[v] = b.computeScore(v)
		if score[v] <= b.growth {
			queue.push(score[v], v)
		}
	}
	if queue.len() == 0 {
		return 0
	}

	nRemoved := 0
	seen := newBitVec(b.s.VarCount())
	var todo []int
	for queue.len() > 0 {
		sc, v := queue.pop()
		if b.eliminated.get(v) || score[v] != sc {
			continue // outdated proposal
		}
		pos, neg := NewLit(v, false), NewLit(v, true)

		// variables whose score changes with this elimination
		todo = todo[:0]
		for _, lit := range []Lit{pos, neg} {
			for _, x := range b.s.Bins[lit] {
				if seen.add(x.Var()) {
					todo = append(todo, x.Var())
				}
			}
			for _, ci := range b.occs[lit] {
				for _, x := range b.s.Clauses.Clause(ci).Lits() {
					if seen.add(x.Var()) {
						todo = append(todo, x.Var())
					}
				}
			}
		}

		b.eliminate(v)
		nRemoved++
		b.eliminated.set(v)
		score[v] = scoreInfinity

		// restore the occurrence/binary invariants for the neighborhood and
		// rescore it
		for _, j := range todo {
			for _, lit := range []Lit{NewLit(j, false), NewLit(j, true)} {
				occ := b.occs[lit][:0]
				for _, ci := range b.occs[lit] {
					if b.s.Clauses.Clause(ci).Color() != ColorBlack {
						occ = append(occ, ci)
					}
				}
				b.occs[lit] = occ

				bins := b.s.Bins[lit][:0]
				for _, x := range b.s.Bins[lit] {
					if x.Var() != v {
						bins = append(bins, x)
					}
				}
				b.s.Bins[lit] = bins
			}
			seen.unset(j)
			score[j] = b.computeScore(j)
			if score[j] <= b.growth {
				queue.push(score[j], j)
			}
		}
	}

	// learnt clauses over eliminated variables can not be kept
	for _, ci := range b.s.Clauses.Crefs() {
		cl := b.s.Clauses.Clause(ci)
		if cl.Color() != ColorGreen {
			continue
		}
		for _, a := range cl.Lits() {
			if b.eliminated.get(a.Var()) {
				cl.SetColor(ColorBlack)
				break
			}
		}
	}

	// eliminated variables can not stay in the inner numbering
	trans := make([]Lit, b.s.VarCount())
	newCount := 0
	for v := range trans {
		if b.eliminated.get(v) {
			trans[v] = LitElim
		} else {
			trans[v] = NewLit(newCount, false)
			newCount++
		}
	}
	b.s.Renumber(trans, newCount)
	return nRemoved
}

// RunElimination performs bounded variable elimination: a variable is
// eliminated when replacing its clauses by all their resolvents grows the
// clause count by at most growth. Returns the number of eliminated variables.
func RunElimination(s *Sat, growth int) int {
	if s.Contradiction || growth < 0 {
		return 0
	}
	log := NewLogger("bve")
	n := newBVE(s, growth).run()
	if n > 0 {
		log.Infof("removed %d vars", n)
	}
	return n
}

// RunBlockedClauseElimination removes blue clauses blocked on one of their
// literals: clauses whose every resolvent on that literal is tautological.
// Removed clauses go onto the reconstruction stack with the blocking literal
// as pivot. Runs a second sweep if the first one found anything. Returns the
// number of removed clauses.
func RunBlockedClauseElimination(s *Sat) int {
	if s.Contradiction {
		return 0
	}
	log := NewLogger("bce")
	n := runBCE(s)
	if n > 0 {
		n += runBCE(s)
		log.Infof("removed %d clauses", n)
	}
	return n
}

func runBCE(s *Sat) int {
	occs := make([][]CRef, 2*s.VarCount())
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		if cl.Color() != ColorBlue {
			continue
		}
		lits := cl.Lits()
		sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
		for _, a := range lits {
			occs[a] = append(occs[a], ci)
		}
	}
	hasUnit := newBitVec(s.VarCount())
	for _, u := range s.Units {
		hasUnit.set(u.Var())
	}

	nFound := 0
	for i := 0; i < 2*s.VarCount(); i++ {
		a := Lit(i)
		if hasUnit.get(a.Var()) {
			continue
		}
		an := a.Neg()
		if len(occs[a])+len(s.Bins[a]) > 10 && len(occs[an])+len(s.Bins[an]) > 10 {
			continue
		}

	clauses:
		for _, ci := range occs[a] {
			cl := s.Clauses.Clause(ci)
			if cl.Color() == ColorBlack {
				continue
			}
			// every clause with a.Neg() must resolve tautologically on a
			for _, x := range s.Bins[an] {
				if !cl.Contains(x.Neg()) {
					continue clauses
				}
			}
			for _, cj := range occs[an] {
				cl2 := s.Clauses.Clause(cj)
				if cl2.Color() == ColorBlack {
					continue // blocked on another variable already
				}
				if !isResolventTautological(cl.Lits(), cl2.Lits()) {
					continue clauses
				}
			}

			nFound++
			lits := append([]Lit(nil), cl.Lits()...)
			cl.SetColor(ColorBlack)
			s.AddRulePivot(lits, a)
		}
	}
	s.Clauses.PruneBlack()
	return nFound
}

// RunPureLiteralElimination assigns pure and unused literals via unit
// clauses. The units can contradict clauses removed earlier by other passes;
// the reconstruction stack sorts that out if a solution is found. Returns the
// number of affected variables.
func RunPureLiteralElimination(s *Sat) int {
	if s.Contradiction {
		return 0
	}
	log := NewLogger("pure")
	occs := make([]int, 2*s.VarCount())
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}
		for _, a := range cl.Lits() {
			occs[a]++
		}
	}

	nFound := 0
	for v := 0; v < s.VarCount(); v++ {
		pos, neg := NewLit(v, false), NewLit(v, true)
		if occs[pos] == 0 && len(s.Bins[pos]) == 0 {
			nFound++
			s.AddUnary(neg)
		} else if occs[neg] == 0 && len(s.Bins[neg]) == 0 {
			nFound++
			s.AddUnary(pos)
		}
	}
	if nFound > 0 {
		log.Infof("removed %d pure or unused variables", nFound)
	}
	return nFound
}
