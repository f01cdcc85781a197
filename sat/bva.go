package sat

// Bounded variable addition: pairs of literals occurring together in many
// clauses are factored out into a fresh variable defined as their
// disjunction, shrinking the formula. The reverse of variable elimination.

type litPair struct{ a, b Lit }

func makeLitPair(x, y Lit) litPair {
	if x > y {
		x, y = y, x
	}
	return litPair{x, y}
}

// pairHeap is a max-heap of (occurrence count, literal pair).
type pairHeap struct {
	count []int
	pairs []litPair
}

func (h *pairHeap) len() int { return len(h.count) }

func (h *pairHeap) push(count int, p litPair) {
	h.count = append(h.count, count)
	h.pairs = append(h.pairs, p)
	i := len(h.count) - 1
	for i > 0 {
		pa := (i - 1) / 2
		if h.count[pa] >= h.count[i] {
			break
		}
		h.count[pa], h.count[i] = h.count[i], h.count[pa]
		h.pairs[pa], h.pairs[i] = h.pairs[i], h.pairs[pa]
		i = pa
	}
}

func (h *pairHeap) pop() (int, litPair) {
	c, p := h.count[0], h.pairs[0]
	n := len(h.count) - 1
	h.count[0], h.pairs[0] = h.count[n], h.pairs[n]
	h.count, h.pairs = h.count[:n], h.pairs[:n]
	i := 0
	for {
		l := 2*i + 1
		if l >= n {
			break
		}
		if l+1 < n && h.count[l+1] > h.count[l] {
			l++
		}
		if h.count[i] >= h.count[l] {
			break
		}
		h.count[i], h.count[l] = h.count[l], h.count[i]
		h.pairs[i], h.pairs[l] = h.pairs[l], h.pairs[i]
		i = l
	}
	return c, p
}

// replacePair removes x and y from the clause and appends a in their place.
// Reports false if the clause no longer contains both.
func replacePair(cl Clause, x, y, a Lit) bool {
	if !cl.Contains(x) || !cl.Contains(y) {
		return false
	}
	lits := cl.Lits()
	n := 0
	for _, l := range lits {
		if l != x && l != y {
			lits[n] = l
			n++
		}
	}
	lits[n] = a
	cl.setSize(n + 1)
	return true
}

// RunBVA greedily factors out literal pairs occurring in at least minOccs
// clauses, adding one defining variable per pair. Returns the number of
// variables added.
func RunBVA(s *Sat, minOccs int) int {
	if s.Contradiction || minOccs <= 0 {
		return 0
	}
	log := NewLogger("bva")

	// occurrence lists per literal pair
	pairOccs := map[litPair][]CRef{}
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}
		if cl.Color() != ColorBlue && cl.Size() > 8 {
			continue
		}
		lits := cl.Lits()
		for i := range lits {
			for j := i + 1; j < len(lits); j++ {
				p := makeLitPair(lits[i], lits[j])
				pairOccs[p] = append(pairOccs[p], ci)
			}
		}
	}

	pairCount := map[litPair]int{}
	var queue pairHeap
	for p, occs := range pairOccs {
		if len(occs) >= minOccs {
			pairCount[p] = len(occs)
			queue.push(len(occs), p)
		}
	}

	// replacing one pair only ever decreases the counts of other existing
	// pairs, so stale queue entries are re-pushed with their current count
	nFound := 0
	for queue.len() > 0 {
		count, pr := queue.pop()
		if cur := pairCount[pr]; cur != count {
			if cur >= minOccs {
				queue.push(cur, pr)
			}
			continue
		}
		nFound++

		// fresh variable defined as pr.a or pr.b
		a := NewLit(s.AddVar(), false)
		s.AddBinary(a, pr.a.Neg())
		s.AddBinary(a, pr.b.Neg())
		s.AddLong([]Lit{a.Neg(), pr.a, pr.b}, ColorBlue)

		for _, ci := range pairOccs[pr] {
			cl := s.Clauses.Clause(ci)
			if cl.Color() == ColorBlack {
				continue
			}
			if !replacePair(cl, pr.a, pr.b, a) {
				continue
			}
			for _, l := range cl.Lits() {
				if l == a {
					continue
				}
				pairCount[makeLitPair(l, pr.a)]--
				pairCount[makeLitPair(l, pr.b)]--
				pairCount[makeLitPair(l, a)]++
				pairOccs[makeLitPair(l, a)] = append(pairOccs[makeLitPair(l, a)], ci)
			}
		}
		pairCount[pr] = 0
	}

	// clauses that shrank below three literals move out of the storage
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		if cl.Color() == ColorBlack || cl.Size() >= 3 {
			continue
		}
		switch cl.Size() {
		case 2:
			s.AddBinary(cl.Get(0), cl.Get(1))
		case 1:
			s.AddUnary(cl.Get(0))
		}
		cl.SetColor(ColorBlack)
	}
	s.Clauses.PruneBlack()

	if nFound > 0 {
		log.Infof("added %d vars", nFound)
	}
	return nFound
}
