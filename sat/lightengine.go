package sat

// LightEngine is unit propagation without conflict analysis: inprocessing
// passes use it to probe, to check implications, and to detect conflicts that
// can simply be backtracked. It keeps no reasons, no trail positions and no
// statistics beyond the hyper-binary counter.
type LightEngine struct {
	cnf *CNF

	Watches [][]CRef
	Assign  Assignment

	Conflict bool

	trail []Lit
	mark  []int

	// NHbr counts binaries added by lazy hyper-binary resolution.
	NHbr int64
}

// NewLightEngine builds a light engine and propagates the unit clauses at
// level 0. With attachClauses false the long clauses are ignored until
// attached one by one, which subsumption-style passes use to exclude the
// clause under inspection.
func NewLightEngine(c *CNF, attachClauses bool) *LightEngine {
	p := &LightEngine{
		cnf:     c,
		Watches: make([][]CRef, 2*c.VarCount()),
		Assign:  NewAssignment(c.VarCount()),
	}
	if c.Contradiction {
		p.Conflict = true
		return p
	}
	if attachClauses {
		for _, ci := range c.Clauses.Crefs() {
			cl := c.Clauses.Clause(ci)
			if cl.Color() != ColorBlack {
				p.AttachClause(ci)
			}
		}
	}
	for _, u := range c.Units {
		if p.Propagate(u) == -1 {
			return p
		}
	}
	return p
}

// AttachClause adds a long clause to the watch lists. Only clauses whose
// first two literals are unassigned may be attached.
func (p *LightEngine) AttachClause(ci CRef) {
	cl := p.cnf.Clauses.Clause(ci)
	p.Watches[cl.Get(0)] = append(p.Watches[cl.Get(0)], ci)
	p.Watches[cl.Get(1)] = append(p.Watches[cl.Get(1)], ci)
}

// DetachClause removes a long clause from the watch lists.
func (p *LightEngine) DetachClause(ci CRef) {
	cl := p.cnf.Clauses.Clause(ci)
	for _, w := range []Lit{cl.Get(0), cl.Get(1)} {
		ws := p.Watches[w]
		for i, c := range ws {
			if c == ci {
				ws[i] = ws[len(ws)-1]
				p.Watches[w] = ws[:len(ws)-1]
				break
			}
		}
	}
}

// Level returns the current mark level; level 0 holds the units.
func (p *LightEngine) Level() int { return len(p.mark) }

// Trail returns all currently assigned literals.
func (p *LightEngine) Trail() []Lit { return p.trail }

// TrailLevel returns the literals assigned at level l.
func (p *LightEngine) TrailLevel(l int) []Lit {
	lo := 0
	if l > 0 {
		lo = p.mark[l-1]
	}
	hi := len(p.trail)
	if l < len(p.mark) {
		hi = p.mark[l]
	}
	return p.trail[lo:hi]
}

// Mark opens a new level.
func (p *LightEngine) Mark() { p.mark = append(p.mark, len(p.trail)) }

// Unroll pops one level, clearing any conflict.
func (p *LightEngine) Unroll() {
	l := len(p.mark) - 1
	p.Conflict = false
	for len(p.trail) > p.mark[l] {
		x := p.trail[len(p.trail)-1]
		p.trail = p.trail[:len(p.trail)-1]
		p.Assign.Unset(x)
	}
	p.mark = p.mark[:l]
}

func (p *LightEngine) set(x Lit) {
	p.Assign.Set(x)
	p.trail = append(p.trail, x)
}

// Propagate assigns x and propagates to fixpoint. Returns the number of newly
// assigned literals including x, 0 if x was already set, or -1 on conflict
// (leaving Conflict set for the caller to unroll).
func (p *LightEngine) Propagate(x Lit) int { return p.propagateImpl(x, false) }

// PropagateWithHBR is Propagate plus lazy hyper-binary resolution: every
// propagation through a long clause additionally records the binary
// x -> propagated literal. This is only sound when everything currently
// assigned follows from x alone.
func (p *LightEngine) PropagateWithHBR(x Lit) int { return p.propagateImpl(x, true) }

func (p *LightEngine) propagateImpl(x Lit, hbr bool) int {
	if p.Conflict {
		return -1
	}
	if p.Assign.IsTrue(x) {
		return 0
	}
	if p.Assign.IsFalse(x) {
		p.Conflict = true
		return -1
	}

	start := len(p.trail)
	pos := start
	p.set(x)
	for pos != len(p.trail) {
		y := p.trail[pos]
		pos++

		// binary fast path; appending during iteration (from HBR) is fine,
		// appended successors are already assigned
		yn := y.Neg()
		for j := 0; j < len(p.cnf.Bins[yn]); j++ {
			z := p.cnf.Bins[yn][j]
			if p.Assign.IsTrue(z) {
				continue
			}
			if p.Assign.IsFalse(z) {
				p.Conflict = true
				return -1
			}
			p.set(z)
		}

		ws := p.Watches[yn]
		for wi := 0; wi < len(ws); wi++ {
			ci := ws[wi]
			cl := p.cnf.Clauses.Clause(ci)
			if cl.Get(0) == yn {
				cl.Set(0, cl.Get(1))
				cl.Set(1, yn)
			}
			if p.Assign.IsTrue(cl.Get(0)) {
				continue
			}
			moved := false
			lits := cl.Lits()
			for i := 2; i < len(lits); i++ {
				if !p.Assign.IsFalse(lits[i]) {
					lits[1], lits[i] = lits[i], lits[1]
					p.Watches[lits[1]] = append(p.Watches[lits[1]], ci)
					ws[wi] = ws[len(ws)-1]
					ws = ws[:len(ws)-1]
					wi--
					moved = true
					break
				}
			}
			if moved {
				continue
			}
			if p.Assign.IsFalse(cl.Get(0)) {
				p.Conflict = true
				p.Watches[yn] = ws
				return -1
			}
			if hbr {
				p.cnf.AddBinary(x.Neg(), cl.Get(0))
				p.NHbr++
			}
			p.set(cl.Get(0))
		}
		p.Watches[yn] = ws
	}
	return len(p.trail) - start
}

// PropagateNeg propagates the negation of every literal in xs. Returns the
// total number of assignments or -1 on conflict.
func (p *LightEngine) PropagateNeg(xs []Lit) int {
	total := 0
	for _, x := range xs {
		r := p.Propagate(x.Neg())
		if r == -1 {
			return -1
		}
		total += r
	}
	return total
}

// PropagateNegPivot propagates the negation of every literal in xs except the
// pivot, which is propagated positively.
func (p *LightEngine) PropagateNegPivot(xs []Lit, pivot Lit) int {
	total := 0
	for _, x := range xs {
		l := x.Neg()
		if x == pivot {
			l = x
		}
		r := p.Propagate(l)
		if r == -1 {
			return -1
		}
		total += r
	}
	return total
}

// Probe propagates x on a fresh level and immediately unrolls. Same return
// convention as Propagate.
func (p *LightEngine) Probe(x Lit) int {
	p.Mark()
	r := p.Propagate(x)
	p.Unroll()
	return r
}

// ProbeNeg propagates the negated clause on a fresh level and unrolls.
func (p *LightEngine) ProbeNeg(xs []Lit) int {
	p.Mark()
	r := p.PropagateNeg(xs)
	p.Unroll()
	return r
}

// ProbeNegPivot is ProbeNeg with a positively propagated pivot.
func (p *LightEngine) ProbeNegPivot(xs []Lit, pivot Lit) int {
	p.Mark()
	r := p.PropagateNegPivot(xs, pivot)
	p.Unroll()
	return r
}
