package sat

import "fmt"

// Reason records why a literal was assigned: the other literal of a binary
// clause, a reference to a long clause, or nothing for decisions and level-0
// units. Packed into 32 bits with the MSB distinguishing binary from long.
type Reason uint32

// ReasonUndef marks a decision or a level-0 unit.
const ReasonUndef Reason = 0xFFFFFFFF

// ReasonBinary builds a reason from the other literal of a binary clause.
func ReasonBinary(a Lit) Reason {
	if !a.Proper() {
		panic(fmt.Sprintf("sat: binary reason from improper literal %v", a))
	}
	return Reason(a)
}

// ReasonLong builds a reason from a long clause reference.
func ReasonLong(c CRef) Reason {
	if !c.Proper() {
		panic("sat: long reason from improper clause reference")
	}
	return Reason(uint32(c) | 1<<31)
}

// IsUndef reports whether the reason marks a decision or level-0 unit.
func (r Reason) IsUndef() bool { return r == ReasonUndef }

// IsBinary reports whether the reason is a binary clause.
func (r Reason) IsBinary() bool { return r != ReasonUndef && r>>31 == 0 }

// IsLong reports whether the reason is a long clause.
func (r Reason) IsLong() bool { return r != ReasonUndef && r>>31 != 0 }

// Lit returns the other literal of a binary reason.
func (r Reason) Lit() Lit { return Lit(r & 0x7FFFFFFF) }

// CRef returns the clause reference of a long reason.
func (r Reason) CRef() CRef { return CRef(uint32(r) &^ (1 << 31)) }

// PropEngine implements two-watched-literal unit propagation with a separate
// fast path for binary clauses, plus the trail bookkeeping conflict analysis
// needs. It provides the algorithmic building blocks; the CDCL loop with its
// heuristics lives in Searcher.
//
// Invariants between propagations: every live long clause watches exactly its
// first two literals, and for every assigned literal the recorded reason is
// undef iff it is a decision or a level-0 unit.
type PropEngine struct {
	sat *Sat

	// Watches lists, per literal, the long clauses watching it in one of
	// their first two positions.
	Watches [][]CRef

	Reasons  []Reason // per variable, valid while assigned
	TrailPos []int    // per variable, valid while assigned

	Assign Assignment

	// Conflict is set when propagation ran into a falsified clause;
	// ConflictClause then holds its literals.
	Conflict       bool
	ConflictClause []Lit

	trail []Lit
	mark  []int // trail indices where each decision level begins

	seen bitVec // scratch, conflict analysis and minimization

	stats *Stats
}

// NewPropEngine builds an engine over the problem: attaches watches for all
// live long clauses and propagates the unit clauses at level 0. A conflict
// among the units leaves the engine with Conflict set.
func NewPropEngine(s *Sat, stats *Stats) *PropEngine {
	n := s.VarCount()
	p := &PropEngine{
		sat:      s,
		Watches:  make([][]CRef, 2*n),
		Reasons:  make([]Reason, n),
		TrailPos: make([]int, n),
		Assign:   NewAssignment(n),
		seen:     newBitVec(2 * n),
		stats:    stats,
	}
	if p.stats == nil {
		p.stats = &Stats{}
	}
	if s.Contradiction {
		p.Conflict = true
		return p
	}
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}
		p.Watches[cl.Get(0)] = append(p.Watches[cl.Get(0)], ci)
		p.Watches[cl.Get(1)] = append(p.Watches[cl.Get(1)], ci)
	}
	for _, u := range s.Units {
		if p.Assign.IsTrue(u) {
			continue
		}
		if p.Assign.IsFalse(u) {
			p.Conflict = true
			p.ConflictClause = append(p.ConflictClause[:0], u)
			return p
		}
		p.PropagateFull(u, ReasonUndef)
		if p.Conflict {
			return p
		}
	}
	return p
}

// Level returns the current decision level.
func (p *PropEngine) Level() int { return len(p.mark) }

// Trail returns a read-only view of all assigned literals.
func (p *PropEngine) Trail() []Lit { return p.trail }

// TrailLevel returns the literals assigned at decision level l.
func (p *PropEngine) TrailLevel(l int) []Lit {
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

// levelOf returns the decision level of a trail position.
func (p *PropEngine) levelOf(pos int) int {
	lvl := 0
	for lvl < len(p.mark) && p.mark[lvl] <= pos {
		lvl++
	}
	return lvl
}

// set marks x true without propagating. Neither x nor its negation may be
// assigned.
func (p *PropEngine) set(x Lit, r Reason) {
	if p.Conflict {
		panic("sat: assignment while conflict pending")
	}
	p.Assign.Set(x)
	p.Reasons[x.Var()] = r
	p.TrailPos[x.Var()] = len(p.trail)
	p.trail = append(p.trail, x)
}

// propagateBinary assigns x and exhausts the binary implication closure.
func (p *PropEngine) propagateBinary(x Lit, r Reason) {
	pos := len(p.trail)
	p.set(x, r)
	for pos != len(p.trail) {
		y := p.trail[pos]
		pos++
		for _, z := range p.sat.Bins[y.Neg()] {
			if p.Assign.IsTrue(z) {
				continue
			}
			if p.Assign.IsFalse(z) {
				p.Conflict = true
				p.ConflictClause = append(p.ConflictClause[:0], y.Neg(), z)
				return
			}
			p.set(z, ReasonBinary(y.Neg()))
			p.stats.BinProps++
		}
	}
}

// PropagateFull assigns x with reason r and propagates to fixpoint over both
// binary and long clauses, interleaving the binary fast path. On conflict the
// engine stops with Conflict set and ConflictClause filled.
func (p *PropEngine) PropagateFull(x Lit, r Reason) {
	pos := len(p.trail)
	p.propagateBinary(x, r)
	if p.Conflict {
		return
	}

	for pos != len(p.trail) {
		y := p.trail[pos]
		pos++
		ws := p.Watches[y.Neg()]
		for wi := 0; wi < len(ws); wi++ {
			ci := ws[wi]
			cl := p.sat.Clauses.Clause(ci)

			// move y.Neg() to position 1 so position 0 holds the literal
			// that might propagate
			if cl.Get(0) == y.Neg() {
				cl.Set(0, cl.Get(1))
				cl.Set(1, y.Neg())
			}

			// other watched literal satisfied: nothing to do
			if p.Assign.IsTrue(cl.Get(0)) {
				continue
			}

			// look for a non-false literal in the tail to move the watch to
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

			// the whole tail is false: conflict or propagation
			if p.Assign.IsFalse(cl.Get(0)) {
				p.Conflict = true
				p.ConflictClause = append(p.ConflictClause[:0], lits...)
				p.Watches[y.Neg()] = ws
				return
			}
			p.stats.LongProps++
			p.propagateBinary(cl.Get(0), ReasonLong(ci))
			if p.Conflict {
				p.Watches[y.Neg()] = ws
				return
			}
		}
		p.Watches[y.Neg()] = ws
	}
}

// Branch opens a new decision level and propagates the decision literal.
func (p *PropEngine) Branch(x Lit) {
	if p.Conflict || p.Assign.Assigned(x) {
		panic("sat: invalid branch")
	}
	p.mark = append(p.mark, len(p.trail))
	p.PropagateFull(x, ReasonUndef)
}

// Probe branches on x and immediately unrolls. Returns the number of
// literals the branch assigned, or -1 if it conflicted.
func (p *PropEngine) Probe(x Lit) int {
	pos := len(p.trail)
	p.Branch(x)
	r := len(p.trail) - pos
	if p.Conflict {
		r = -1
	}
	p.Unroll(p.Level()-1, nil)
	return r
}

// Unroll pops the trail back to level l, clearing assignments and any pending
// conflict. Freed variables are re-pushed onto the activity heap if one is
// supplied.
func (p *PropEngine) Unroll(l int, heap *ActivityHeap) {
	if l >= p.Level() {
		panic("sat: unroll to a level not below the current one")
	}
	p.Conflict = false
	p.ConflictClause = p.ConflictClause[:0]
	for len(p.trail) > p.mark[l] {
		x := p.trail[len(p.trail)-1]
		p.trail = p.trail[:len(p.trail)-1]
		p.Assign.Unset(x)
		if heap != nil {
			heap.Push(x.Var())
		}
	}
	p.mark = p.mark[:l]
}

// AddClause inserts a clause into the problem and attaches watches if it is
// long. Returns the reason with which cl[0] may be propagated.
func (p *PropEngine) AddClause(cl []Lit, color Color) Reason {
	switch len(cl) {
	case 0:
		p.sat.AddEmpty()
		p.Conflict = true
		return ReasonUndef
	case 1:
		p.sat.AddUnary(cl[0])
		return ReasonUndef
	case 2:
		p.sat.AddBinary(cl[0], cl[1])
		return ReasonBinary(cl[1])
	default:
		ci := p.sat.AddLong(cl, color)
		p.Watches[cl[0]] = append(p.Watches[cl[0]], ci)
		p.Watches[cl[1]] = append(p.Watches[cl[1]], ci)
		return ReasonLong(ci)
	}
}

// AddLearntClause inserts a learnt clause with its glue value.
func (p *PropEngine) AddLearntClause(cl []Lit, glue int) Reason {
	r := p.AddClause(cl, ColorGreen)
	if r.IsLong() {
		p.sat.Clauses.Clause(r.CRef()).SetGlue(glue)
	}
	return r
}

// UnassignedVariable returns some unassigned variable, or -1 if the
// assignment is complete.
func (p *PropEngine) UnassignedVariable() int {
	for v := 0; v < p.sat.VarCount(); v++ {
		if !p.Assign.Assigned(NewLit(v, false)) {
			return v
		}
	}
	return -1
}
