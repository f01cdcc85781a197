package sat

import "fmt"

// CNF holds a problem in conjunctive normal form. Clauses of length <= 2 are
// stored separately from long clauses: units in a flat list, binaries in
// symmetric adjacency lists that double as the binary implication graph. The
// container carries no watches or occurrence lists; those belong to the
// engines built on top of it.
type CNF struct {
	// Contradiction is set once the empty clause has been derived.
	Contradiction bool

	// Units lists unit clauses. Order is irrelevant and duplicates are
	// tolerated until the next cleanup.
	Units []Lit

	// Bins is indexed by literal: b is in Bins[a] iff the binary clause
	// (a or b) is present. Every binary is stored symmetrically in both
	// lists, which makes Bins[a.Neg()] the implication successors of a.
	Bins [][]Lit

	// Clauses stores the long (>= 3 literal) clauses.
	Clauses ClauseStorage
}

// NewCNF creates an empty CNF over n variables.
func NewCNF(n int) *CNF {
	return &CNF{Bins: make([][]Lit, 2*n)}
}

// NewCNFFromStorage creates a CNF over n variables from pre-parsed clause
// storage. Every clause is normalized; clauses that come out shorter than
// three literals are moved into their dedicated representation.
func NewCNFFromStorage(n int, clauses ClauseStorage) *CNF {
	cnf := &CNF{Bins: make([][]Lit, 2*n), Clauses: clauses}
	for _, ci := range cnf.Clauses.Crefs() {
		cl := cnf.Clauses.Clause(ci)
		cl.Normalize()
		if cl.Color() == ColorBlack || cl.Size() >= 3 {
			continue
		}
		switch cl.Size() {
		case 0:
			cnf.AddEmpty()
		case 1:
			cnf.AddUnary(cl.Get(0))
		case 2:
			cnf.AddBinary(cl.Get(0), cl.Get(1))
		}
		cl.SetColor(ColorBlack)
	}
	cnf.Clauses.PruneBlack()
	return cnf
}

// VarCount returns the number of variables.
func (c *CNF) VarCount() int { return len(c.Bins) / 2 }

// AddVar adds a fresh variable and returns its index.
func (c *CNF) AddVar() int {
	v := c.VarCount()
	c.Bins = append(c.Bins, nil, nil)
	return v
}

// AddEmpty records the empty clause.
func (c *CNF) AddEmpty() { c.Contradiction = true }

// AddUnary appends a unit clause.
func (c *CNF) AddUnary(a Lit) {
	if !a.Proper() || a.Var() >= c.VarCount() {
		panic(fmt.Sprintf("sat: invalid unit literal %v", a))
	}
	c.Units = append(c.Units, a)
}

// AddBinary inserts the binary clause (a or b) symmetrically.
func (c *CNF) AddBinary(a, b Lit) {
	if !a.Proper() || !b.Proper() || a.Var() == b.Var() {
		panic(fmt.Sprintf("sat: invalid binary clause (%v %v)", a, b))
	}
	c.Bins[a] = append(c.Bins[a], b)
	c.Bins[b] = append(c.Bins[b], a)
}

// AddLong inserts a clause of at least three literals over distinct live
// variables. No normalization is performed.
func (c *CNF) AddLong(lits []Lit, color Color) CRef {
	if len(lits) < 3 {
		panic("sat: AddLong needs at least 3 literals")
	}
	for i, a := range lits {
		if !a.Proper() || a.Var() >= c.VarCount() {
			panic(fmt.Sprintf("sat: invalid literal %v in clause", a))
		}
		for _, b := range lits[:i] {
			if a.Var() == b.Var() {
				panic(fmt.Sprintf("sat: duplicate variable %d in clause", a.Var()))
			}
		}
	}
	return c.Clauses.AddClause(lits, color)
}

// AddClause dispatches a pre-normalized clause to its representation by
// length. Returns the clause reference for long clauses, CRefUndef otherwise.
func (c *CNF) AddClause(lits []Lit, color Color) CRef {
	switch len(lits) {
	case 0:
		c.AddEmpty()
	case 1:
		c.AddUnary(lits[0])
	case 2:
		c.AddBinary(lits[0], lits[1])
	default:
		return c.AddLong(lits, color)
	}
	return CRefUndef
}

// AddClauseSafe normalizes and inserts an arbitrary clause: duplicate
// literals are dropped, tautologies discarded, constant literals collapsed.
// The inserted clause is irredundant (blue).
func (c *CNF) AddClauseSafe(lits []Lit) {
	buf := make([]Lit, 0, len(lits))
	for _, a := range lits {
		if !a.Proper() && !a.Fixed() {
			panic(fmt.Sprintf("sat: invalid literal %v in clause", a))
		}
		buf = append(buf, a)
	}
	if n := normalizeLits(buf); n >= 0 {
		c.AddClause(buf[:n], ColorBlue)
	}
}

// Renumber rewrites the problem under the variable translation trans, where
// trans[v] is a proper literal in the new space, LitOne/LitZero for a fixed
// variable, or LitElim for an eliminated one. Clauses are re-normalized under
// the translation: satisfied clauses disappear, falsified literals drop out,
// and clauses that collapse below three literals move to their dedicated
// representation. A variable mapped to LitElim must not occur in any clause.
// All clause references are invalidated; callers usually follow up with
// Compactify.
func (c *CNF) Renumber(trans []Lit, newVarCount int) {
	if len(trans) != c.VarCount() {
		panic("sat: renumber translation has wrong length")
	}
	for _, l := range trans {
		if !l.Fixed() && l != LitElim && (!l.Proper() || l.Var() >= newVarCount) {
			panic(fmt.Sprintf("sat: invalid renumber target %v", l))
		}
	}

	// units
	oldUnits := c.Units
	c.Units = nil
	for _, a := range oldUnits {
		t := trans[a.Var()].XorSign(a.Sign())
		switch {
		case t == LitOne:
		case t == LitZero:
			c.AddEmpty()
		case t.Proper():
			c.AddUnary(t)
		default:
			panic(fmt.Sprintf("sat: eliminated variable %d in unit clause", a.Var()))
		}
	}

	// binaries
	oldBins := c.Bins
	c.Bins = make([][]Lit, 2*newVarCount)
	for i := range oldBins {
		a := Lit(i)
		for _, b := range oldBins[a] {
			if a.Var() < b.Var() {
				continue // each binary is stored twice
			}
			x := trans[a.Var()].XorSign(a.Sign())
			y := trans[b.Var()].XorSign(b.Sign())
			if x == LitElim || y == LitElim {
				panic("sat: eliminated variable in binary clause")
			}
			switch {
			case x == LitOne || y == LitOne || x == y.Neg():
				// satisfied or tautological
			case x == LitZero && y == LitZero:
				c.AddEmpty()
			case x == LitZero:
				c.AddUnary(y)
			case y == LitZero:
				c.AddUnary(x)
			case x == y:
				c.AddUnary(x)
			default:
				c.AddBinary(x, y)
			}
		}
	}

	// long clauses
	for _, ci := range c.Clauses.Crefs() {
		cl := c.Clauses.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}
		lits := cl.Lits()
		for j, a := range lits {
			t := trans[a.Var()].XorSign(a.Sign())
			if t == LitElim {
				panic(fmt.Sprintf("sat: eliminated variable %d in long clause", a.Var()))
			}
			lits[j] = t
		}
		cl.Normalize()
		if cl.Color() == ColorBlack {
			continue
		}
		switch cl.Size() {
		case 0:
			c.AddEmpty()
		case 1:
			c.AddUnary(cl.Get(0))
		case 2:
			c.AddBinary(cl.Get(0), cl.Get(1))
		}
		if cl.Size() <= 2 {
			cl.SetColor(ColorBlack)
		}
	}
	c.Clauses.PruneBlack()
}

// UnaryCount returns the number of unit clauses.
func (c *CNF) UnaryCount() int { return len(c.Units) }

// BinaryCount returns the number of binary clauses.
func (c *CNF) BinaryCount() int {
	n := 0
	for _, b := range c.Bins {
		n += len(b)
	}
	return n / 2
}

// LongCount returns the number of live long clauses.
func (c *CNF) LongCount() int { return c.Clauses.Count() }

// LongCountIrred returns the number of live blue long clauses.
func (c *CNF) LongCountIrred() int {
	n := 0
	for _, ci := range c.Clauses.Crefs() {
		if c.Clauses.Clause(ci).Color() == ColorBlue {
			n++
		}
	}
	return n
}

// LongCountRed returns the number of live green long clauses.
func (c *CNF) LongCountRed() int {
	n := 0
	for _, ci := range c.Clauses.Crefs() {
		if c.Clauses.Clause(ci).Color() == ColorGreen {
			n++
		}
	}
	return n
}

// ClauseCount returns the total number of clauses including the empty clause.
func (c *CNF) ClauseCount() int {
	n := c.UnaryCount() + c.BinaryCount() + c.LongCount()
	if c.Contradiction {
		n++
	}
	return n
}

// Histogram returns per-length clause counts, split into irredundant (blue)
// and redundant (green) clauses.
func (c *CNF) Histogram() (blue, green []int) {
	addTo := func(h []int, k, n int) []int {
		for len(h) <= k {
			h = append(h, 0)
		}
		h[k] += n
		return h
	}
	if c.Contradiction {
		blue = addTo(blue, 0, 1)
	}
	blue = addTo(blue, 1, c.UnaryCount())
	blue = addTo(blue, 2, c.BinaryCount())
	for _, ci := range c.Clauses.Crefs() {
		cl := c.Clauses.Clause(ci)
		switch cl.Color() {
		case ColorBlue:
			blue = addTo(blue, cl.Size(), 1)
		case ColorGreen:
			green = addTo(green, cl.Size(), 1)
		}
	}
	return blue, green
}

// MemoryUsage returns the approximate number of heap bytes held by the CNF.
func (c *CNF) MemoryUsage() int {
	r := 4 * cap(c.Units)
	for _, b := range c.Bins {
		r += 4 * cap(b)
	}
	return r + c.Clauses.MemoryUsage()
}
