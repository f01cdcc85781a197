package sat

import (
	"fmt"
	"strings"
)

// Color classifies a stored clause.
//
// A blue clause is logically entailed by the original problem. A green clause
// is entailed up to satisfiability: removing it preserves satisfiability, so
// learnt clauses and discardable resolvents are green. Black marks a
// tombstoned clause awaiting physical removal.
type Color uint8

const (
	ColorBlue Color = iota
	ColorGreen
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorBlack:
		return "black"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// maxClauseSize is the largest clause the storage header can describe.
const maxClauseSize = 0xFFFF

// Clause is a view into a clause inside a ClauseStorage: one header word
// (size, color, glue) followed by the literals. The view stays valid until the
// storage is compactified.
type Clause struct {
	arena []Lit // arena[0] is the header, arena[1:] the literals
}

func makeHeader(size int, color Color) Lit {
	return Lit(uint32(size) | uint32(color)<<16)
}

// Size returns the number of literals.
func (c Clause) Size() int { return int(uint32(c.arena[0]) & 0xFFFF) }

func (c Clause) setSize(n int) {
	c.arena[0] = Lit(uint32(c.arena[0])&^0xFFFF | uint32(n))
}

// Color returns the clause color.
func (c Clause) Color() Color { return Color(uint32(c.arena[0]) >> 16 & 0xFF) }

// SetColor recolors the clause. Coloring black tombstones it.
func (c Clause) SetColor(col Color) {
	c.arena[0] = Lit(uint32(c.arena[0])&^(0xFF<<16) | uint32(col)<<16)
}

// Glue returns the stored glue value (number of distinct decision levels at
// learn time, capped at 255). Only meaningful for green clauses.
func (c Clause) Glue() int { return int(uint32(c.arena[0]) >> 24) }

// SetGlue stores the glue value, capping at 255.
func (c Clause) SetGlue(g int) {
	if g > 255 {
		g = 255
	}
	c.arena[0] = Lit(uint32(c.arena[0])&0x00FFFFFF | uint32(g)<<24)
}

// Lits returns the literal slice of the clause. The slice is mutable and
// aliases the storage.
func (c Clause) Lits() []Lit { return c.arena[1 : 1+c.Size()] }

// Get returns the i-th literal.
func (c Clause) Get(i int) Lit { return c.arena[1+i] }

// Set overwrites the i-th literal.
func (c Clause) Set(i int, a Lit) { c.arena[1+i] = a }

// Contains reports whether the clause contains the given literal.
func (c Clause) Contains(a Lit) bool {
	for _, l := range c.Lits() {
		if l == a {
			return true
		}
	}
	return false
}

// Normalize removes duplicate and constant-false literals in place and
// tombstones the clause if it is tautological or contains a constant-true
// literal. Shrinking leaves dead words in the arena until compaction.
func (c Clause) Normalize() {
	lits := c.Lits()
	n := normalizeLits(lits)
	if n < 0 {
		c.SetColor(ColorBlack)
		return
	}
	c.setSize(n)
}

// String renders the clause literals in DIMACS convention.
func (c Clause) String() string {
	parts := make([]string, c.Size())
	for i, l := range c.Lits() {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}

// normalizeLits normalizes a list of literals in place: constant-false
// literals and duplicates are dropped, and -1 is returned if the clause is
// trivially satisfied (tautological or containing a constant-true literal).
// Otherwise the new length is returned.
func normalizeLits(lits []Lit) int {
	n := 0
	for _, a := range lits {
		if a == LitOne {
			return -1
		}
		if a == LitZero {
			continue
		}
		dup := false
		for _, b := range lits[:n] {
			if a == b {
				dup = true
				break
			}
			if a == b.Neg() {
				return -1
			}
		}
		if !dup {
			lits[n] = a
			n++
		}
	}
	return n
}

// ClauseStorage is a flat append-only arena of variable-length clauses
// addressed by 32-bit references. Each clause occupies a header word followed
// by its literals; a parallel index lists every clause's starting word.
type ClauseStorage struct {
	store []Lit
	crefs []CRef
}

// AddClause appends a clause with the given color and returns its reference.
// It panics if the clause is longer than the header can describe or the arena
// is full; both limits are far beyond any practical instance.
func (s *ClauseStorage) AddClause(lits []Lit, color Color) CRef {
	if len(lits) > maxClauseSize {
		panic(fmt.Sprintf("clause of size %d too long for storage", len(lits)))
	}
	if len(s.store) > int(CRefMax) {
		panic("clause storage full")
	}
	ref := CRef(len(s.store))
	s.store = append(s.store, makeHeader(len(lits), color))
	s.store = append(s.store, lits...)
	s.crefs = append(s.crefs, ref)
	return ref
}

// Clause returns a view of the referenced clause.
func (s *ClauseStorage) Clause(c CRef) Clause {
	size := int(uint32(s.store[c]) & 0xFFFF)
	return Clause{arena: s.store[c : int(c)+1+size]}
}

// Crefs returns the index of all clauses, including tombstoned ones. Callers
// iterating for live clauses skip ColorBlack.
func (s *ClauseStorage) Crefs() []CRef { return s.crefs }

// Count returns the number of live (non-black) clauses.
func (s *ClauseStorage) Count() int {
	n := 0
	for _, ci := range s.crefs {
		if s.Clause(ci).Color() != ColorBlack {
			n++
		}
	}
	return n
}

// Clear drops all clauses.
func (s *ClauseStorage) Clear() {
	s.store = s.store[:0]
	s.crefs = s.crefs[:0]
}

// PruneBlack rebuilds the index, dropping tombstoned clauses. References to
// surviving clauses stay valid; the arena itself is not rewritten.
func (s *ClauseStorage) PruneBlack() {
	live := s.crefs[:0]
	for _, ci := range s.crefs {
		if s.Clause(ci).Color() != ColorBlack {
			live = append(live, ci)
		}
	}
	s.crefs = live
}

// Compactify rewrites the arena without tombstones and dead words and returns
// the mapping from old to new references. All previously held CRefs are
// invalidated; any CRef-carrying container must be rewritten using the
// returned map.
func (s *ClauseStorage) Compactify() map[CRef]CRef {
	remap := make(map[CRef]CRef, len(s.crefs))
	store := make([]Lit, 0, len(s.store))
	crefs := s.crefs[:0]
	for _, ci := range s.crefs {
		cl := s.Clause(ci)
		if cl.Color() == ColorBlack {
			continue
		}
		ref := CRef(len(store))
		store = append(store, makeHeader(cl.Size(), cl.Color()))
		store = append(store, cl.Lits()...)
		Clause{arena: store[ref : int(ref)+1+cl.Size()]}.SetGlue(cl.Glue())
		remap[ci] = ref
		crefs = append(crefs, ref)
	}
	s.store = store
	s.crefs = crefs
	return remap
}

// MemoryUsage returns the number of bytes held by the arena and index.
func (s *ClauseStorage) MemoryUsage() int {
	return 4*cap(s.store) + 4*cap(s.crefs)
}
