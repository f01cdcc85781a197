package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// satisfies reports whether a full assignment satisfies every clause of the
// CNF, units and binaries included.
func satisfies(a *Assignment, c *CNF) bool {
	if c.Contradiction {
		return false
	}
	for _, u := range c.Units {
		if !a.IsTrue(u) {
			return false
		}
	}
	for i := 0; i < 2*c.VarCount(); i++ {
		l := Lit(i)
		for _, b := range c.Bins[l] {
			if l <= b && !a.IsTrue(l) && !a.IsTrue(b) {
				return false
			}
		}
	}
	for _, ci := range c.Clauses.Crefs() {
		cl := c.Clauses.Clause(ci)
		if cl.Color() != ColorBlack && !a.Satisfied(cl.Lits()) {
			return false
		}
	}
	return true
}

// assignmentOf builds the assignment where variable v is true iff bit v of
// model is set.
func assignmentOf(n int, model uint) Assignment {
	a := NewAssignment(n)
	for v := 0; v < n; v++ {
		a.Set(NewLit(v, model>>v&1 == 0))
	}
	return a
}

func TestAddClauseSafeNormalization(t *testing.T) {
	t.Run("tautology dropped", func(t *testing.T) {
		c := NewCNF(3)
		c.AddClauseSafe(lits(1, -1, 2))
		assert.Equal(t, 0, c.ClauseCount())
	})
	t.Run("duplicates collapse to binary", func(t *testing.T) {
		c := NewCNF(3)
		c.AddClauseSafe(lits(1, 1, 2))
		assert.Equal(t, 1, c.BinaryCount())
		assert.Equal(t, 0, c.LongCount())
	})
	t.Run("singleton becomes unit", func(t *testing.T) {
		c := NewCNF(3)
		c.AddClauseSafe(lits(2, 2, 2))
		assert.Equal(t, []Lit{LitFromDimacs(2)}, c.Units)
	})
	t.Run("empty raises contradiction", func(t *testing.T) {
		c := NewCNF(3)
		c.AddClauseSafe(nil)
		assert.True(t, c.Contradiction)
	})
	t.Run("binaries stored symmetrically", func(t *testing.T) {
		c := NewCNF(3)
		c.AddClauseSafe(lits(1, -2))
		a, b := LitFromDimacs(1), LitFromDimacs(-2)
		assert.Contains(t, c.Bins[a], b)
		assert.Contains(t, c.Bins[b], a)
	})
}

func TestCNFCounts(t *testing.T) {
	c := NewCNF(5)
	c.AddUnary(LitFromDimacs(1))
	c.AddBinary(LitFromDimacs(2), LitFromDimacs(3))
	c.AddLong(lits(1, 2, 3), ColorBlue)
	c.AddLong(lits(3, 4, 5), ColorGreen)

	assert.Equal(t, 1, c.UnaryCount())
	assert.Equal(t, 1, c.BinaryCount())
	assert.Equal(t, 2, c.LongCount())
	assert.Equal(t, 1, c.LongCountIrred())
	assert.Equal(t, 1, c.LongCountRed())
	assert.Equal(t, 4, c.ClauseCount())

	blue, green := c.Histogram()
	assert.Equal(t, 1, blue[1])
	assert.Equal(t, 1, blue[2])
	assert.Equal(t, 1, blue[3])
	assert.Equal(t, 1, green[3])
}

func TestRenumberFixedAndEquivalent(t *testing.T) {
	t.Run("fixed true satisfies clauses", func(t *testing.T) {
		c := NewCNF(3)
		c.AddLong(lits(1, 2, 3), ColorBlue)
		c.AddBinary(LitFromDimacs(1), LitFromDimacs(2))
		// var 0 fixed true, 1 and 2 renumbered
		c.Renumber([]Lit{LitOne, NewLit(0, false), NewLit(1, false)}, 2)
		assert.Equal(t, 0, c.LongCount())
		assert.Equal(t, 0, c.BinaryCount())
		assert.Equal(t, 2, c.VarCount())
	})
	t.Run("fixed false shortens clauses", func(t *testing.T) {
		c := NewCNF(3)
		c.AddLong(lits(1, 2, 3), ColorBlue)
		c.Renumber([]Lit{LitZero, NewLit(0, false), NewLit(1, false)}, 2)
		assert.Equal(t, 0, c.LongCount())
		assert.Equal(t, 1, c.BinaryCount())
	})
	t.Run("fixed false unit raises contradiction", func(t *testing.T) {
		c := NewCNF(1)
		c.AddUnary(LitFromDimacs(1))
		c.Renumber([]Lit{LitZero}, 0)
		assert.True(t, c.Contradiction)
	})
	t.Run("merged variables collapse clause", func(t *testing.T) {
		c := NewCNF(3)
		c.AddLong(lits(1, 2, 3), ColorBlue)
		// vars 0 and 1 merge, var 2 survives separately
		c.Renumber([]Lit{NewLit(0, false), NewLit(0, false), NewLit(1, false)}, 2)
		assert.Equal(t, 0, c.LongCount())
		assert.Equal(t, 1, c.BinaryCount())
	})
	t.Run("opposite merge makes tautology", func(t *testing.T) {
		c := NewCNF(3)
		c.AddLong(lits(1, 2, 3), ColorBlue)
		c.Renumber([]Lit{NewLit(0, false), NewLit(0, true), NewLit(1, false)}, 2)
		assert.Equal(t, 0, c.LongCount())
		assert.Equal(t, 0, c.BinaryCount())
	})
}

func TestGateEncodings(t *testing.T) {
	type gateCase struct {
		name string
		n    int
		add  func(c *CNF)
		fn   func(bits []bool) bool // expected value of variable 0
	}
	cases := []gateCase{
		{"and", 3, func(c *CNF) { c.AddAndGate(Lit(0), Lit(2), Lit(4)) },
			func(b []bool) bool { return b[1] && b[2] }},
		{"or", 3, func(c *CNF) { c.AddOrGate(Lit(0), Lit(2), Lit(4)) },
			func(b []bool) bool { return b[1] || b[2] }},
		{"xor", 3, func(c *CNF) { c.AddXorGate(Lit(0), Lit(2), Lit(4)) },
			func(b []bool) bool { return b[1] != b[2] }},
		{"xor3", 4, func(c *CNF) { c.AddXor3Gate(Lit(0), Lit(2), Lit(4), Lit(6)) },
			func(b []bool) bool { return (b[1] != b[2]) != b[3] }},
		{"maj", 4, func(c *CNF) { c.AddMajGate(Lit(0), Lit(2), Lit(4), Lit(6)) },
			func(b []bool) bool {
				n := 0
				for _, x := range b[1:4] {
					if x {
						n++
					}
				}
				return n >= 2
			}},
		{"choose", 4, func(c *CNF) { c.AddChooseGate(Lit(0), Lit(2), Lit(4), Lit(6)) },
			func(b []bool) bool {
				if b[1] {
					return b[2]
				}
				return b[3]
			}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCNF(tc.n)
			tc.add(c)
			for m := uint(0); m < 1<<tc.n; m++ {
				a := assignmentOf(tc.n, m)
				bits := make([]bool, tc.n)
				for v := 0; v < tc.n; v++ {
					bits[v] = m>>v&1 == 1
				}
				want := bits[0] == tc.fn(bits)
				require.Equal(t, want, satisfies(&a, c),
					"model %b: gate encoding disagrees with truth table", m)
			}
		})
	}
}
