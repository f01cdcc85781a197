package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsumptionRemovesSuperset(t *testing.T) {
	s := NewSat(4)
	s.AddLong(lits(1, 2, 3), ColorBlue)
	s.AddLong(lits(1, 2, 3, 4), ColorBlue)

	n := RunSubsumption(s, 2)
	assert.Equal(t, 1, n)
	require.Equal(t, 1, s.LongCount())
	cl := s.Clauses.Clause(s.Clauses.Crefs()[0])
	assert.Equal(t, lits(1, 2, 3), cl.Lits())
}

func TestSubsumptionUpgradesColor(t *testing.T) {
	s := NewSat(4)
	s.AddLong(lits(1, 2, 3), ColorGreen)
	s.AddLong(lits(1, 2, 3, 4), ColorBlue)

	RunSubsumption(s, 2)
	require.Equal(t, 1, s.LongCount())
	cl := s.Clauses.Clause(s.Clauses.Crefs()[0])
	assert.Equal(t, ColorBlue, cl.Color(), "subsuming a blue clause makes the green subsumer blue")
}

func TestSelfSubsumingResolution(t *testing.T) {
	s := NewSat(4)
	s.AddLong(lits(1, 2, 3), ColorBlue)
	s.AddLong(lits(-1, 2, 3, 4), ColorBlue)

	n := RunSubsumption(s, 2)
	assert.Equal(t, 1, n)
	require.Equal(t, 2, s.LongCount())

	sizes := map[int]int{}
	for _, ci := range s.Clauses.Crefs() {
		cl := s.Clauses.Clause(ci)
		sizes[cl.Size()]++
		assert.False(t, cl.Contains(LitFromDimacs(-1)),
			"the strengthened clause dropped -1")
	}
	assert.Equal(t, map[int]int{3: 2}, sizes)
}

func TestVirtualBinarySubsumption(t *testing.T) {
	s := NewSat(6)
	// implication 1 -> 2
	s.AddClauseSafe(lits(-1, 2))
	// contains -1 and 2: subsumed by the binary
	s.AddLong(lits(-1, 2, 5), ColorBlue)
	// contains 1 and 2: strengthened by dropping 1
	s.AddLong(lits(1, 2, 6), ColorBlue)

	n := RunSubsumption(s, 1)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, s.LongCount())
	// the strengthened clause became the binary (2 6)
	assert.Contains(t, s.Bins[LitFromDimacs(2)], LitFromDimacs(6))
}
