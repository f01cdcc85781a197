package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lits(xs ...int) []Lit {
	out := make([]Lit, len(xs))
	for i, x := range xs {
		out[i] = LitFromDimacs(x)
	}
	return out
}

func TestClauseStorageBasics(t *testing.T) {
	var cs ClauseStorage
	c1 := cs.AddClause(lits(1, 2, 3), ColorBlue)
	c2 := cs.AddClause(lits(-1, 4, 5, 6), ColorGreen)

	require.Equal(t, 2, cs.Count())
	cl := cs.Clause(c1)
	assert.Equal(t, 3, cl.Size())
	assert.Equal(t, ColorBlue, cl.Color())
	assert.Equal(t, lits(1, 2, 3), cl.Lits())

	cl2 := cs.Clause(c2)
	assert.Equal(t, ColorGreen, cl2.Color())
	cl2.SetGlue(12)
	assert.Equal(t, 12, cl2.Glue())
	assert.Equal(t, 4, cl2.Size())

	cl2.SetGlue(1000)
	assert.Equal(t, 255, cl2.Glue())

	assert.True(t, cl.Contains(LitFromDimacs(2)))
	assert.False(t, cl.Contains(LitFromDimacs(-2)))
}

func TestClauseStoragePruneBlack(t *testing.T) {
	var cs ClauseStorage
	c1 := cs.AddClause(lits(1, 2, 3), ColorBlue)
	c2 := cs.AddClause(lits(4, 5, 6), ColorBlue)
	c3 := cs.AddClause(lits(7, 8, 9), ColorBlue)

	cs.Clause(c2).SetColor(ColorBlack)
	cs.PruneBlack()

	require.Equal(t, 2, cs.Count())
	assert.Equal(t, []CRef{c1, c3}, cs.Crefs())
	// surviving references stay valid
	assert.Equal(t, lits(7, 8, 9), cs.Clause(c3).Lits())
}

func TestClauseStorageCompactify(t *testing.T) {
	var cs ClauseStorage
	c1 := cs.AddClause(lits(1, 2, 3), ColorBlue)
	c2 := cs.AddClause(lits(4, 5, 6), ColorGreen)
	c3 := cs.AddClause(lits(7, 8, 9), ColorBlue)
	cs.Clause(c2).SetGlue(3)
	cs.Clause(c1).SetColor(ColorBlack)

	remap := cs.Compactify()
	require.Equal(t, 2, cs.Count())
	_, ok := remap[c1]
	assert.False(t, ok, "black clause must not be remapped")

	n2, ok := remap[c2]
	require.True(t, ok)
	assert.Equal(t, lits(4, 5, 6), cs.Clause(n2).Lits())
	assert.Equal(t, ColorGreen, cs.Clause(n2).Color())
	assert.Equal(t, 3, cs.Clause(n2).Glue())

	n3, ok := remap[c3]
	require.True(t, ok)
	assert.Equal(t, lits(7, 8, 9), cs.Clause(n3).Lits())
}

func TestNormalizeLits(t *testing.T) {
	testCases := []struct {
		name string
		in   []Lit
		want []Lit // nil means trivially satisfied
	}{
		{"plain", lits(1, 2, 3), lits(1, 2, 3)},
		{"duplicate", lits(1, 2, 1, 3), lits(1, 2, 3)},
		{"tautology", lits(1, 2, -1), nil},
		{"constant true", []Lit{LitFromDimacs(1), LitOne}, nil},
		{"constant false", []Lit{LitFromDimacs(1), LitZero, LitFromDimacs(2)}, lits(1, 2)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := append([]Lit(nil), tc.in...)
			n := normalizeLits(buf)
			if tc.want == nil {
				assert.Equal(t, -1, n)
			} else {
				require.GreaterOrEqual(t, n, 0)
				assert.Equal(t, tc.want, buf[:n])
			}
		})
	}
	assert.Equal(t, 0, normalizeLits(nil), "empty clause stays empty")
}
