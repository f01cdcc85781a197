package dimacs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/cdcl/sat"
)

func parseToCNF(t *testing.T, in string) *sat.CNF {
	t.Helper()
	storage, varCount, err := ParseCNF(strings.NewReader(in))
	require.NoError(t, err)
	return sat.NewCNFFromStorage(varCount, storage)
}

func TestParseCNFBasic(t *testing.T) {
	cnf := parseToCNF(t, `
c a comment
p cnf 4 3
1 -2 3 0
2 0
-3 4 0
`)
	assert.Equal(t, 4, cnf.VarCount())
	assert.Equal(t, 1, cnf.UnaryCount())
	assert.Equal(t, 1, cnf.BinaryCount())
	assert.Equal(t, 1, cnf.LongCount())
}

func TestParseCNFLiberalInput(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		cnf := parseToCNF(t, "1 2 0\n-1 -2 0\n")
		assert.Equal(t, 2, cnf.VarCount())
		assert.Equal(t, 2, cnf.BinaryCount())
	})
	t.Run("clause spanning lines", func(t *testing.T) {
		cnf := parseToCNF(t, "p cnf 3 1\n1\n2\n3 0\n")
		assert.Equal(t, 1, cnf.LongCount())
	})
	t.Run("comment between clauses", func(t *testing.T) {
		cnf := parseToCNF(t, "1 2 0\nc interlude\n2 1 0\n")
		assert.Equal(t, 2, cnf.BinaryCount())
	})
	t.Run("literal beyond declared vars enlarges", func(t *testing.T) {
		cnf := parseToCNF(t, "p cnf 2 1\n1 2 7 0\n")
		assert.Equal(t, 7, cnf.VarCount())
	})
	t.Run("tautology normalized away", func(t *testing.T) {
		cnf := parseToCNF(t, "1 -1 2 0\n")
		assert.Equal(t, 0, cnf.ClauseCount())
	})
	t.Run("percent trailer", func(t *testing.T) {
		cnf := parseToCNF(t, "1 2 0\n%\ngarbage\n")
		assert.Equal(t, 1, cnf.BinaryCount())
	})
}

func TestParseCNFErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"incomplete clause", "1 2 3\n"},
		{"bad literal", "1 two 0\n"},
		{"bad header", "p cnf x 3\n"},
		{"duplicate header", "p cnf 2 1\np cnf 2 1\n1 0\n"},
		{"clause count mismatch", "p cnf 2 5\n1 0\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseCNF(strings.NewReader(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	in := `p cnf 5 6
1 0
-2 3 0
2 -3 0
1 2 3 0
-1 -2 -3 0
3 4 5 0
`
	cnf := parseToCNF(t, in)

	var first bytes.Buffer
	require.NoError(t, WriteCNF(&first, cnf))

	cnf2 := parseToCNF(t, first.String())
	var second bytes.Buffer
	require.NoError(t, WriteCNF(&second, cnf2))

	if diff := cmp.Diff(first.String(), second.String()); diff != "" {
		t.Errorf("print-parse-print is not the identity (-first +second):\n%s", diff)
	}
}

func TestWriteCNFContradiction(t *testing.T) {
	cnf := sat.NewCNF(0)
	cnf.AddEmpty()
	var buf bytes.Buffer
	require.NoError(t, WriteCNF(&buf, cnf))
	assert.Contains(t, buf.String(), "p cnf 0 1\n0\n")
}

func TestParseSolution(t *testing.T) {
	sol, err := ParseSolution(strings.NewReader(
		"c solved\ns SATISFIABLE\nv 1 -2 0\nv 3 0\n"), 4)
	require.NoError(t, err)
	assert.True(t, sol.IsTrue(sat.LitFromDimacs(1)))
	assert.True(t, sol.IsTrue(sat.LitFromDimacs(-2)))
	assert.True(t, sol.IsTrue(sat.LitFromDimacs(3)))
	assert.False(t, sol.Assigned(sat.LitFromDimacs(4)), "missing variables stay unassigned")

	_, err = ParseSolution(strings.NewReader("v 9 0\n"), 4)
	assert.Error(t, err, "literal out of range")
}

func TestWriteSolution(t *testing.T) {
	a := sat.NewAssignment(3)
	a.Set(sat.LitFromDimacs(1))
	a.Set(sat.LitFromDimacs(-2))
	a.Set(sat.LitFromDimacs(3))

	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, sat.ResultSat, &a))
	assert.Equal(t, "s SATISFIABLE\nv 1 -2 3 0\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSolution(&buf, sat.ResultUnsat, nil))
	assert.Equal(t, "s UNSATISFIABLE\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSolution(&buf, sat.ResultUnknown, nil))
	assert.Equal(t, "s UNKNOWN\n", buf.String())
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "s SATISFIABLE", StatusLine(sat.ResultSat))
	assert.Equal(t, "s UNSATISFIABLE", StatusLine(sat.ResultUnsat))
	assert.Equal(t, "s UNKNOWN", StatusLine(sat.ResultUnknown))
}
