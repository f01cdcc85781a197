// Package dimacs reads and writes CNF formulas and solver solutions in the
// DIMACS format.
//
// A few liberal variations on the standard are accepted: comment lines may
// appear anywhere, the problem line may be missing entirely, clauses may span
// lines, and literals indexing past the declared variable count enlarge the
// variable set. Tautological and duplicate literals are accepted and
// normalized away by the CNF container.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/xDarkicex/cdcl/sat"
)

// ParseCNF reads a DIMACS CNF formula. Returns the raw clause storage and
// the variable count; NewSatFromStorage or NewCNFFromStorage normalize it
// into a problem.
func ParseCNF(r io.Reader) (sat.ClauseStorage, int, error) {
	var storage sat.ClauseStorage
	varCount := -1
	clauseCount := -1
	nClauses := 0
	var clause []sat.Lit

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		// some benchmark sets attach trailers after a lone '%'
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return storage, 0, errors.Errorf("malformed problem line %q", line)
			}
			if varCount != -1 {
				return storage, 0, errors.New("duplicate problem line")
			}
			var err error
			if varCount, err = strconv.Atoi(fields[2]); err != nil || varCount < 0 {
				return storage, 0, errors.Errorf("malformed variable count in %q", line)
			}
			if clauseCount, err = strconv.Atoi(fields[3]); err != nil || clauseCount < 0 {
				return storage, 0, errors.Errorf("malformed clause count in %q", line)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			x, err := strconv.Atoi(field)
			if err != nil {
				return storage, 0, errors.Wrapf(err, "invalid literal %q", field)
			}
			if x == 0 {
				storage.AddClause(clause, sat.ColorBlue)
				clause = clause[:0]
				nClauses++
				continue
			}
			l := sat.LitFromDimacs(x)
			if l.Var()+1 > varCount {
				varCount = l.Var() + 1
			}
			clause = append(clause, l)
		}
	}
	if err := s.Err(); err != nil {
		return storage, 0, errors.Wrap(err, "reading CNF")
	}
	if len(clause) > 0 {
		return storage, 0, errors.New("incomplete clause at end of file")
	}
	if clauseCount != -1 && clauseCount != nClauses {
		return storage, 0, errors.Errorf(
			"wrong number of clauses: header said %d, actually got %d",
			clauseCount, nClauses)
	}
	if varCount == -1 {
		varCount = 0
	}
	return storage, varCount, nil
}

// ParseCNFFile reads a CNF from a file, or from stdin when the name is empty.
func ParseCNFFile(name string) (sat.ClauseStorage, int, error) {
	if name == "" {
		return ParseCNF(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return sat.ClauseStorage{}, 0, errors.Wrap(err, "opening CNF")
	}
	defer f.Close()
	storage, n, err := ParseCNF(f)
	return storage, n, errors.Wrapf(err, "parsing %s", name)
}

// ParseSolution reads a DIMACS solution: the status line is skipped, value
// lines assign literals. Variables missing from the value lines stay
// unassigned; callers fill them with a default.
func ParseSolution(r io.Reader, varCount int) (sat.Assignment, error) {
	a := sat.NewAssignment(varCount)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' || line[0] == 's' {
			continue
		}
		if line[0] != 'v' {
			return a, errors.Errorf("unexpected solution line %q", line)
		}
		for _, field := range strings.Fields(line[1:]) {
			x, err := strconv.Atoi(field)
			if err != nil {
				return a, errors.Wrapf(err, "invalid literal %q", field)
			}
			if x == 0 {
				continue
			}
			l := sat.LitFromDimacs(x)
			if l.Var() >= varCount {
				return a, errors.Errorf("literal %d out of range", x)
			}
			if !a.Assigned(l) {
				a.Set(l)
			}
		}
	}
	if err := s.Err(); err != nil {
		return a, errors.Wrap(err, "reading solution")
	}
	return a, nil
}

// ParseSolutionFile reads a solution from a file, or stdin when empty.
func ParseSolutionFile(name string, varCount int) (sat.Assignment, error) {
	if name == "" {
		return ParseSolution(os.Stdin, varCount)
	}
	f, err := os.Open(name)
	if err != nil {
		return sat.Assignment{}, errors.Wrap(err, "opening solution")
	}
	defer f.Close()
	a, err := ParseSolution(f, varCount)
	return a, errors.Wrapf(err, "parsing %s", name)
}

// WriteCNF writes the formula with a problem header. Units, binaries and
// long clauses come out sorted, so printing a normalized CNF is canonical:
// parse-print-parse is the identity.
func WriteCNF(w io.Writer, c *sat.CNF) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", c.VarCount(), c.ClauseCount())

	if c.Contradiction {
		fmt.Fprintln(bw, "0")
	}

	units := append([]sat.Lit(nil), c.Units...)
	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })
	for _, u := range units {
		fmt.Fprintf(bw, "%v 0\n", u)
	}

	for i := 0; i < 2*c.VarCount(); i++ {
		l := sat.Lit(i)
		bins := append([]sat.Lit(nil), c.Bins[l]...)
		sort.Slice(bins, func(x, y int) bool { return bins[x] < bins[y] })
		for _, b := range bins {
			if l <= b {
				fmt.Fprintf(bw, "%v %v 0\n", l, b)
			}
		}
	}

	var longs [][]sat.Lit
	for _, ci := range c.Clauses.Crefs() {
		cl := c.Clauses.Clause(ci)
		if cl.Color() == sat.ColorBlack {
			continue
		}
		longs = append(longs, append([]sat.Lit(nil), cl.Lits()...))
	}
	sort.Slice(longs, func(i, j int) bool {
		a, b := longs[i], longs[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	for _, cl := range longs {
		parts := make([]string, len(cl))
		for i, l := range cl {
			parts[i] = l.String()
		}
		fmt.Fprintf(bw, "%s 0\n", strings.Join(parts, " "))
	}
	return errors.Wrap(bw.Flush(), "writing CNF")
}

// StatusLine returns the DIMACS status line for a solver result.
func StatusLine(result int) string {
	switch result {
	case sat.ResultSat:
		return "s SATISFIABLE"
	case sat.ResultUnsat:
		return "s UNSATISFIABLE"
	default:
		return "s UNKNOWN"
	}
}

// WriteSolution writes the status line and, for satisfiable results, the
// value line listing every variable with its assigned sign.
func WriteSolution(w io.Writer, result int, a *sat.Assignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, StatusLine(result))
	if result == sat.ResultSat && a != nil {
		fmt.Fprintf(bw, "v %s 0\n", a.String())
	}
	return errors.Wrap(bw.Flush(), "writing solution")
}
