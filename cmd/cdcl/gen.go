package main

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/dimacs"
	"github.com/xDarkicex/cdcl/gen"
	"github.com/xDarkicex/cdcl/sat"
)

// genRng builds the generator rng from the --seed flag; -1 picks a fresh
// seed from the clock.
func genRng(seed int64) *rand.Rand {
	if seed == -1 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func parsePositiveInt(s, what string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		exitParseError(errInvalidArg(what, s))
		return 0
	}
	return n
}

type argError struct{ what, val string }

func (e argError) Error() string { return "invalid " + e.what + " " + e.val }

func errInvalidArg(what, val string) error { return argError{what, val} }

func writeCNF(c *sat.CNF) {
	if err := dimacs.WriteCNF(os.Stdout, c); err != nil {
		os.Exit(-1)
	}
}

func newGenCommand() *cobra.Command {
	var ratio float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "gen <nvars> [nclauses]",
		Short: "generate a random satisfiable 3-CNF",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			nvars := parsePositiveInt(args[0], "variable count")
			nclauses := 0
			if len(args) == 2 {
				nclauses = parsePositiveInt(args[1], "clause count")
			}
			if nclauses == 0 {
				nclauses = int(ratio * float64(nvars))
			}
			cnf, _ := gen.Random3SAT(nvars, nclauses, genRng(seed))
			writeCNF(cnf)
		},
	}
	cmd.Flags().Float64Var(&ratio, "ratio", gen.DefaultRatio,
		"ratio of clauses to variables")
	cmd.Flags().Int64Var(&seed, "seed", -1, "seed for random number generator")
	return cmd
}

func newGenHardCommand() *cobra.Command {
	var groupSize, partitions int
	var seed int64

	cmd := &cobra.Command{
		Use:   "gen_hard <nvars>",
		Short: "generate a hard group/partition instance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			nvars := parsePositiveInt(args[0], "variable count")
			writeCNF(gen.Hard(nvars, groupSize, partitions, genRng(seed)))
		},
	}
	cmd.Flags().IntVarP(&groupSize, "group", "g", 5, "group size (>= 2)")
	cmd.Flags().IntVarP(&partitions, "partitions", "p", 3, "number of partitions (>= 2)")
	cmd.Flags().Int64Var(&seed, "seed", -1, "seed for random number generator")
	return cmd
}

func newGenCircuitCommand() *cobra.Command {
	var xorRatio float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "gen_circuit <width> <height>",
		Short: "generate a random circuit inversion instance",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			width := parsePositiveInt(args[0], "width")
			height := parsePositiveInt(args[1], "height")
			writeCNF(gen.Circuit(width, height, xorRatio, genRng(seed)))
		},
	}
	cmd.Flags().Float64Var(&xorRatio, "xor-ratio", 0.5,
		"ratio of XOR gates in [0,1]")
	cmd.Flags().Int64Var(&seed, "seed", -1, "seed for random number generator")
	return cmd
}
