// Command cdcl is a CDCL SAT solver for DIMACS CNF instances, with
// instance generators and inprocessing tooling.
//
// Exit codes follow the SAT competition convention: 10 satisfiable,
// 20 unsatisfiable, 30 unknown, -1 error.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/sat"
)

var (
	flagSilent bool
	flagDebug  []string
	flagTrace  []string
)

func main() {
	root := &cobra.Command{
		Use:           "cdcl",
		Short:         "a CDCL SAT solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagSilent {
				sat.SetLogLevel(logrus.WarnLevel)
			}
			for _, c := range flagDebug {
				sat.SetComponentLogLevel(c, logrus.DebugLevel)
			}
			for _, c := range flagTrace {
				sat.SetComponentLogLevel(c, logrus.TraceLevel)
			}
		},
	}
	root.PersistentFlags().BoolVar(&flagSilent, "silent", false,
		"remove most logging")
	root.PersistentFlags().StringArrayVar(&flagDebug, "debug", nil,
		"increase verbosity of some component")
	root.PersistentFlags().StringArrayVar(&flagTrace, "trace", nil,
		"increase verbosity of some component even more")

	root.AddCommand(
		newSolveCommand(),
		newCheckCommand(),
		newSimplifyCommand(),
		newStatsCommand(),
		newGenCommand(),
		newGenHardCommand(),
		newGenCircuitCommand(),
		newSHA256Command(),
		newUICommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

// exitParseError prints the conventional parse error line and aborts.
func exitParseError(err error) {
	fmt.Printf("PARSE ERROR: %v\n", err)
	os.Exit(-1)
}

// collectClauses snapshots the parsed clauses for solution checking before
// the solver normalizes and transforms them.
func collectClauses(storage *sat.ClauseStorage) [][]sat.Lit {
	var out [][]sat.Lit
	for _, ci := range storage.Crefs() {
		cl := storage.Clause(ci)
		out = append(out, append([]sat.Lit(nil), cl.Lits()...))
	}
	return out
}
