package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/dimacs"
	"github.com/xDarkicex/cdcl/sat"
)

func newSimplifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simplify [input]",
		Short: "run the inprocessing suite and print the simplified CNF",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			storage, varCount, err := dimacs.ParseCNFFile(name)
			if err != nil {
				exitParseError(err)
			}
			s := sat.NewSatFromStorage(varCount, storage)

			printHistogram(&s.CNF)
			sat.Simplify(s, sat.DefaultSolverConfig())
			printHistogram(&s.CNF)

			if err := dimacs.WriteCNF(os.Stdout, &s.CNF); err != nil {
				os.Exit(-1)
			}
		},
	}
}
