package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/dimacs"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <cnf> <solution>",
		Short: "check a solution against a CNF",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			storage, varCount, err := dimacs.ParseCNFFile(args[0])
			if err != nil {
				exitParseError(err)
			}
			sol, err := dimacs.ParseSolutionFile(args[1], varCount)
			if err != nil {
				exitParseError(err)
			}
			// variables missing from the value lines default to false
			sol.FixUnassigned()

			for _, cl := range collectClauses(&storage) {
				if !sol.Satisfied(cl) {
					fmt.Println("c SOLUTION CHECK FAILED")
					os.Exit(-1)
				}
			}
			fmt.Println("c solution checked")
		},
	}
}
