package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/dimacs"
	"github.com/xDarkicex/cdcl/sat"
)

// printHistogram logs the variable count and the per-length clause counts,
// split into irredundant and redundant clauses.
func printHistogram(c *sat.CNF) {
	blue, green := c.Histogram()
	fmt.Printf("c nvars = %d\n", c.VarCount())
	max := len(blue)
	if len(green) > max {
		max = len(green)
	}
	totalBlue, totalGreen := 0, 0
	for k := 0; k < max; k++ {
		b, g := 0, 0
		if k < len(blue) {
			b = blue[k]
		}
		if k < len(green) {
			g = green[k]
		}
		totalBlue += b
		totalGreen += g
		if b != 0 || g != 0 {
			fmt.Printf("c nclauses[%3d] = %5d + %5d\n", k, b, g)
		}
	}
	fmt.Printf("c nclauses[all] = %5d + %5d\n", totalBlue, totalGreen)
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [input]",
		Short: "print variable count and clause histogram",
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
			cnf := sat.NewCNFFromStorage(varCount, storage)
			printHistogram(cnf)
		},
	}
}
