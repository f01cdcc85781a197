package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/dimacs"
	"github.com/xDarkicex/cdcl/gen"
	"github.com/xDarkicex/cdcl/sat"
)

func newSHA256Command() *cobra.Command {
	var inputBits, zeroBits, inputZeroBits, rounds int
	var solve bool

	cmd := &cobra.Command{
		Use:   "sha256 [output]",
		Short: "generate a SHA-256 preimage instance via bit-blasting",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := sat.NewSat(0)
			_, hash := gen.SHA256Preimage(s, inputBits, zeroBits, inputZeroBits, rounds)

			if solve {
				fmt.Printf("c %d vars\n", s.VarCount())
				result, sol := sat.Solve(s, sat.DefaultSolverConfig())
				if result != sat.ResultSat {
					fmt.Println(dimacs.StatusLine(result))
					os.Exit(result)
				}
				v := gen.Byteswap32(hash[0].Value(sol))
				fmt.Printf("hash = %08x\n", v)
				return
			}

			out := os.Stdout
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(-1)
				}
				defer f.Close()
				out = f
			}
			if err := dimacs.WriteCNF(out, &s.CNF); err != nil {
				os.Exit(-1)
			}
		},
	}

	cmd.Flags().IntVar(&inputBits, "input-bits", 256, "number of input bits")
	cmd.Flags().IntVar(&zeroBits, "zero-bits", 256, "number of forced-zero hash bits")
	cmd.Flags().IntVar(&inputZeroBits, "input-zero-bits", 0,
		"number of forced-zero bits at the beginning of the input")
	cmd.Flags().IntVar(&rounds, "rounds", 64, "number of compression rounds")
	cmd.Flags().BoolVar(&solve, "solve", false,
		"solve the generated CNF instead of printing it")
	return cmd
}
