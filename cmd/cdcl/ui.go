package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/dimacs"
	"github.com/xDarkicex/cdcl/sat"
)

func newUICommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "ui <input>",
		Short: "solve with a live colored status line",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// the status line replaces the regular logging
			sat.SetLogLevel(logrus.WarnLevel)

			storage, varCount, err := dimacs.ParseCNFFile(args[0])
			if err != nil {
				exitParseError(err)
			}
			s := sat.NewSatFromStorage(varCount, storage)

			var interrupt atomic.Bool
			cfg := sat.DefaultSolverConfig()
			cfg.Interrupt = &interrupt
			installInterrupt(&interrupt)

			stats := &sat.Stats{}
			header := color.New(color.FgCyan, color.Bold)
			line := color.New(color.FgHiWhite)
			header.Printf("%-12s %12s %12s %12s %12s\n",
				"", "conflicts", "decisions", "props", "restarts")

			done := make(chan struct{})
			go func() {
				tick := time.NewTicker(interval)
				defer tick.Stop()
				start := time.Now()
				for {
					select {
					case <-done:
						return
					case <-tick.C:
						line.Printf("%-12s %12d %12d %12d %12d\r",
							time.Since(start).Truncate(time.Second),
							stats.Conflicts, stats.Decisions,
							stats.Propagations(), stats.Restarts)
					}
				}
			}()

			result, sol := sat.SolveWithStats(s, cfg, stats)
			close(done)
			fmt.Println()

			switch result {
			case sat.ResultSat:
				color.Green(dimacs.StatusLine(result))
				fmt.Printf("v %s 0\n", sol.String())
			case sat.ResultUnsat:
				color.Red(dimacs.StatusLine(result))
			default:
				color.Yellow(dimacs.StatusLine(result))
			}
			stats.Dump()
			os.Exit(result)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Second,
		"status refresh interval")
	return cmd
}
