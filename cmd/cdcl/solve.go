package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/xDarkicex/cdcl/dimacs"
	"github.com/xDarkicex/cdcl/sat"
)

type solveOptions struct {
	seed        int64
	shuffle     bool
	maxTime     int
	restartType string
	metricsAddr string
	cfg         sat.SolverConfig
}

func newSolveCommand() *cobra.Command {
	opt := &solveOptions{cfg: sat.DefaultSolverConfig()}

	cmd := &cobra.Command{
		Use:   "solve [input] [output]",
		Short: "solve a CNF in dimacs format",
		Args:  cobra.MaximumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cnfFile, solFile := "", ""
			if len(args) >= 1 {
				cnfFile = args[0]
			}
			if len(args) == 2 {
				solFile = args[1]
			}
			runSolve(cnfFile, solFile, opt)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&opt.cfg.MaxConfls, "max-confls", 0,
		"stop solving after (approximately) this many conflicts (0 = unlimited)")
	f.IntVar(&opt.maxTime, "max-time", 0,
		"stop solving after (approximately) this time (seconds)")
	f.Int64Var(&opt.seed, "seed", 0,
		"seed for random number generator (default=0, unpredictable=-1)")
	f.BoolVar(&opt.shuffle, "shuffle", false,
		"shuffle the variables and their polarities before solving")

	f.IntVar(&opt.cfg.OTF, "otf", opt.cfg.OTF,
		"on-the-fly strengthening of learnt clauses (0=off, 1=basic, 2=recursive)")
	f.BoolVar(&opt.cfg.FullResolution, "full-resolution", false,
		"learn by full resolution instead of UIP")
	f.IntVar(&opt.cfg.BranchDom, "branch-dominating", opt.cfg.BranchDom,
		"branch on dominating literal instead of chosen one itself "+
			"(0=off, 1=matching polarity only, 2=always)")

	f.IntVar(&opt.cfg.MaxLearntSize, "max-learnt-size", opt.cfg.MaxLearntSize,
		"learnt clauses larger than this are removed very quickly")
	f.IntVar(&opt.cfg.MaxLearntGlue, "max-learnt-glue", opt.cfg.MaxLearntGlue,
		"learnt clauses with higher glue are removed very quickly")
	f.IntVar(&opt.cfg.MaxLearnt, "max-learnt", opt.cfg.MaxLearnt,
		"maximum size of the learnt clause database")
	f.BoolVar(&opt.cfg.UseGlue, "use-glue", opt.cfg.UseGlue,
		"use glue for clause cleaning")

	f.StringVar(&opt.restartType, "restart-type", opt.cfg.RestartType.String(),
		"constant, linear, geometric, luby")
	f.Int64Var(&opt.cfg.RestartBase, "restart-base", opt.cfg.RestartBase,
		"base conflict budget of restarts")
	f.Float64Var(&opt.cfg.RestartMult, "restart-mult", opt.cfg.RestartMult,
		"multiplier for geometric restarts")

	f.IntVar(&opt.cfg.Probing, "probing", opt.cfg.Probing,
		"failed-literal probing (0=off, 1=limited, 2=full, 3=full+binary)")
	f.IntVar(&opt.cfg.Subsume, "subsume", opt.cfg.Subsume,
		"subsumption and self-subsuming resolution (0=off, 1=binary, 2=full)")
	f.IntVar(&opt.cfg.TBR, "tbr", opt.cfg.TBR,
		"transitive reduction of binary clauses (0=off, 2=full)")
	f.IntVar(&opt.cfg.Vivify, "vivify", opt.cfg.Vivify,
		"clause vivification (0=off, 1=normal, 2=also binary strengthen, 3=also learnt)")
	f.IntVar(&opt.cfg.BVE, "bve", opt.cfg.BVE,
		"bounded variable elimination growth limit (negative = off)")
	f.IntVar(&opt.cfg.BVA, "bva", opt.cfg.BVA,
		"bounded variable addition occurrence cutoff (0 = off)")
	f.IntVar(&opt.cfg.InprocessIters, "inprocess-iters", opt.cfg.InprocessIters,
		"immediately repeat inprocessing if anything was found")

	f.BoolVar(&opt.cfg.WatchStats, "watch-stats", false,
		"print watchlist statistics after solving")
	f.StringVar(&opt.metricsAddr, "metrics-addr", "",
		"serve prometheus metrics on this address while solving")

	return cmd
}

// installInterrupt wires SIGINT and SIGALRM to the cooperative interrupt
// flag. A second SIGINT terminates the process.
func installInterrupt(interrupt *atomic.Bool) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGALRM)
	go func() {
		seenInt := false
		for sig := range ch {
			if sig == syscall.SIGINT {
				if seenInt {
					os.Exit(-1)
				}
				seenInt = true
			}
			interrupt.Store(true)
		}
	}()
}

func runSolve(cnfFile, solFile string, opt *solveOptions) {
	stats := &sat.Stats{}
	t0 := time.Now()
	storage, varCount, err := dimacs.ParseCNFFile(cnfFile)
	if err != nil {
		exitParseError(err)
	}
	stats.TimeParse = time.Since(t0)
	original := collectClauses(&storage)
	s := sat.NewSatFromStorage(varCount, storage)

	rt, err := sat.ParseRestartType(opt.restartType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	opt.cfg.RestartType = rt

	seed := opt.seed
	if seed == -1 {
		seed = time.Now().UnixNano()
	}
	s.Seed(seed)
	if opt.shuffle {
		sat.ShuffleVariables(s)
	}

	var interrupt atomic.Bool
	opt.cfg.Interrupt = &interrupt
	installInterrupt(&interrupt)
	if opt.maxTime > 0 {
		time.AfterFunc(time.Duration(opt.maxTime)*time.Second, func() {
			interrupt.Store(true)
		})
	}

	if opt.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(sat.NewStatsCollector(stats))
		go func() {
			_ = http.ListenAndServe(opt.metricsAddr,
				promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		}()
	}

	result, sol := sat.SolveWithStats(s, opt.cfg, stats)

	fmt.Println(dimacs.StatusLine(result))
	if result == sat.ResultSat {
		ok := true
		for _, cl := range original {
			if !sol.Satisfied(cl) {
				ok = false
				break
			}
		}
		if ok {
			fmt.Println("c solution checked")
		} else {
			fmt.Println("c SOLUTION CHECK FAILED")
			os.Exit(-1)
		}
		if solFile == "" {
			fmt.Printf("v %s 0\n", sol.String())
		}
	}

	if solFile != "" {
		f, err := os.Create(solFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(-1)
		}
		if err := dimacs.WriteSolution(f, result, sol); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(-1)
		}
		f.Close()
	}

	stats.Dump()
	os.Exit(result)
}
