package sat

import "time"

// Solve decides the problem: cleanup and inprocessing alternate with bounded
// CDCL search until a result or a resource limit. Returns ResultSat with a
// model of the original problem (lifted through the reconstruction stack),
// ResultUnsat, or ResultUnknown on conflict budget or interrupt.
func Solve(s *Sat, cfg SolverConfig) (int, *Assignment) {
	stats := &Stats{}
	return SolveWithStats(s, cfg, stats)
}

// timed adds the elapsed time of f to *d.
func timed(d *time.Duration, f func()) {
	t0 := time.Now()
	f()
	*d += time.Since(t0)
}

// SolveWithStats is Solve with caller-owned statistics, so the CLI can dump
// or export them afterwards.
func SolveWithStats(s *Sat, cfg SolverConfig, stats *Stats) (int, *Assignment) {
	log := NewLogger("solver")
	start := time.Now()
	defer func() { stats.TimeTotal += time.Since(start) }()

	cleanupOpts := CleanupOpts{TBR: cfg.TBR > 0, Probing: cfg.Probing > 0}
	var totalConfls int64
	roundBudget := int64(2000)

	for round := 0; ; round++ {
		timed(&stats.TimeCleanup, func() { CleanupWith(s, cleanupOpts) })
		if s.Contradiction {
			return ResultUnsat, nil
		}
		if cfg.Interrupted() {
			return ResultUnknown, nil
		}

		iters := cfg.InprocessIters
		if iters < 1 {
			iters = 1
		}
		for it := 0; it < iters; it++ {
			changed := 0
			if cfg.Probing >= 2 {
				timed(&stats.TimeProbing, func() { changed += RunProbingFull(s, stats) })
				timed(&stats.TimeCleanup, func() { CleanupWith(s, cleanupOpts) })
			}
			if cfg.Probing >= 3 {
				timed(&stats.TimeProbing, func() { changed += ProbeBinary(s, stats) })
				timed(&stats.TimeCleanup, func() { CleanupWith(s, cleanupOpts) })
			}
			if cfg.Subsume > 0 {
				timed(&stats.TimeSubsume, func() { changed += RunSubsumption(s, cfg.Subsume) })
				timed(&stats.TimeCleanup, func() { CleanupWith(s, cleanupOpts) })
			}
			if cfg.Vivify > 0 {
				timed(&stats.TimeVivify, func() { changed += RunVivification(s, cfg.Vivify) })
				timed(&stats.TimeCleanup, func() { CleanupWith(s, cleanupOpts) })
			}
			if cfg.BVE >= 0 {
				timed(&stats.TimeBCE, func() { changed += RunBlockedClauseElimination(s) })
				timed(&stats.TimeBVE, func() {
					changed += RunPureLiteralElimination(s)
					CleanupWith(s, cleanupOpts)
					changed += RunElimination(s, cfg.BVE)
				})
				timed(&stats.TimeCleanup, func() { CleanupWith(s, cleanupOpts) })
			}
			if cfg.BVA > 0 {
				changed += RunBVA(s, cfg.BVA)
				timed(&stats.TimeCleanup, func() { CleanupWith(s, cleanupOpts) })
			}
			if s.Contradiction {
				return ResultUnsat, nil
			}
			if cfg.Interrupted() {
				return ResultUnknown, nil
			}
			if changed == 0 {
				break
			}
		}

		log.Infof("round %d: %d vars, %d bins, %d irred, %d learnt",
			round, s.VarCount(), s.BinaryCount(), s.LongCountIrred(), s.LongCountRed())

		budget := roundBudget
		if cfg.MaxConfls > 0 && totalConfls+budget > cfg.MaxConfls {
			budget = cfg.MaxConfls - totalConfls
		}
		if budget <= 0 {
			return ResultUnknown, nil
		}
		se := NewSearcher(s, &cfg, stats)
		var result int
		var model *Assignment
		timed(&stats.TimeSearch, func() { result, model = se.Run(budget) })
		totalConfls += budget

		if cfg.WatchStats {
			se.WatchStats()
		}
		switch result {
		case ResultSat:
			sol := s.ReconstructSolution(model)
			return ResultSat, &sol
		case ResultUnsat:
			return ResultUnsat, nil
		}
		if cfg.Interrupted() {
			return ResultUnknown, nil
		}
		if cfg.MaxConfls > 0 && totalConfls >= cfg.MaxConfls {
			return ResultUnknown, nil
		}

		// harvest the level-0 assignments as units for the next round; the
		// learnt clauses are already in the shared storage
		for _, u := range se.Trail() {
			s.AddUnary(u)
		}
		if roundBudget < 1<<20 {
			roundBudget *= 2
		}
	}
}

// Simplify runs the full inprocessing suite without searching, the way the
// simplify command does: subsumption and vivification around rounds of
// elimination with increasing growth bounds.
func Simplify(s *Sat, cfg SolverConfig) {
	opts := CleanupOpts{TBR: cfg.TBR > 0, Probing: cfg.Probing > 0}
	CleanupWith(s, opts)
	RunSubsumption(s, cfg.Subsume)
	CleanupWith(s, opts)
	RunVivification(s, cfg.Vivify)
	CleanupWith(s, opts)
	RunSubsumption(s, cfg.Subsume)
	CleanupWith(s, opts)

	for _, growth := range []int{0, 8, 16} {
		RunBlockedClauseElimination(s)
		RunPureLiteralElimination(s)
		CleanupWith(s, opts)
		RunElimination(s, growth)
		CleanupWith(s, opts)
		RunSubsumption(s, cfg.Subsume)
		CleanupWith(s, opts)
		RunVivification(s, cfg.Vivify)
		CleanupWith(s, opts)
		RunSubsumption(s, cfg.Subsume)
		CleanupWith(s, opts)
	}
}
