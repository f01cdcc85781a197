package sat

import "sort"

// Search outcome codes, matching the process exit convention.
const (
	ResultSat     = 10
	ResultUnsat   = 20
	ResultUnknown = 30
)

// Searcher runs the CDCL loop over a cleaned-up problem: decisions from the
// activity heap with phase saving, conflict analysis and clause learning,
// restarts, and learnt database reduction. It owns a propagation engine built
// over the Sat; learnt clauses flow into the shared clause storage, so they
// survive into the next inprocessing round.
type Searcher struct {
	sat *Sat
	p   *PropEngine
	act *ActivityHeap
	cfg *SolverConfig

	polarity []bool // saved phase per variable

	restartCount int64
	stats        *Stats
	log          Logger
}

// NewSearcher builds a searcher over the problem. The construction already
// propagates the unit clauses; a conflict there surfaces as UNSAT on the
// first Run.
func NewSearcher(s *Sat, cfg *SolverConfig, stats *Stats) *Searcher {
	return &Searcher{
		sat:      s,
		p:        NewPropEngine(s, stats),
		act:      NewActivityHeap(s.VarCount()),
		cfg:      cfg,
		polarity: make([]bool, s.VarCount()),
		stats:    stats,
		log:      NewLogger("search"),
	}
}

// restartBudget returns the conflict budget of the k-th restart segment
// (1-based) under the configured schedule.
func (se *Searcher) restartBudget(k int64) int64 {
	base := se.cfg.RestartBase
	switch se.cfg.RestartType {
	case RestartConstant:
		return base
	case RestartLinear:
		return k * base
	case RestartGeometric:
		b := float64(base)
		for i := int64(1); i < k; i++ {
			b *= se.cfg.RestartMult
		}
		return int64(b)
	case RestartLuby:
		return base * Luby(k)
	}
	return base
}

// Run searches for at most maxConfl conflicts and returns ResultSat with a
// model, ResultUnsat, or ResultUnknown when the budget ran out or an
// interrupt arrived. In the unknown case the trail is unrolled to level 0 so
// level-0 units can be harvested for the next inprocessing round.
func (se *Searcher) Run(maxConfl int64) (int, *Assignment) {
	cfg := se.cfg
	var nConfl, segConfl int64
	segBudget := se.restartBudget(se.restartCount + 1)

	for {
		// handle conflicts
		for se.p.Conflict {
			nConfl++
			segConfl++

			if se.p.Level() == 0 {
				return ResultUnsat, nil
			}

			learnt := se.p.AnalyzeConflict(se.act, cfg.FullResolution)
			if cfg.OTF >= 1 {
				learnt = se.p.ShortenLearnt(learnt, cfg.OTF >= 2)
			}
			glue := se.p.CalcGlue(learnt)
			backLevel := se.p.BacktrackLevel(learnt)
			se.act.Decay()
			se.p.Unroll(backLevel, se.act)

			switch len(learnt) {
			case 0:
				// conflict clause resolved away completely: level-0 conflict
				se.sat.AddEmpty()
				return ResultUnsat, nil
			case 1:
				se.stats.LearntUnits++
				se.sat.AddUnary(learnt[0])
				se.p.PropagateFull(learnt[0], ReasonUndef)
			case 2:
				se.stats.LearntBinaries++
				se.sat.AddBinary(learnt[0], learnt[1])
				se.p.PropagateFull(learnt[0], ReasonBinary(learnt[1]))
			default:
				se.stats.LearntLongs++
				r := se.p.AddLearntClause(learnt, glue)
				se.p.PropagateFull(learnt[0], r)
			}
			se.savePhases()
		}

		if nConfl > maxConfl || cfg.Interrupted() {
			if se.p.Level() > 0 {
				se.p.Unroll(0, se.act)
			}
			return ResultUnknown, nil
		}

		if segConfl > segBudget {
			se.restartCount++
			se.stats.Restarts++
			segConfl = 0
			segBudget = se.restartBudget(se.restartCount + 1)
			if se.p.Level() > 0 {
				se.p.Unroll(0, se.act)
			}
			se.reduceDB()
			continue
		}

		branchLit, ok := se.chooseBranch()
		if !ok {
			// no unassigned variable left: model found
			model := se.p.Assign.Clone()
			return ResultSat, &model
		}
		se.stats.Decisions++
		se.p.Branch(branchLit)
		se.savePhases()
	}
}

// savePhases records the polarity of everything assigned on the current
// level, so future decisions on those variables repeat their last value.
func (se *Searcher) savePhases() {
	for _, x := range se.p.TrailLevel(se.p.Level()) {
		se.polarity[x.Var()] = x.Sign()
	}
}

// chooseBranch pops the most active unassigned variable and applies the
// saved phase, optionally walking up the binary implication graph to branch
// on a dominating literal instead.
func (se *Searcher) chooseBranch() (Lit, bool) {
	v := -1
	for !se.act.Empty() {
		cand := se.act.Pop()
		if !se.p.Assign.Assigned(NewLit(cand, false)) {
			v = cand
			break
		}
	}
	if v == -1 {
		return LitUndef, false
	}

	branchLit := NewLit(v, se.polarity[v])
	if se.cfg.BranchDom >= 1 {
		// the counter bounds the walk; equivalent variables would otherwise
		// loop forever
		counter := 0
	dom:
		for {
			for _, l := range se.sat.Bins[branchLit] {
				// l.Neg() implies branchLit
				if se.p.Assign.IsTrue(l) {
					continue
				}
				if se.cfg.BranchDom >= 2 || se.polarity[l.Var()] == l.Neg().Sign() {
					branchLit = l.Neg()
					counter++
					if counter < 5 {
						continue dom
					}
					break dom
				}
			}
			break
		}
	}
	return branchLit, true
}

// reduceDB trims the learnt clause database at level 0: clauses over the
// glue or size limits are dropped immediately, and if the database is still
// over its cap the worst clauses go too, preferring to keep low glue, then
// short clauses.
func (se *Searcher) reduceDB() {
	cfg := se.cfg
	type cand struct {
		ci   CRef
		glue int
		size int
	}
	var keep []cand
	dropped := 0

	drop := func(ci CRef, cl Clause) {
		se.detach(ci, cl)
		cl.SetColor(ColorBlack)
		dropped++
	}

	for _, ci := range se.sat.Clauses.Crefs() {
		cl := se.sat.Clauses.Clause(ci)
		if cl.Color() != ColorGreen {
			continue
		}
		if cl.Glue() > cfg.MaxLearntGlue || cl.Size() > cfg.MaxLearntSize {
			drop(ci, cl)
			continue
		}
		keep = append(keep, cand{ci: ci, glue: cl.Glue(), size: cl.Size()})
	}

	if len(keep) > cfg.MaxLearnt {
		sort.Slice(keep, func(i, j int) bool {
			if cfg.UseGlue && keep[i].glue != keep[j].glue {
				return keep[i].glue < keep[j].glue
			}
			return keep[i].size < keep[j].size
		})
		for _, c := range keep[cfg.MaxLearnt:] {
			drop(c.ci, se.sat.Clauses.Clause(c.ci))
		}
	}

	if dropped > 0 {
		se.stats.ClausesDeleted += int64(dropped)
		se.log.Debugf("dropped %d learnt clauses", dropped)
	}
}

// detach removes a clause from the watch lists of its two watched literals.
func (se *Searcher) detach(ci CRef, cl Clause) {
	for _, w := range []Lit{cl.Get(0), cl.Get(1)} {
		ws := se.p.Watches[w]
		for i, c := range ws {
			if c == ci {
				ws[i] = ws[len(ws)-1]
				se.p.Watches[w] = ws[:len(ws)-1]
				break
			}
		}
	}
}

// Trail exposes the engine trail; the driver harvests level-0 literals as
// unit clauses between rounds.
func (se *Searcher) Trail() []Lit { return se.p.Trail() }

// Conflict reports whether the engine is stuck in a level-0 conflict.
func (se *Searcher) Conflict() bool { return se.p.Conflict && se.p.Level() == 0 }

// WatchStats logs the size distribution of the watch lists.
func (se *Searcher) WatchStats() {
	var hist [8]int
	for _, ws := range se.p.Watches {
		b := 0
		for n := len(ws); n > 0 && b < len(hist)-1; n /= 2 {
			b++
		}
		hist[b]++
	}
	for b, n := range hist {
		if n == 0 {
			continue
		}
		lo := 0
		if b > 0 {
			lo = 1 << (b - 1)
		}
		se.log.Infof("watchlists of size ~%d: %d", lo, n)
	}
}
