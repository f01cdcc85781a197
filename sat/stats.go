package sat

import "time"

// Stats collects solver counters and per-pass wall-clock times. A single
// Stats value travels through parsing, inprocessing and search so the final
// dump covers the whole run.
type Stats struct {
	Decisions  int64
	BinProps   int64
	LongProps  int64
	Conflicts  int64
	Restarts   int64
	LitsLearnt int64

	LearntUnits    int64
	LearntBinaries int64
	LearntLongs    int64
	ClausesDeleted int64

	TimeParse   time.Duration
	TimeCleanup time.Duration
	TimeProbing time.Duration
	TimeSubsume time.Duration
	TimeVivify  time.Duration
	TimeBVE     time.Duration
	TimeBCE     time.Duration
	TimeSearch  time.Duration
	TimeTotal   time.Duration
}

// Propagations returns the total number of propagated literals.
func (s *Stats) Propagations() int64 { return s.BinProps + s.LongProps }

// Dump logs a summary of counters and the time breakdown.
func (s *Stats) Dump() {
	log := NewLogger("stats")
	log.Infof("decisions %d, propagations %d (%d bin, %d long)",
		s.Decisions, s.Propagations(), s.BinProps, s.LongProps)
	log.Infof("conflicts %d, restarts %d, learnt %d units / %d bins / %d longs (%d lits), deleted %d",
		s.Conflicts, s.Restarts, s.LearntUnits, s.LearntBinaries, s.LearntLongs,
		s.LitsLearnt, s.ClausesDeleted)
	total := s.TimeTotal.Seconds()
	if total <= 0 {
		return
	}
	part := func(name string, d time.Duration) {
		if d > 0 {
			log.Infof("%-8s %6.2fs (%4.1f%%)", name, d.Seconds(), 100*d.Seconds()/total)
		}
	}
	part("parse", s.TimeParse)
	part("cleanup", s.TimeCleanup)
	part("probing", s.TimeProbing)
	part("subsume", s.TimeSubsume)
	part("vivify", s.TimeVivify)
	part("BVE", s.TimeBVE)
	part("BCE", s.TimeBCE)
	part("search", s.TimeSearch)
	log.Infof("total    %6.2fs", total)
}

// Luby returns the i-th element (1-based) of the luby restart sequence
// 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,...
func Luby(i int64) int64 {
	x := i - 1
	size, seq := int64(1), 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x %= size
	}
	return int64(1) << seq
}
