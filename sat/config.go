package sat

import (
	"fmt"
	"sync/atomic"
)

// RestartType selects the restart schedule of the CDCL search.
type RestartType int

const (
	RestartConstant RestartType = iota
	RestartLinear
	RestartGeometric
	RestartLuby
)

func (r RestartType) String() string {
	switch r {
	case RestartConstant:
		return "constant"
	case RestartLinear:
		return "linear"
	case RestartGeometric:
		return "geometric"
	case RestartLuby:
		return "luby"
	}
	return fmt.Sprintf("RestartType(%d)", int(r))
}

// ParseRestartType parses the CLI spelling of a restart schedule.
func ParseRestartType(s string) (RestartType, error) {
	switch s {
	case "constant":
		return RestartConstant, nil
	case "linear":
		return RestartLinear, nil
	case "geometric":
		return RestartGeometric, nil
	case "luby":
		return RestartLuby, nil
	}
	return 0, fmt.Errorf("unknown restart type %q", s)
}

// SolverConfig holds every tunable of the solver. The zero value is not
// useful; start from DefaultSolverConfig.
type SolverConfig struct {
	// MaxConfls stops the search after approximately this many conflicts;
	// <= 0 means unlimited.
	MaxConfls int64

	// OTF selects on-the-fly strengthening of learnt clauses:
	// 0=off, 1=basic, 2=recursive.
	OTF int

	// FullResolution learns by full resolution instead of stopping at the
	// first UIP.
	FullResolution bool

	// BranchDom branches on a literal dominating the chosen one:
	// 0=off, 1=only if the saved polarity matches, 2=always.
	BranchDom int

	// Learnt clause database limits.
	MaxLearntSize int
	MaxLearntGlue int
	MaxLearnt     int
	UseGlue       bool

	// Restart schedule.
	RestartType RestartType
	RestartBase int64
	RestartMult float64

	// Inprocessing passes: 0 disables, larger values enable more expensive
	// variants as documented on the CLI.
	Probing        int // 1=roots, 2=full, 3=full+binary pairs
	Subsume        int // 1=binary, 2=full
	TBR            int // 2=full transitive binary reduction
	Vivify         int // 1=normal, 2=binary strengthening, 3=also learnt
	BVE            int // resolvent growth bound, negative disables
	BVA            int // minimum pair occurrences, 0 disables
	InprocessIters int

	// WatchStats dumps watch list statistics after solving.
	WatchStats bool

	// Interrupt is polled at quiescent points; setting it makes the solver
	// unroll and return unknown. Installed by the CLI signal handler, only
	// read here.
	Interrupt *atomic.Bool
}

// DefaultSolverConfig returns the configuration used by the solve command
// when no flags are given.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		MaxConfls:      0,
		OTF:            2,
		BranchDom:      0,
		MaxLearntSize:  100,
		MaxLearntGlue:  7,
		MaxLearnt:      10000,
		UseGlue:        true,
		RestartType:    RestartLuby,
		RestartBase:    100,
		RestartMult:    1.1,
		Probing:        1,
		Subsume:        2,
		TBR:            2,
		Vivify:         1,
		BVE:            0,
		BVA:            0,
		InprocessIters: 1,
	}
}

// Interrupted reports whether an interrupt was requested.
func (c *SolverConfig) Interrupted() bool {
	return c.Interrupt != nil && c.Interrupt.Load()
}
