package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLubySequence(t *testing.T) {
	want := []int64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8}
	for i, w := range want {
		assert.Equal(t, w, Luby(int64(i+1)), "luby(%d)", i+1)
	}
}

func TestLubySum(t *testing.T) {
	// the first 2^n - 1 elements sum to n * 2^(n-1)
	for n := 1; n <= 10; n++ {
		var sum int64
		for i := int64(1); i < 1<<n; i++ {
			sum += Luby(i)
		}
		assert.Equal(t, int64(n)<<(n-1), sum, "n=%d", n)
	}
}

func TestRestartBudgets(t *testing.T) {
	mkSearcher := func(typ RestartType) *Searcher {
		cfg := DefaultSolverConfig()
		cfg.RestartType = typ
		cfg.RestartBase = 100
		cfg.RestartMult = 2.0
		return &Searcher{cfg: &cfg}
	}

	se := mkSearcher(RestartConstant)
	assert.Equal(t, int64(100), se.restartBudget(1))
	assert.Equal(t, int64(100), se.restartBudget(7))

	se = mkSearcher(RestartLinear)
	assert.Equal(t, int64(100), se.restartBudget(1))
	assert.Equal(t, int64(300), se.restartBudget(3))

	se = mkSearcher(RestartGeometric)
	assert.Equal(t, int64(100), se.restartBudget(1))
	assert.Equal(t, int64(400), se.restartBudget(3))

	se = mkSearcher(RestartLuby)
	budgets := make([]int64, 0, 7)
	for k := int64(1); k <= 7; k++ {
		budgets = append(budgets, se.restartBudget(k))
	}
	assert.Equal(t, []int64{100, 100, 200, 100, 100, 200, 400}, budgets)
}

func TestParseRestartType(t *testing.T) {
	for _, name := range []string{"constant", "linear", "geometric", "luby"} {
		rt, err := ParseRestartType(name)
		require.NoError(t, err)
		assert.Equal(t, name, rt.String())
	}
	_, err := ParseRestartType("fibonacci")
	assert.Error(t, err)
}
