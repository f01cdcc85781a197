package sat

import "github.com/prometheus/client_golang/prometheus"

// StatsCollector exposes solver statistics as prometheus metrics, so long
// running solves can be watched from the outside. The collector reads the
// counters without synchronization; values may lag by a propagation or two,
// which is fine for monitoring.
type StatsCollector struct {
	stats *Stats

	decisions    *prometheus.Desc
	propagations *prometheus.Desc
	conflicts    *prometheus.Desc
	restarts     *prometheus.Desc
	litsLearnt   *prometheus.Desc
	deleted      *prometheus.Desc
}

// NewStatsCollector creates a collector over the given statistics.
func NewStatsCollector(stats *Stats) *StatsCollector {
	return &StatsCollector{
		stats: stats,
		decisions: prometheus.NewDesc("sat_decisions_total",
			"Number of branching decisions made.", nil, nil),
		propagations: prometheus.NewDesc("sat_propagations_total",
			"Number of literals assigned by unit propagation.",
			[]string{"kind"}, nil),
		conflicts: prometheus.NewDesc("sat_conflicts_total",
			"Number of conflicts encountered.", nil, nil),
		restarts: prometheus.NewDesc("sat_restarts_total",
			"Number of restarts performed.", nil, nil),
		litsLearnt: prometheus.NewDesc("sat_learnt_literals_total",
			"Total literals across learnt clauses.", nil, nil),
		deleted: prometheus.NewDesc("sat_deleted_clauses_total",
			"Learnt clauses dropped by database reduction.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.decisions
	ch <- c.propagations
	ch <- c.conflicts
	ch <- c.restarts
	ch <- c.litsLearnt
	ch <- c.deleted
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue,
		float64(c.stats.Decisions))
	ch <- prometheus.MustNewConstMetric(c.propagations, prometheus.CounterValue,
		float64(c.stats.BinProps), "binary")
	ch <- prometheus.MustNewConstMetric(c.propagations, prometheus.CounterValue,
		float64(c.stats.LongProps), "long")
	ch <- prometheus.MustNewConstMetric(c.conflicts, prometheus.CounterValue,
		float64(c.stats.Conflicts))
	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue,
		float64(c.stats.Restarts))
	ch <- prometheus.MustNewConstMetric(c.litsLearnt, prometheus.CounterValue,
		float64(c.stats.LitsLearnt))
	ch <- prometheus.MustNewConstMetric(c.deleted, prometheus.CounterValue,
		float64(c.stats.ClausesDeleted))
}
