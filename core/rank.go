package core

import (
	"sort"

	"github.com/huangsam/workwell/schema"
)

// HigherIsWorse reports whether larger averages of m mean worse wellbeing.
func HigherIsWorse(m schema.Metric) bool {
	return m == schema.StressMetric || m == schema.AnxietyMetric
}

// RankSectors orders sectors worst first for the metric and returns the top 'limit'.
// Ties keep their incoming (name) order. A limit <= 0 keeps every sector.
func RankSectors(rows []schema.SectorAggregate, m schema.Metric, limit int) []schema.SectorAggregate {
	worse := HigherIsWorse(m)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Averages.Value(m), rows[j].Averages.Value(m)
		if worse {
			return a > b
		}
		return a < b
	})
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
