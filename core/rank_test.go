package core

import (
	"testing"

	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankSectors(t *testing.T) {
	build := func() []schema.SectorAggregate {
		return []schema.SectorAggregate{
			{Sector: "Finance", Averages: schema.MetricAverages{Stress: 6.5, Happiness: 5.0}},
			{Sector: "IT", Averages: schema.MetricAverages{Stress: 8.2, Happiness: 4.1}},
			{Sector: "Legal", Averages: schema.MetricAverages{Stress: 6.5, Happiness: 7.3}},
			{Sector: "Sales", Averages: schema.MetricAverages{Stress: 3.0, Happiness: 8.8}},
		}
	}

	t.Run("stress is worst when highest", func(t *testing.T) {
		ranked := RankSectors(build(), schema.StressMetric, 0)
		assert.Equal(t, []string{"IT", "Finance", "Legal", "Sales"}, sectorNames(ranked))
	})

	t.Run("happiness is worst when lowest", func(t *testing.T) {
		ranked := RankSectors(build(), schema.HappinessMetric, 0)
		assert.Equal(t, []string{"IT", "Finance", "Legal", "Sales"}, sectorNames(ranked))
	})

	t.Run("limit", func(t *testing.T) {
		ranked := RankSectors(build(), schema.StressMetric, 2)
		assert.Equal(t, []string{"IT", "Finance"}, sectorNames(ranked))
	})

	t.Run("limit exceeds length", func(t *testing.T) {
		assert.Len(t, RankSectors(build(), schema.AnxietyMetric, 10), 4)
	})
}

func TestHigherIsWorse(t *testing.T) {
	assert.True(t, HigherIsWorse(schema.StressMetric))
	assert.True(t, HigherIsWorse(schema.AnxietyMetric))
	assert.False(t, HigherIsWorse(schema.HappinessMetric))
	assert.False(t, HigherIsWorse(schema.MotivationMetric))
}

func sectorNames(rows []schema.SectorAggregate) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Sector
	}
	return names
}
