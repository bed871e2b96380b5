package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/internal/iocache"
	"github.com/huangsam/workwell/internal/sentiment"
	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: filepath.Join(t.TempDir(), "out.json"),
		Precision:  1,
		CompanyID:  3,
		Days:       30,
		Metric:     schema.HappinessMetric,
	}
}

func decodeOutput(t *testing.T, cfg *contract.Config, dest any) {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dest))
}

// TestExecuteHeatmap checks that sorting by metric puts the unhappiest sector first.
func TestExecuteHeatmap(t *testing.T) {
	store := &iocache.MockRecordStore{}
	store.On("SectorAggregates", mock.Anything, int64(3), mock.Anything).Return([]schema.SectorAggregate{
		{Sector: "Finance", TotalRecords: 2, Averages: schema.MetricAverages{Stress: 5, Happiness: 6, Anxiety: 5, Motivation: 5}},
		{Sector: "IT", TotalRecords: 3, Averages: schema.MetricAverages{Stress: 5, Happiness: 3, Anxiety: 5, Motivation: 5}},
	}, nil)
	svc := NewService(store, nil, nil, nil)

	cfg := jsonConfig(t)
	require.NoError(t, ExecuteHeatmap(context.Background(), cfg, svc))
	var unsorted schema.Heatmap
	decodeOutput(t, cfg, &unsorted)
	assert.Equal(t, []string{"Finance", "IT"}, sectorNames(unsorted.Sectors))

	cfg = jsonConfig(t)
	cfg.SortByMetric = true
	require.NoError(t, ExecuteHeatmap(context.Background(), cfg, svc))
	var sorted schema.Heatmap
	decodeOutput(t, cfg, &sorted)
	assert.Equal(t, []string{"IT", "Finance"}, sectorNames(sorted.Sectors))
	assert.Equal(t, schema.HappinessMetric, sorted.Metric)
}

func TestExecuteScore(t *testing.T) {
	svc := NewService(nil, nil, sentiment.NewLexicon(), nil)
	cfg := jsonConfig(t)

	err := ExecuteScore(context.Background(), cfg, svc, schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5}, "Estou muito cansado e estressado")
	require.NoError(t, err)

	var got struct {
		Index     float64                   `json:"index"`
		Sentiment *schema.SentimentJudgment `json:"sentiment"`
	}
	decodeOutput(t, cfg, &got)
	assert.Equal(t, 35.0, got.Index)
	require.NotNil(t, got.Sentiment)
	assert.Equal(t, schema.SentimentNegative, got.Sentiment.Label)

	err = ExecuteScore(context.Background(), cfg, svc, schema.Ratings{Stress: 0, Happiness: 5, Anxiety: 5, Motivation: 5}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteSectorsAndAdd(t *testing.T) {
	store := &iocache.MockRecordStore{}
	store.On("AddSector", mock.Anything, int64(3), "Legal", "").Return(schema.Sector{ID: 4, CompanyID: 3, Name: "Legal"}, nil)
	store.On("ListSectors", mock.Anything, int64(3)).Return([]schema.Sector{{ID: 4, CompanyID: 3, Name: "Legal"}}, nil)
	svc := NewService(store, nil, nil, nil)

	cfg := jsonConfig(t)
	require.NoError(t, ExecuteAddSector(context.Background(), cfg, svc, "Legal", ""))
	var added []schema.Sector
	decodeOutput(t, cfg, &added)
	require.Len(t, added, 1)
	assert.Equal(t, int64(4), added[0].ID)

	cfg = jsonConfig(t)
	require.NoError(t, ExecuteSectors(context.Background(), cfg, svc))
	var listed []schema.Sector
	decodeOutput(t, cfg, &listed)
	assert.Len(t, listed, 1)
}

func TestExecuteSentimentWithoutClassifier(t *testing.T) {
	err := ExecuteSentiment(context.Background(), jsonConfig(t), NewService(nil, nil, nil, nil), "hello")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}
