package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/huangsam/workwell/internal/iocache"
	"github.com/huangsam/workwell/internal/sentiment"
	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores, classifies and invalidates", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		cache := &iocache.MockCacheStore{}
		store.On("InsertRecord", mock.Anything, mock.MatchedBy(func(rec schema.Record) bool {
			return rec.EmployeeID == 1 && rec.CompanyID == 3 && rec.SectorID == 2 &&
				rec.Ratings == schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5} &&
				rec.Comment == "Estou bem" && rec.CreatedAt.Equal(fixedNow)
		})).Return(int64(11), nil)
		store.On("UpdateSentiment", mock.Anything, int64(11), schema.SentimentPositive, 1.0).Return(nil)
		cache.On("Delete", mock.Anything, "heatmap:3:").Return(nil)
		cache.On("Delete", mock.Anything, "stats:3:").Return(nil)

		svc := NewService(store, cache, sentiment.NewLexicon(), nil, WithClock(fixedClock))
		res, err := svc.Submit(ctx, schema.SubmitRequest{
			EmployeeID: 1,
			CompanyID:  3,
			SectorID:   2,
			Ratings:    schema.Ratings{Stress: 5, Happiness: 5},
			Comment:    "  Estou bem  ",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(11), res.RecordID)
		require.NotNil(t, res.Sentiment)
		assert.Equal(t, schema.SentimentPositive, res.Sentiment.Label)
		assert.Equal(t, 65.0, res.Assessment.Index)
		assert.Equal(t, schema.GoodTier, res.Assessment.Tier)
		assert.Empty(t, res.Assessment.Problems)
		store.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("long comments are truncated", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		classifier := &sentiment.MockClassifier{}
		store.On("InsertRecord", mock.Anything, mock.MatchedBy(func(rec schema.Record) bool {
			return utf8.RuneCountInString(rec.Comment) == 1000
		})).Return(int64(1), nil)
		classifier.On("Classify", mock.Anything, mock.Anything).Return(nil, errors.New("offline"))

		svc := NewService(store, nil, classifier, nil)
		res, err := svc.Submit(ctx, schema.SubmitRequest{
			EmployeeID: 1, CompanyID: 1, SectorID: 1,
			Ratings: schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5},
			Comment: strings.Repeat("ã", 1200),
		})
		require.NoError(t, err)
		assert.Nil(t, res.Sentiment)
		store.AssertNotCalled(t, "UpdateSentiment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sentiment update failure is not fatal", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		store.On("InsertRecord", mock.Anything, mock.Anything).Return(int64(5), nil)
		store.On("UpdateSentiment", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(ErrNotFound)

		svc := NewService(store, nil, sentiment.NewLexicon(), nil)
		res, err := svc.Submit(ctx, schema.SubmitRequest{
			EmployeeID: 1, CompanyID: 1, SectorID: 1,
			Ratings: schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5},
			Comment: "Estou bem",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.RecordID)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		store.On("InsertRecord", mock.Anything, mock.Anything).Return(int64(0), ErrNotFound)

		svc := NewService(store, nil, nil, nil)
		_, err := svc.Submit(ctx, schema.SubmitRequest{
			EmployeeID: 1, CompanyID: 1, SectorID: 99,
			Ratings: schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5},
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	invalid := []struct {
		name string
		req  schema.SubmitRequest
	}{
		{"missing employee", schema.SubmitRequest{CompanyID: 1, SectorID: 1, Ratings: schema.Ratings{Stress: 5, Happiness: 5}}},
		{"missing sector", schema.SubmitRequest{EmployeeID: 1, CompanyID: 1, Ratings: schema.Ratings{Stress: 5, Happiness: 5}}},
		{"stress out of range", schema.SubmitRequest{EmployeeID: 1, CompanyID: 1, SectorID: 1, Ratings: schema.Ratings{Stress: 11, Happiness: 5}}},
		{"missing happiness", schema.SubmitRequest{EmployeeID: 1, CompanyID: 1, SectorID: 1, Ratings: schema.Ratings{Stress: 5}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockRecordStore{}
			svc := NewService(store, nil, nil, nil)
			_, err := svc.Submit(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			store.AssertNotCalled(t, "InsertRecord", mock.Anything, mock.Anything)
		})
	}
}

func TestServiceAssess(t *testing.T) {
	ctx := context.Background()
	classifier := &sentiment.MockClassifier{}
	classifier.On("Classify", mock.Anything, "bad week").Return(&schema.SentimentJudgment{Label: schema.SentimentNegative, Score: -0.5}, nil)
	classifier.On("Classify", mock.Anything, "broken").Return(nil, errors.New("boom"))

	svc := NewService(nil, nil, classifier, nil)
	r := schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5}

	a, s, err := svc.Assess(ctx, r, " bad week ")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 40.0, a.Index)

	a, s, err = svc.Assess(ctx, r, "broken")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, 50.0, a.Index)

	a, s, err = svc.Assess(ctx, r, "")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, 50.0, a.Index)
	classifier.AssertNumberOfCalls(t, "Classify", 2)

	_, _, err = svc.Assess(ctx, schema.Ratings{Stress: 5, Happiness: 5, Anxiety: 0, Motivation: 5}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceClassifyWithoutClassifier(t *testing.T) {
	_, err := NewService(nil, nil, nil, nil).Classify(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}

func TestServiceHeatmap(t *testing.T) {
	ctx := context.Background()
	since := fixedNow.AddDate(0, 0, -30)

	t.Run("computes, rounds and caches", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		cache := &iocache.MockCacheStore{}
		store.On("SectorAggregates", mock.Anything, int64(3), since).Return([]schema.SectorAggregate{
			{Sector: "IT", TotalRecords: 4, Averages: schema.MetricAverages{Stress: 6.25, Happiness: 4.25, Anxiety: 5, Motivation: 5.75}},
		}, nil)
		cache.On("Get", mock.Anything, "heatmap:3:30").Return(nil, false, nil)
		cache.On("Set", mock.Anything, "heatmap:3:30", mock.Anything, 5*time.Minute).Return(nil)

		svc := NewService(store, cache, nil, nil, WithClock(fixedClock), WithCacheTTL(5*time.Minute))
		h, err := svc.Heatmap(ctx, 3, 30, "")
		require.NoError(t, err)

		assert.Equal(t, schema.StressMetric, h.Metric)
		require.Len(t, h.Sectors, 1)
		row := h.Sectors[0]
		assert.Equal(t, 46.9, row.Index)
		assert.Equal(t, schema.ConcerningTier, row.Tier)
		assert.Equal(t, schema.MetricAverages{Stress: 6.3, Happiness: 4.3, Anxiety: 5, Motivation: 5.8}, row.Averages)
		store.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		cache := &iocache.MockCacheStore{}
		cachedRows := []schema.SectorAggregate{{Sector: "Sales", TotalRecords: 2, Index: 70, Tier: schema.GoodTier}}
		data, err := json.Marshal(cachedRows)
		require.NoError(t, err)
		cache.On("Get", mock.Anything, "heatmap:3:7").Return(data, true, nil)

		svc := NewService(store, cache, nil, nil)
		h, err := svc.Heatmap(ctx, 3, 7, schema.AnxietyMetric)
		require.NoError(t, err)
		assert.Equal(t, cachedRows, h.Sectors)
		assert.Equal(t, schema.AnxietyMetric, h.Metric)
		store.AssertNotCalled(t, "SectorAggregates", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no records yields an empty list", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		store.On("SectorAggregates", mock.Anything, int64(3), mock.Anything).Return(nil, nil)

		h, err := NewService(store, nil, nil, nil).Heatmap(ctx, 3, 30, schema.StressMetric)
		require.NoError(t, err)
		assert.NotNil(t, h.Sectors)
		assert.Empty(t, h.Sectors)
	})

	t.Run("store errors are wrapped", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		store.On("SectorAggregates", mock.Anything, int64(3), mock.Anything).Return(nil, errors.New("db down"))

		_, err := NewService(store, nil, nil, nil).Heatmap(ctx, 3, 30, schema.StressMetric)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})

	invalid := []struct {
		name    string
		company int64
		days    int
		metric  schema.Metric
	}{
		{"zero days", 3, 0, schema.StressMetric},
		{"too many days", 3, 5000, schema.StressMetric},
		{"no company", 0, 30, schema.StressMetric},
		{"unknown metric", 3, 30, "joy"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(&iocache.MockRecordStore{}, nil, nil, nil).Heatmap(ctx, tt.company, tt.days, tt.metric)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestServiceStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("with records", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		store.On("CompanyStatistics", mock.Anything, int64(3), fixedNow.AddDate(0, 0, -30)).Return(schema.Statistics{
			TotalRecords:   3,
			TotalEmployees: 2,
			Averages:       schema.MetricAverages{Stress: 5, Happiness: 5, Anxiety: 5, Motivation: 5},
		}, nil)

		st, err := NewService(store, nil, nil, nil, WithClock(fixedClock)).Statistics(ctx, 3, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(3), st.CompanyID)
		assert.Equal(t, 30, st.Days)
		assert.Equal(t, 50.0, st.Index)
		assert.Equal(t, schema.ModerateTier, st.Tier)
	})

	t.Run("without records", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		store.On("CompanyStatistics", mock.Anything, int64(3), mock.Anything).Return(schema.Statistics{}, nil)

		st, err := NewService(store, nil, nil, nil).Statistics(ctx, 3, 30)
		require.NoError(t, err)
		assert.Zero(t, st.TotalRecords)
		assert.Zero(t, st.Index)
		assert.Empty(t, st.Tier)
	})

	t.Run("cache write failure still returns", func(t *testing.T) {
		store := &iocache.MockRecordStore{}
		cache := &iocache.MockCacheStore{}
		store.On("CompanyStatistics", mock.Anything, int64(3), mock.Anything).Return(schema.Statistics{TotalRecords: 1, Averages: schema.MetricAverages{Stress: 1, Happiness: 10, Anxiety: 1, Motivation: 10}}, nil)
		cache.On("Get", mock.Anything, "stats:3:30").Return(nil, false, errors.New("timeout"))
		cache.On("Set", mock.Anything, "stats:3:30", mock.Anything, mock.Anything).Return(errors.New("timeout"))

		st, err := NewService(store, cache, nil, nil).Statistics(ctx, 3, 30)
		require.NoError(t, err)
		assert.Equal(t, schema.ExcellentTier, st.Tier)
	})
}

func TestServiceSectors(t *testing.T) {
	ctx := context.Background()
	store := &iocache.MockRecordStore{}
	store.On("ListSectors", mock.Anything, int64(3)).Return(nil, nil)
	store.On("AddSector", mock.Anything, int64(3), "IT", "Infra").Return(schema.Sector{ID: 1, CompanyID: 3, Name: "IT", Description: "Infra"}, nil)
	svc := NewService(store, nil, nil, nil)

	sectors, err := svc.Sectors(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, sectors)
	assert.Empty(t, sectors)

	sector, err := svc.AddSector(ctx, 3, "  IT ", " Infra ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sector.ID)

	_, err = svc.AddSector(ctx, 3, "   ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Sectors(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceRecommend(t *testing.T) {
	ctx := context.Background()
	r := schema.Ratings{Stress: 9, Happiness: 2, Anxiety: 9, Motivation: 2}

	_, err := NewService(nil, nil, nil, nil).Recommend(ctx, r, "")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)

	want := schema.Recommendation{Priority: schema.HighPriority, Message: "Take care", Source: sentiment.SourceRules}
	recommender := &sentiment.MockRecommender{}
	recommender.On("Recommend", mock.Anything, r, mock.MatchedBy(func(a schema.Assessment) bool {
		return a.Tier == schema.CriticalTier
	}), (*schema.SentimentJudgment)(nil), "").Return(want, nil)

	res, err := NewService(nil, nil, nil, recommender).Recommend(ctx, r, "")
	require.NoError(t, err)
	assert.Equal(t, want, res.Recommendation)
	assert.Equal(t, schema.CriticalTier, res.Assessment.Tier)
	recommender.AssertExpectations(t)
}
