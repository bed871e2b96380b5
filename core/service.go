package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
)

// Errors re-exported from contract so callers only need core.
var (
	ErrNotFound              = contract.ErrNotFound
	ErrClassifierUnavailable = contract.ErrClassifierUnavailable
)

// defaultRating fills anxiety and motivation when a submission omits them.
const defaultRating = 5

// Service wires the scorer to storage, caching, classification and recommendations.
// It holds no mutable state of its own and is safe for concurrent use
// when its collaborators are.
type Service struct {
	store       contract.RecordStore
	cache       contract.CacheStore
	classifier  contract.Classifier
	recommender contract.Recommender
	cacheTTL    time.Duration
	now         func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithCacheTTL sets how long cached aggregates stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

// WithClock overrides the time source used for reporting windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a service. cache, classifier and recommender may be nil.
func NewService(store contract.RecordStore, cache contract.CacheStore, classifier contract.Classifier, recommender contract.Recommender, opts ...Option) *Service {
	s := &Service{
		store:       store,
		cache:       cache,
		classifier:  classifier,
		recommender: recommender,
		cacheTTL:    contract.DefaultCacheTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify runs the configured classifier on text.
func (s *Service) Classify(ctx context.Context, text string) (*schema.SentimentJudgment, error) {
	if s.classifier == nil {
		return nil, ErrClassifierUnavailable
	}
	return s.classifier.Classify(ctx, text)
}

// Assess classifies the optional comment and scores the ratings.
// Classification problems never fail the assessment; the comment is then ignored.
func (s *Service) Assess(ctx context.Context, r schema.Ratings, comment string) (schema.Assessment, *schema.SentimentJudgment, error) {
	if err := ValidateRatings(r); err != nil {
		return schema.Assessment{}, nil, err
	}
	sentiment := s.classifyComment(ctx, comment)
	a, err := Score(r, sentiment)
	return a, sentiment, err
}

// Submit stores a record, attaches its comment sentiment and returns its assessment.
func (s *Service) Submit(ctx context.Context, req schema.SubmitRequest) (schema.SubmitResult, error) {
	if req.EmployeeID <= 0 || req.CompanyID <= 0 || req.SectorID <= 0 {
		return schema.SubmitResult{}, fmt.Errorf("%w: employee, company and sector IDs are required", ErrInvalidInput)
	}

	r := req.Ratings
	if r.Anxiety == 0 {
		r.Anxiety = defaultRating
	}
	if r.Motivation == 0 {
		r.Motivation = defaultRating
	}
	if err := ValidateRatings(r); err != nil {
		return schema.SubmitResult{}, err
	}

	comment := contract.TruncateRunes(strings.TrimSpace(req.Comment), contract.MaxCommentRunes)
	id, err := s.store.InsertRecord(ctx, schema.Record{
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
		SectorID:   req.SectorID,
		Ratings:    r,
		Comment:    comment,
		Anonymous:  req.Anonymous,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return schema.SubmitResult{}, fmt.Errorf("failed to store record: %w", err)
	}

	sentiment := s.classifyComment(ctx, comment)
	if sentiment != nil {
		if err := s.store.UpdateSentiment(ctx, id, sentiment.Label, sentiment.Score); err != nil {
			contract.LogWarn(fmt.Sprintf("Cannot store sentiment for record %d", id), err)
		}
	}

	a, err := Score(r, sentiment)
	if err != nil {
		return schema.SubmitResult{}, err
	}

	s.invalidate(ctx, req.CompanyID)
	return schema.SubmitResult{RecordID: id, Sentiment: sentiment, Assessment: a}, nil
}

// Heatmap returns per-sector averages over the last days, ordered by sector name.
func (s *Service) Heatmap(ctx context.Context, companyID int64, days int, metric schema.Metric) (schema.Heatmap, error) {
	if err := validateWindow(companyID, days); err != nil {
		return schema.Heatmap{}, err
	}
	if metric == "" {
		metric = schema.StressMetric
	}
	if _, ok := schema.ValidMetrics[metric]; !ok {
		return schema.Heatmap{}, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, metric)
	}

	key := heatmapKey(companyID, days)
	rows, err := cached(ctx, s, key, func() ([]schema.SectorAggregate, error) {
		rows, err := s.store.SectorAggregates(ctx, companyID, s.since(days))
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].Index = IndexFromAverages(rows[i].Averages)
			rows[i].Tier = ClassifyTier(rows[i].Index)
			rows[i].Averages = roundAverages(rows[i].Averages)
		}
		return rows, nil
	})
	if err != nil {
		return schema.Heatmap{}, fmt.Errorf("failed to build heatmap: %w", err)
	}
	if rows == nil {
		rows = []schema.SectorAggregate{}
	}

	return schema.Heatmap{CompanyID: companyID, Days: days, Metric: metric, Sectors: rows}, nil
}

// Statistics returns company-wide averages over the last days.
// Index and tier stay empty when there are no records.
func (s *Service) Statistics(ctx context.Context, companyID int64, days int) (schema.Statistics, error) {
	if err := validateWindow(companyID, days); err != nil {
		return schema.Statistics{}, err
	}

	stats, err := cached(ctx, s, statsKey(companyID, days), func() (schema.Statistics, error) {
		st, err := s.store.CompanyStatistics(ctx, companyID, s.since(days))
		if err != nil {
			return schema.Statistics{}, err
		}
		st.CompanyID = companyID
		st.Days = days
		if st.TotalRecords > 0 {
			st.Index = IndexFromAverages(st.Averages)
			st.Tier = ClassifyTier(st.Index)
		}
		st.Averages = roundAverages(st.Averages)
		return st, nil
	})
	if err != nil {
		return schema.Statistics{}, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}

// Sectors lists the sectors of a company.
func (s *Service) Sectors(ctx context.Context, companyID int64) ([]schema.Sector, error) {
	if companyID <= 0 {
		return nil, fmt.Errorf("%w: company ID is required", ErrInvalidInput)
	}
	sectors, err := s.store.ListSectors(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	if sectors == nil {
		sectors = []schema.Sector{}
	}
	return sectors, nil
}

// AddSector creates a named sector for a company.
func (s *Service) AddSector(ctx context.Context, companyID int64, name, description string) (schema.Sector, error) {
	name = strings.TrimSpace(name)
	if companyID <= 0 || name == "" {
		return schema.Sector{}, fmt.Errorf("%w: company ID and sector name are required", ErrInvalidInput)
	}
	sector, err := s.store.AddSector(ctx, companyID, name, strings.TrimSpace(description))
	if err != nil {
		return schema.Sector{}, fmt.Errorf("failed to add sector: %w", err)
	}
	return sector, nil
}

// Recommend assesses the ratings and asks the recommender for personalized actions.
func (s *Service) Recommend(ctx context.Context, r schema.Ratings, comment string) (schema.RecommendResult, error) {
	if s.recommender == nil {
		return schema.RecommendResult{}, fmt.Errorf("%w: no recommender configured", ErrClassifierUnavailable)
	}
	a, sentiment, err := s.Assess(ctx, r, comment)
	if err != nil {
		return schema.RecommendResult{}, err
	}
	rec, err := s.recommender.Recommend(ctx, r, a, sentiment, strings.TrimSpace(comment))
	if err != nil {
		return schema.RecommendResult{}, fmt.Errorf("failed to build recommendation: %w", err)
	}
	return schema.RecommendResult{Assessment: a, Sentiment: sentiment, Recommendation: rec}, nil
}

// classifyComment returns nil for blank comments or when classification fails.
func (s *Service) classifyComment(ctx context.Context, comment string) *schema.SentimentJudgment {
	comment = strings.TrimSpace(comment)
	if comment == "" || s.classifier == nil {
		return nil
	}
	j, err := s.classifier.Classify(ctx, comment)
	if err != nil {
		contract.LogWarn("Cannot classify comment", err)
		return nil
	}
	return j
}

func (s *Service) since(days int) time.Time {
	return s.now().UTC().AddDate(0, 0, -days)
}

func validateWindow(companyID int64, days int) error {
	if companyID <= 0 {
		return fmt.Errorf("%w: company ID is required", ErrInvalidInput)
	}
	if days < 1 || days > contract.MaxDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, contract.MaxDays)
	}
	return nil
}

func roundAverages(a schema.MetricAverages) schema.MetricAverages {
	return schema.MetricAverages{
		Stress:     roundTenth(a.Stress),
		Happiness:  roundTenth(a.Happiness),
		Anxiety:    roundTenth(a.Anxiety),
		Motivation: roundTenth(a.Motivation),
	}
}
