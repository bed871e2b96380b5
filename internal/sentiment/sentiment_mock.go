package sentiment

import (
	"context"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/mock"
)

// MockClassifier is a mock implementation of Classifier for testing.
type MockClassifier struct {
	mock.Mock
}

var _ contract.Classifier = &MockClassifier{} // Compile-time check

// Classify implements the Classifier interface.
func (m *MockClassifier) Classify(ctx context.Context, text string) (*schema.SentimentJudgment, error) {
	args := m.Called(ctx, text)
	j, _ := args.Get(0).(*schema.SentimentJudgment)
	return j, args.Error(1)
}

// MockRecommender is a mock implementation of Recommender for testing.
type MockRecommender struct {
	mock.Mock
}

var _ contract.Recommender = &MockRecommender{} // Compile-time check

// Recommend implements the Recommender interface.
func (m *MockRecommender) Recommend(ctx context.Context, r schema.Ratings, a schema.Assessment, s *schema.SentimentJudgment, comment string) (schema.Recommendation, error) {
	args := m.Called(ctx, r, a, s, comment)
	return args.Get(0).(schema.Recommendation), args.Error(1)
}
