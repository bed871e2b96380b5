package sentiment

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMessager implements AnthropicMessager for testing.
type mockMessager struct {
	response *anthropic.Message
	err      error
	calls    int
	last     anthropic.MessageNewParams
}

func (m *mockMessager) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	m.calls++
	m.last = params
	return m.response, m.err
}

func newMockMessage(text string) *anthropic.Message {
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
	}
}

func withMockClient(t *testing.T, mock *mockMessager) {
	t.Helper()
	old := newAnthropicClient
	newAnthropicClient = func(_ string) AnthropicMessager { return mock }
	t.Cleanup(func() { newAnthropicClient = old })
}

func TestNewLLMRequiresKey(t *testing.T) {
	_, err := NewLLM("  ", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrClassifierUnavailable)
}

func TestLLMAnalyze(t *testing.T) {
	mock := &mockMessager{response: newMockMessage("```json\n" + `{
		"primary_sentiment": "negative",
		"emotions": ["exhaustion", "frustration"],
		"intensity": "high",
		"warning_signs": ["sleep loss"],
		"immediate_advice": "Talk to your manager about your workload."
	}` + "\n```")}
	withMockClient(t, mock)

	llm, err := NewLLM("test-key", "")
	require.NoError(t, err)

	got, err := llm.Analyze(context.Background(), "I cannot sleep because of work")
	require.NoError(t, err)
	assert.Equal(t, "negative", got.PrimarySentiment)
	assert.Equal(t, []string{"exhaustion", "frustration"}, got.Emotions)
	assert.Equal(t, "high", got.Intensity)
	assert.Equal(t, []string{"sleep loss"}, got.WarningSigns)
	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, DefaultModel, mock.last.Model)
}

func TestLLMAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		mock *mockMessager
	}{
		{"api error", &mockMessager{err: errors.New("rate limited")}},
		{"empty response", &mockMessager{response: &anthropic.Message{}}},
		{"invalid json", &mockMessager{response: newMockMessage("I think they feel fine")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withMockClient(t, tt.mock)
			llm, err := NewLLM("test-key", "claude-test")
			require.NoError(t, err)
			_, err = llm.Analyze(context.Background(), "some comment")
			assert.Error(t, err)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`  {"a":1}  `))
}

func TestMerge(t *testing.T) {
	base := schema.SentimentJudgment{Label: schema.SentimentNeutral, Score: 0.1, Confidence: 0.3, Method: MethodKeyword}

	tests := []struct {
		name       string
		judgment   schema.SentimentJudgment
		primary    string
		label      schema.SentimentLabel
		score      float64
		confidence float64
	}{
		{"positive lifts score to floor", base, "positivo", schema.SentimentPositive, 0.3, 0.5},
		{"positive keeps higher score", schema.SentimentJudgment{Label: schema.SentimentPositive, Score: 0.8, Confidence: 0.9}, "positive", schema.SentimentPositive, 0.8, 1.0},
		{"negative overrides positive lexicon", schema.SentimentJudgment{Label: schema.SentimentPositive, Score: 0.4, Confidence: 0.66}, "negative", schema.SentimentNegative, -0.3, 0.86},
		{"neutral keeps score", base, "neutral", schema.SentimentNeutral, 0.1, 0.5},
		{"unrecognized label leaves judgment", base, "mixed", schema.SentimentNeutral, 0.1, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.judgment, Analysis{PrimarySentiment: tt.primary, Intensity: "low"})
			assert.Equal(t, tt.label, got.Label)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.Equal(t, MethodHybrid, got.Method)
			require.NotNil(t, got.Insights)
			assert.Equal(t, "low", got.Insights.Intensity)
		})
	}
}

func TestHybridClassify(t *testing.T) {
	t.Run("keyword mode never calls the LLM", func(t *testing.T) {
		mock := &mockMessager{err: errors.New("should not be called")}
		withMockClient(t, mock)

		h, err := NewClassifier(schema.KeywordClassifier, "test-key", "")
		require.NoError(t, err)
		got, err := h.Classify(context.Background(), "Estou bem")
		require.NoError(t, err)
		assert.Equal(t, MethodKeyword, got.Method)
		assert.Zero(t, mock.calls)
	})

	t.Run("llm mode without key fails", func(t *testing.T) {
		_, err := NewClassifier(schema.LLMClassifier, "", "")
		assert.ErrorIs(t, err, contract.ErrClassifierUnavailable)
	})

	t.Run("llm label wins", func(t *testing.T) {
		withMockClient(t, &mockMessager{response: newMockMessage(`{"primary_sentiment":"positive","emotions":["relief"],"intensity":"medium","warning_signs":[],"immediate_advice":"Keep it up."}`)})

		h, err := NewClassifier(schema.LLMClassifier, "test-key", "")
		require.NoError(t, err)
		got, err := h.Classify(context.Background(), "Reunião às dez horas")
		require.NoError(t, err)
		assert.Equal(t, schema.SentimentPositive, got.Label)
		assert.InDelta(t, 0.3, got.Score, 1e-9)
		assert.InDelta(t, 0.38, got.Confidence, 1e-9)
		assert.Equal(t, MethodHybrid, got.Method)
	})

	t.Run("llm failure falls back to keywords", func(t *testing.T) {
		withMockClient(t, &mockMessager{err: errors.New("timeout")})

		h, err := NewClassifier(schema.LLMClassifier, "test-key", "")
		require.NoError(t, err)
		got, err := h.Classify(context.Background(), "Estou muito cansado e estressado")
		require.NoError(t, err)
		assert.Equal(t, schema.SentimentNegative, got.Label)
		assert.Equal(t, MethodKeyword, got.Method)
		assert.Nil(t, got.Insights)
	})

	t.Run("empty text skips the LLM", func(t *testing.T) {
		mock := &mockMessager{err: errors.New("should not be called")}
		withMockClient(t, mock)

		h, err := NewClassifier(schema.LLMClassifier, "test-key", "")
		require.NoError(t, err)
		got, err := h.Classify(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, MethodEmpty, got.Method)
		assert.Zero(t, mock.calls)
	})
}
