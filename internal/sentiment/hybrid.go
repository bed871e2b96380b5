package sentiment

import (
	"context"
	"math"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
)

const (
	llmScoreFloor   = 0.3 // minimum |score| once the LLM label wins
	llmConfidenceUp = 0.2
)

// Hybrid runs the lexicon first and lets a recognized LLM label override it.
type Hybrid struct {
	lexicon *Lexicon
	llm     *LLM // nil means keyword only
}

var _ contract.Classifier = &Hybrid{} // Compile-time check

// NewClassifier builds the classifier for a mode. The llm mode needs an API key.
func NewClassifier(mode schema.ClassifierMode, apiKey, model string) (*Hybrid, error) {
	h := &Hybrid{lexicon: NewLexicon()}
	if mode != schema.LLMClassifier {
		return h, nil
	}
	llm, err := NewLLM(apiKey, model)
	if err != nil {
		return nil, err
	}
	h.llm = llm
	return h, nil
}

// Classify implements contract.Classifier. LLM failures fall back to the lexicon judgment.
func (h *Hybrid) Classify(ctx context.Context, text string) (*schema.SentimentJudgment, error) {
	j := h.lexicon.Analyze(text)
	if h.llm == nil || j.Method == MethodEmpty {
		return &j, nil
	}

	analysis, err := h.llm.Analyze(ctx, text)
	if err != nil {
		contract.LogWarn("LLM sentiment unavailable, using keywords", err)
		return &j, nil
	}
	merged := Merge(j, analysis)
	return &merged, nil
}

// Merge folds an LLM analysis into a lexicon judgment.
// A recognized LLM label wins; positive and negative labels push the score
// past the scorer deadband so the label and the score agree.
func Merge(j schema.SentimentJudgment, a Analysis) schema.SentimentJudgment {
	j.Method = MethodHybrid
	j.Insights = &schema.LLMInsights{
		Emotions:        a.Emotions,
		Intensity:       a.Intensity,
		WarningSigns:    a.WarningSigns,
		ImmediateAdvice: a.ImmediateAdvice,
	}

	label := schema.ParseSentimentLabel(a.PrimarySentiment)
	if label == schema.SentimentUnknown {
		return j
	}

	j.Label = label
	switch label {
	case schema.SentimentPositive:
		j.Score = math.Max(j.Score, llmScoreFloor)
	case schema.SentimentNegative:
		j.Score = math.Min(j.Score, -llmScoreFloor)
	case schema.SentimentNeutral, schema.SentimentUnknown:
		// score stays as the lexicon computed it
	}
	j.Confidence = round(math.Min(j.Confidence+llmConfidenceUp, 1), 2)
	return j
}
