package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
)

// Recommendation sources.
const (
	SourceLLM   = "llm"
	SourceRules = "rules"
)

const recommendSystemPrompt = `You are a corporate wellbeing coach specialized in mental health at work.
You MUST respond with valid JSON only, with no markdown and no explanation outside the JSON.`

const recommendUserPrompt = `An employee reported:
- Stress: %d/10
- Happiness: %d/10
- Anxiety: %d/10
- Motivation: %d/10
- Wellbeing index: %.1f/100 (%s)
%s
Overall context: %s.

If the context is positive, the recommendations should encourage and maintain, not alarm.
If the context is negative, prioritize support and improvement actions.

Return practical recommendations as JSON with these exact fields:
{
  "priority": "<one of: high, medium, low>",
  "immediate_actions": ["<action>", "<action>", "<action>"],
  "suggested_habits": ["<habit>", "<habit>"],
  "resources": ["<resource>", "<resource>"],
  "message": "<short encouraging message>"
}`

// llmRecommendation mirrors the JSON structure the model is asked to return.
type llmRecommendation struct {
	Priority         string   `json:"priority"`
	ImmediateActions []string `json:"immediate_actions"`
	SuggestedHabits  []string `json:"suggested_habits"`
	Resources        []string `json:"resources"`
	Message          string   `json:"message"`
}

// Recommender builds recommendations with the LLM when configured, else from rules.
type Recommender struct {
	llm *LLM
}

var _ contract.Recommender = &Recommender{} // Compile-time check

// NewRecommender returns a recommender. An empty apiKey yields a rules-only recommender.
func NewRecommender(apiKey, model string) *Recommender {
	llm, err := NewLLM(apiKey, model)
	if err != nil {
		return &Recommender{}
	}
	return &Recommender{llm: llm}
}

// Recommend implements contract.Recommender.
func (r *Recommender) Recommend(ctx context.Context, ratings schema.Ratings, a schema.Assessment, s *schema.SentimentJudgment, comment string) (schema.Recommendation, error) {
	if r.llm == nil {
		return RuleRecommendation(ratings, a), nil
	}

	commentLine := ""
	if comment != "" {
		commentLine = fmt.Sprintf("- Comment: %q\n", comment)
	}
	prompt := fmt.Sprintf(recommendUserPrompt,
		ratings.Stress, ratings.Happiness, ratings.Anxiety, ratings.Motivation,
		a.Index, a.Tier, commentLine, OverallContext(ratings, s))

	var out llmRecommendation
	if err := r.llm.completeJSON(ctx, recommendSystemPrompt, prompt, 600, &out); err != nil {
		contract.LogWarn("LLM recommendation unavailable, using rules", err)
		return RuleRecommendation(ratings, a), nil
	}

	return schema.Recommendation{
		Priority:         schema.ParsePriority(out.Priority),
		ImmediateActions: nonNil(out.ImmediateActions),
		SuggestedHabits:  nonNil(out.SuggestedHabits),
		Resources:        nonNil(out.Resources),
		Message:          strings.TrimSpace(out.Message),
		Source:           SourceLLM,
	}, nil
}

// OverallContext summarizes ratings and comment sentiment as positive, negative or neutral.
// A positive or negative comment outweighs the ratings.
func OverallContext(r schema.Ratings, s *schema.SentimentJudgment) schema.SentimentLabel {
	if s != nil {
		switch s.Label {
		case schema.SentimentPositive, schema.SentimentNegative:
			return s.Label
		case schema.SentimentNeutral, schema.SentimentUnknown:
		}
	}
	switch {
	case r.Happiness >= 6 && r.Stress <= 5 && r.Motivation >= 6:
		return schema.SentimentPositive
	case r.Stress >= 7 || r.Happiness <= 3:
		return schema.SentimentNegative
	default:
		return schema.SentimentNeutral
	}
}

var tierMessages = map[schema.Tier]string{
	schema.ExcellentTier:  "You are in a great place. Keep doing what works and share it with your team.",
	schema.GoodTier:       "You are doing well. Small routines will help you keep this balance.",
	schema.ModerateTier:   "You are holding steady. A few small changes can make the coming weeks lighter.",
	schema.ConcerningTier: "It is okay not to be okay. You do not have to handle this alone.",
	schema.CriticalTier:   "Your wellbeing comes first. Please reach out for support today.",
}

// RuleRecommendation builds a deterministic recommendation from the ratings and assessment.
func RuleRecommendation(r schema.Ratings, a schema.Assessment) schema.Recommendation {
	rec := schema.Recommendation{
		Priority: priorityFor(a.Tier),
		Message:  tierMessages[a.Tier],
		Source:   SourceRules,
	}

	if a.Tier == schema.CriticalTier {
		rec.ImmediateActions = append(rec.ImmediateActions, "Talk to HR or a mental health professional this week.")
	}
	if r.Stress >= 6 {
		rec.ImmediateActions = append(rec.ImmediateActions, "Step away from the screen and breathe slowly for five minutes.")
	}
	if r.Happiness <= 4 {
		rec.ImmediateActions = append(rec.ImmediateActions, "Have a short conversation with a colleague you trust.")
	}
	if r.Anxiety >= 6 {
		rec.ImmediateActions = append(rec.ImmediateActions, "Write down what worries you and mark what is within your control.")
	}
	if r.Motivation <= 4 {
		rec.ImmediateActions = append(rec.ImmediateActions, "Pick one small task you can finish today and close it.")
	}
	if len(rec.ImmediateActions) == 0 {
		rec.ImmediateActions = []string{"Keep the routines that are working for you."}
	}

	if rec.Priority == schema.LowPriority {
		rec.SuggestedHabits = []string{"Keep regular sleep hours", "Celebrate small wins with the team"}
	} else {
		rec.SuggestedHabits = []string{"Take a break every 90 minutes", "Move for 20 minutes a day", "Mute work messages after hours"}
	}

	rec.Resources = []string{"Employee assistance program", "HR wellbeing team"}
	if rec.Priority == schema.HighPriority {
		rec.Resources = append(rec.Resources, "Professional psychological support")
	}
	return rec
}

func priorityFor(t schema.Tier) schema.Priority {
	switch t {
	case schema.CriticalTier, schema.ConcerningTier:
		return schema.HighPriority
	case schema.ModerateTier:
		return schema.MediumPriority
	default:
		return schema.LowPriority
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
