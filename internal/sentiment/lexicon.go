// Package sentiment classifies free-text comments and builds recommendations.
package sentiment

import (
	"context"
	"math"
	"strings"

	"github.com/huangsam/workwell/schema"
)

// Method names reported in a judgment.
const (
	MethodEmpty   = "empty"
	MethodKeyword = "keyword"
	MethodHybrid  = "keyword+llm"
)

const (
	labelThreshold = 0.15 // |polarity| above this leaves neutral
	baseConfidence = 0.6
	minTextLength  = 3
)

// positivePhrases are matched as substrings of the lowercased text.
// Multi-word phrases count on top of their single-word parts.
var positivePhrases = []string{
	// pt-BR
	"bem", "bom", "ótimo", "ótima", "excelente", "feliz", "satisfeito", "satisfeita",
	"alegre", "contente", "animado", "animada", "motivado", "motivada",
	"bom dia", "tudo bem", "está bem", "estou bem", "estamos bem",
	"perfeito", "maravilhoso", "gratidão", "grato", "grata", "satisfação",
	"prazer", "entusiasmado", "entusiasmada", "confiante", "tranquilo", "tranquila",
	// en
	"good", "great", "excellent", "happy", "glad", "satisfied", "cheerful",
	"motivated", "excited", "grateful", "thankful", "confident", "calm", "relaxed",
	"wonderful", "productive",
}

var negativePhrases = []string{
	// pt-BR
	"mal", "ruim", "péssimo", "terrível", "triste", "infeliz", "insatisfeito", "insatisfeita",
	"deprimido", "deprimida", "ansioso", "ansiosa", "estressado", "estressada",
	"cansado", "cansada", "desmotivado", "desmotivada", "preocupado", "preocupada",
	"angustiado", "angustiada", "frustrado", "frustrada", "irritado", "irritada",
	"nervoso", "nervosa", "medo", "pânico", "desesperado",
	// en
	"bad", "sad", "unhappy", "terrible", "awful", "depressed", "anxious", "stressed",
	"tired", "exhausted", "burned out", "burnout", "worried", "frustrated",
	"angry", "nervous", "afraid", "panic", "hopeless", "overwhelmed",
}

// Lexicon is the keyword classifier. It needs no network access.
type Lexicon struct {
	positive []string
	negative []string
}

// NewLexicon returns a lexicon loaded with the pt-BR and English phrase lists.
func NewLexicon() *Lexicon {
	return &Lexicon{positive: positivePhrases, negative: negativePhrases}
}

// Classify implements contract.Classifier.
func (l *Lexicon) Classify(_ context.Context, text string) (*schema.SentimentJudgment, error) {
	j := l.Analyze(text)
	return &j, nil
}

// Analyze scores text by counting phrase hits relative to its word count.
func (l *Lexicon) Analyze(text string) schema.SentimentJudgment {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minTextLength {
		return schema.SentimentJudgment{Label: schema.SentimentNeutral, Method: MethodEmpty}
	}

	polarity := l.Polarity(trimmed)
	confidence := math.Min(math.Abs(polarity)*1.2+baseConfidence*0.3, 1)

	return schema.SentimentJudgment{
		Label:      labelFor(polarity),
		Score:      round(polarity, 3),
		Confidence: round(confidence, 2),
		Method:     MethodKeyword,
	}
}

// Polarity returns (positive hits - negative hits) / words * 2, clamped to [-1,1].
func (l *Lexicon) Polarity(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	pos := countHits(lower, l.positive)
	neg := countHits(lower, l.negative)
	return clamp(float64(pos-neg)/float64(words)*2, -1, 1)
}

func countHits(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			n++
		}
	}
	return n
}

func labelFor(polarity float64) schema.SentimentLabel {
	switch {
	case polarity > labelThreshold:
		return schema.SentimentPositive
	case polarity < -labelThreshold:
		return schema.SentimentNegative
	default:
		return schema.SentimentNeutral
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
