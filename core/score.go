package core

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/workwell/schema"
)

// ErrInvalidInput is returned when a rating is missing or outside [1,10].
var ErrInvalidInput = errors.New("invalid input")

// Rating bounds and scoring constants.
const (
	MinRating = 1
	MaxRating = 10

	pointsPerUnit     = 2.5 // each rating spans 0..25 points
	sentimentDeadband = 0.2 // |score| must exceed this to adjust
	sentimentGain     = 20.0
	maxAdjustment     = 15.0

	clearAllIndex     = 70.0
	severeOnlyIndex   = 55.0
	positiveNoiseMin  = 40.0
	positiveNoiseSize = 1
)

// Problem phrases, in detection order.
const (
	SevereStress       = "high stress (severe)"
	ModerateStress     = "moderate stress"
	SevereHappiness    = "very low happiness"
	ModerateHappiness  = "low happiness"
	SevereAnxiety      = "high anxiety (severe)"
	ModerateAnxiety    = "moderate anxiety"
	SevereMotivation   = "very low motivation"
	ModerateMotivation = "low motivation"
)

var tierAdvice = map[schema.Tier]string{
	schema.CriticalTier:   "Immediate attention needed! Consider talking to HR or a psychologist.",
	schema.ConcerningTier: "Situation deserves attention. Seek support and consider regular breaks.",
	schema.ModerateTier:   "Balanced emotional state, but there is room to improve. Practice self-care.",
	schema.GoodTier:       "You are doing well! Keep taking care of your mental health.",
	schema.ExcellentTier:  "Excellent! You are in a great emotional state.",
}

// problem is a detected flag plus whether it crossed the severe threshold.
type problem struct {
	text   string
	severe bool
}

// Score computes the wellbeing assessment for a rating set and an optional sentiment judgment.
// A nil sentiment behaves like a neutral judgment with zero score.
func Score(r schema.Ratings, sentiment *schema.SentimentJudgment) (schema.Assessment, error) {
	if err := ValidateRatings(r); err != nil {
		return schema.Assessment{}, err
	}

	index := adjustIndex(BaseIndex(r), sentiment)
	tier := ClassifyTier(index)

	problems := suppressProblems(detectProblems(r), index, sentiment)
	texts := make([]string, 0, len(problems))
	for _, p := range problems {
		texts = append(texts, p.text)
	}

	return schema.Assessment{
		Index:    roundTenth(index),
		Tier:     tier,
		Color:    tier.Color(),
		Problems: texts,
		Advice:   Advice(tier, texts),
	}, nil
}

// ValidateRatings returns ErrInvalidInput when any rating is missing or out of range.
func ValidateRatings(r schema.Ratings) error {
	for _, m := range schema.AllMetrics {
		v := r.Value(m)
		if v < MinRating || v > MaxRating {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidInput, m, MinRating, MaxRating, v)
		}
	}
	return nil
}

// BaseIndex maps the ratings onto 0..100 without any sentiment adjustment.
// Each term is already scaled to 0..25, so the terms are summed, not averaged.
func BaseIndex(r schema.Ratings) float64 {
	return float64(MaxRating-r.Stress)*pointsPerUnit +
		float64(r.Happiness)*pointsPerUnit +
		float64(MaxRating-r.Anxiety)*pointsPerUnit +
		float64(r.Motivation)*pointsPerUnit
}

// IndexFromAverages applies the base index formula to averaged ratings.
func IndexFromAverages(a schema.MetricAverages) float64 {
	index := (MaxRating-a.Stress)*pointsPerUnit +
		a.Happiness*pointsPerUnit +
		(MaxRating-a.Anxiety)*pointsPerUnit +
		a.Motivation*pointsPerUnit
	return roundTenth(clamp(index, 0, 100))
}

// adjustIndex applies the bounded sentiment correction.
func adjustIndex(base float64, s *schema.SentimentJudgment) float64 {
	if s == nil {
		return base
	}
	switch s.Label {
	case schema.SentimentPositive:
		if s.Score > sentimentDeadband {
			return math.Min(base+math.Min(s.Score*sentimentGain, maxAdjustment), 100)
		}
	case schema.SentimentNegative:
		if s.Score < -sentimentDeadband {
			return math.Max(base-math.Min(math.Abs(s.Score)*sentimentGain, maxAdjustment), 0)
		}
	case schema.SentimentNeutral, schema.SentimentUnknown:
		// no adjustment
	}
	return base
}

// ClassifyTier returns the tier for an index. Lower bounds are inclusive.
func ClassifyTier(index float64) schema.Tier {
	switch {
	case index >= 80:
		return schema.ExcellentTier
	case index >= 65:
		return schema.GoodTier
	case index >= 50:
		return schema.ModerateTier
	case index >= 35:
		return schema.ConcerningTier
	default:
		return schema.CriticalTier
	}
}

// detectProblems flags each rating at most once, severe phrase first.
func detectProblems(r schema.Ratings) []problem {
	var out []problem
	switch {
	case r.Stress >= 8:
		out = append(out, problem{SevereStress, true})
	case r.Stress >= 6:
		out = append(out, problem{ModerateStress, false})
	}
	switch {
	case r.Happiness <= 2:
		out = append(out, problem{SevereHappiness, true})
	case r.Happiness <= 4:
		out = append(out, problem{ModerateHappiness, false})
	}
	switch {
	case r.Anxiety >= 8:
		out = append(out, problem{SevereAnxiety, true})
	case r.Anxiety >= 6:
		out = append(out, problem{ModerateAnxiety, false})
	}
	switch {
	case r.Motivation <= 2:
		out = append(out, problem{SevereMotivation, true})
	case r.Motivation <= 4:
		out = append(out, problem{ModerateMotivation, false})
	}
	return out
}

// suppressProblems applies the suppression chain once, in order, against the final index.
func suppressProblems(problems []problem, index float64, s *schema.SentimentJudgment) []problem {
	switch {
	case index >= clearAllIndex:
		return nil
	case index >= severeOnlyIndex:
		var severe []problem
		for _, p := range problems {
			if p.severe {
				severe = append(severe, p)
			}
		}
		return severe
	case s != nil && s.Label == schema.SentimentPositive:
		if len(problems) <= positiveNoiseSize && index >= positiveNoiseMin {
			return nil
		}
	}
	return problems
}

// Advice returns the canned sentence for a tier plus any remaining problems.
func Advice(tier schema.Tier, problems []string) string {
	advice := tierAdvice[tier]
	if len(problems) > 0 {
		advice += " Points of attention: " + strings.Join(problems, ", ") + "."
	}
	return advice
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
