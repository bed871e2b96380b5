package schema

import "strings"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for record storage or caching.
	DatabaseBackend string

	// Tier is the classification band of a wellbeing index.
	Tier string

	// SentimentLabel is the polarity label of a sentiment judgment.
	SentimentLabel string

	// Metric names one of the four self-reported ratings.
	Metric string

	// ClassifierMode selects how free-text comments are classified.
	ClassifierMode string

	// Priority is the urgency attached to a recommendation.
	Priority string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis" // cache only
	NoneBackend       DatabaseBackend = "none"
)

// Wellbeing tiers, from best to worst.
const (
	ExcellentTier  Tier = "excellent"
	GoodTier       Tier = "good"
	ModerateTier   Tier = "moderate"
	ConcerningTier Tier = "concerning"
	CriticalTier   Tier = "critical"
)

// Sentiment labels. SentimentUnknown is the fallback for labels outside the closed set.
const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentUnknown  SentimentLabel = "unknown"
)

// Rating metrics.
const (
	StressMetric     Metric = "stress" // default
	HappinessMetric  Metric = "happiness"
	AnxietyMetric    Metric = "anxiety"
	MotivationMetric Metric = "motivation"
)

// Classifier modes.
const (
	KeywordClassifier ClassifierMode = "keyword" // default
	LLMClassifier     ClassifierMode = "llm"
)

// Recommendation priorities.
const (
	HighPriority   Priority = "high"
	MediumPriority Priority = "medium"
	LowPriority    Priority = "low"
)

// AllTiers lists every tier from best to worst.
var AllTiers = []Tier{ExcellentTier, GoodTier, ModerateTier, ConcerningTier, CriticalTier}

// AllMetrics lists the rating metrics in their canonical order.
var AllMetrics = []Metric{StressMetric, HappinessMetric, AnxietyMetric, MotivationMetric}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidRecordBackends lists all valid record store backends.
var ValidRecordBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidMetrics lists all valid rating metrics.
var ValidMetrics = map[Metric]struct{}{
	StressMetric:     {},
	HappinessMetric:  {},
	AnxietyMetric:    {},
	MotivationMetric: {},
}

// ValidClassifierModes lists all valid classifier modes.
var ValidClassifierModes = map[ClassifierMode]struct{}{
	KeywordClassifier: {},
	LLMClassifier:     {},
}

// tierColors maps each tier to its color tag.
var tierColors = map[Tier]string{
	ExcellentTier:  "green",
	GoodTier:       "lightgreen",
	ModerateTier:   "yellow",
	ConcerningTier: "orange",
	CriticalTier:   "red",
}

// Color returns the color tag of the tier.
func (t Tier) Color() string {
	return tierColors[t]
}

// ParseSentimentLabel maps a free-form label to the closed set.
// English and Portuguese spellings are accepted; anything else is SentimentUnknown.
func ParseSentimentLabel(s string) SentimentLabel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "positivo", "pos":
		return SentimentPositive
	case "negative", "negativo", "neg":
		return SentimentNegative
	case "neutral", "neutro":
		return SentimentNeutral
	default:
		return SentimentUnknown
	}
}

// ParsePriority maps a free-form priority to the closed set, defaulting to medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "alta":
		return HighPriority
	case "low", "baixa":
		return LowPriority
	default:
		return MediumPriority
	}
}
