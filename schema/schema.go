// Package schema has models and enums shared by all parts of workwell.
package schema

import "time"

// Ratings holds the four self-reported ratings, each expected in [1,10].
// Stress and anxiety are inverse (lower is better); happiness and motivation are direct.
type Ratings struct {
	Stress     int `json:"stress"`
	Happiness  int `json:"happiness"`
	Anxiety    int `json:"anxiety"`
	Motivation int `json:"motivation"`
}

// Value returns the rating for the given metric.
func (r Ratings) Value(m Metric) int {
	switch m {
	case HappinessMetric:
		return r.Happiness
	case AnxietyMetric:
		return r.Anxiety
	case MotivationMetric:
		return r.Motivation
	default:
		return r.Stress
	}
}

// SentimentJudgment is a classifier's verdict on a free-text comment.
type SentimentJudgment struct {
	Label      SentimentLabel `json:"label"`
	Score      float64        `json:"score"`      // polarity in [-1,1]
	Confidence float64        `json:"confidence"` // [0,1]
	Method     string         `json:"method,omitempty"`
	Insights   *LLMInsights   `json:"insights,omitempty"`
}

// LLMInsights carries the extra context returned by the LLM refiner.
type LLMInsights struct {
	Emotions        []string `json:"emotions"`
	Intensity       string   `json:"intensity"`
	WarningSigns    []string `json:"warning_signs"`
	ImmediateAdvice string   `json:"immediate_advice"`
}

// Assessment is the scorer output for one set of ratings.
type Assessment struct {
	Index    float64  `json:"index"`
	Tier     Tier     `json:"tier"`
	Color    string   `json:"color"`
	Problems []string `json:"problems"`
	Advice   string   `json:"advice"`
}

// Sector is an organizational unit of a company.
type Sector struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Record is one stored emotional self-report.
type Record struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employee_id"`
	CompanyID      int64     `json:"company_id"`
	SectorID       int64     `json:"sector_id"`
	Ratings        Ratings   `json:"ratings"`
	Comment        string    `json:"comment"`
	Anonymous      bool      `json:"anonymous"`
	SentimentLabel string    `json:"sentiment_label,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SubmitRequest is the input for storing a new record.
type SubmitRequest struct {
	EmployeeID int64   `json:"employee_id"`
	CompanyID  int64   `json:"company_id"`
	SectorID   int64   `json:"sector_id"`
	Ratings    Ratings `json:"ratings"`
	Comment    string  `json:"comment"`
	Anonymous  bool    `json:"anonymous"`
}

// SubmitResult is the outcome of storing and scoring a record.
type SubmitResult struct {
	RecordID   int64              `json:"record_id"`
	Sentiment  *SentimentJudgment `json:"sentiment,omitempty"`
	Assessment Assessment         `json:"assessment"`
}

// MetricAverages holds the mean of each rating over a set of records.
type MetricAverages struct {
	Stress     float64 `json:"stress"`
	Happiness  float64 `json:"happiness"`
	Anxiety    float64 `json:"anxiety"`
	Motivation float64 `json:"motivation"`
}

// Value returns the average for the given metric.
func (a MetricAverages) Value(m Metric) float64 {
	switch m {
	case HappinessMetric:
		return a.Happiness
	case AnxietyMetric:
		return a.Anxiety
	case MotivationMetric:
		return a.Motivation
	default:
		return a.Stress
	}
}

// SectorAggregate is one row of the sector heatmap.
type SectorAggregate struct {
	Sector       string         `json:"sector"`
	Averages     MetricAverages `json:"averages"`
	TotalRecords int            `json:"total_records"`
	Index        float64        `json:"index"`
	Tier         Tier           `json:"tier"`
}

// Heatmap is the sector heatmap data for one company and period.
type Heatmap struct {
	CompanyID int64             `json:"company_id"`
	Days      int               `json:"days"`
	Metric    Metric            `json:"metric"`
	Sectors   []SectorAggregate `json:"sectors"`
}

// Statistics summarizes all records of a company over a period.
type Statistics struct {
	CompanyID      int64          `json:"company_id"`
	Days           int            `json:"days"`
	TotalRecords   int            `json:"total_records"`
	TotalEmployees int            `json:"total_employees"`
	Averages       MetricAverages `json:"averages"`
	Index          float64        `json:"index"`
	Tier           Tier           `json:"tier"`
}

// Recommendation is a set of personalized actions for an employee.
type Recommendation struct {
	Priority         Priority `json:"priority"`
	ImmediateActions []string `json:"immediate_actions"`
	SuggestedHabits  []string `json:"suggested_habits"`
	Resources        []string `json:"resources"`
	Message          string   `json:"message"`
	Source           string   `json:"source"`
}

// RecommendResult pairs an assessment with its recommendation.
type RecommendResult struct {
	Assessment     Assessment         `json:"assessment"`
	Sentiment      *SentimentJudgment `json:"sentiment,omitempty"`
	Recommendation Recommendation     `json:"recommendation"`
}
