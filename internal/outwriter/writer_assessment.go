package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/workwell/schema"
)

// writeCSVAssessment writes one assessment row, prefixed by the record ID when given.
func writeCSVAssessment(w io.Writer, recordID *int64, a schema.Assessment, s *schema.SentimentJudgment, fmtFloat func(float64) string) error {
	header := []string{"index", "tier", "color", "problems", "advice", "sentiment_label", "sentiment_score", "sentiment_confidence"}
	if recordID != nil {
		header = append([]string{"record_id"}, header...)
	}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		row := []string{
			fmtFloat(a.Index),
			string(a.Tier),
			a.Color,
			strings.Join(a.Problems, "|"),
			a.Advice,
		}
		row = append(row, sentimentCells(s)...)
		if recordID != nil {
			row = append([]string{strconv.FormatInt(*recordID, 10)}, row...)
		}
		return cw.Write(row)
	})
}

// writeCSVSentiment writes a single sentiment judgment.
func writeCSVSentiment(w io.Writer, j schema.SentimentJudgment) error {
	header := []string{"label", "score", "confidence", "method"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			string(j.Label),
			strconv.FormatFloat(j.Score, 'f', 3, 64),
			strconv.FormatFloat(j.Confidence, 'f', 2, 64),
			j.Method,
		})
	})
}

// writeCSVRecommendation flattens the recommendation lists with "|".
func writeCSVRecommendation(w io.Writer, res schema.RecommendResult, fmtFloat func(float64) string) error {
	header := []string{"index", "tier", "problems", "priority", "immediate_actions", "suggested_habits", "resources", "message", "source"}
	rec := res.Recommendation
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			fmtFloat(res.Assessment.Index),
			string(res.Assessment.Tier),
			strings.Join(res.Assessment.Problems, "|"),
			string(rec.Priority),
			strings.Join(rec.ImmediateActions, "|"),
			strings.Join(rec.SuggestedHabits, "|"),
			strings.Join(rec.Resources, "|"),
			rec.Message,
			rec.Source,
		})
	})
}

// sentimentCells renders label, score and confidence, or three blanks.
func sentimentCells(s *schema.SentimentJudgment) []string {
	if s == nil {
		return []string{"", "", ""}
	}
	return []string{
		string(s.Label),
		strconv.FormatFloat(s.Score, 'f', 3, 64),
		strconv.FormatFloat(s.Confidence, 'f', 2, 64),
	}
}
