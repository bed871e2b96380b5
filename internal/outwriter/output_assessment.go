package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// assessmentOutput is the JSON shape of a scored rating set.
type assessmentOutput struct {
	schema.Assessment
	Sentiment *schema.SentimentJudgment `json:"sentiment,omitempty"`
}

// PrintAssessment outputs one assessment and the optional comment sentiment,
// dispatching based on the output format configured.
func PrintAssessment(a schema.Assessment, sentiment *schema.SentimentJudgment, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, assessmentOutput{Assessment: a, Sentiment: sentiment})
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVAssessment(w, nil, a, sentiment, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			rows := assessmentRows(a, cfg, fmtFloat)
			rows = append(rows, sentimentRows(sentiment, fmtFloat)...)
			return renderKeyValue(w, rows)
		}, "Wrote text"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// PrintSentiment outputs a single sentiment judgment.
func PrintSentiment(j schema.SentimentJudgment, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, j)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSentiment(w, j)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			rows := sentimentRows(&j, fmtFloat)
			if j.Insights != nil {
				width := GetMaxTableTextWidth(cfg)
				rows = append(rows,
					[]string{"Emotions", joinOrDash(j.Insights.Emotions, ", ")},
					[]string{"Intensity", j.Insights.Intensity},
					[]string{"Warning signs", joinOrDash(fitLines(j.Insights.WarningSigns, width), "\n")},
					[]string{"Advice", contract.TruncateText(j.Insights.ImmediateAdvice, width)},
				)
			}
			return renderKeyValue(w, rows)
		}, "Wrote text")
	}
}

// PrintSubmitResult outputs the stored record ID with its assessment.
func PrintSubmitResult(res schema.SubmitResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVAssessment(w, &res.RecordID, res.Assessment, res.Sentiment, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			rows := [][]string{{"Record", fmt.Sprintf(intFmt, res.RecordID)}}
			rows = append(rows, assessmentRows(res.Assessment, cfg, fmtFloat)...)
			rows = append(rows, sentimentRows(res.Sentiment, fmtFloat)...)
			if err := renderKeyValue(w, rows); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Stored record %d\n", res.RecordID)
			return err
		}, "Wrote text")
	}
}

// PrintRecommendation outputs an assessment with its personalized recommendation.
func PrintRecommendation(res schema.RecommendResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, res)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRecommendation(w, res, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			width := GetMaxTableTextWidth(cfg)
			rec := res.Recommendation
			rows := assessmentRows(res.Assessment, cfg, fmtFloat)
			rows = append(rows, sentimentRows(res.Sentiment, fmtFloat)...)
			rows = append(rows,
				[]string{"Priority", string(rec.Priority)},
				[]string{"Actions", joinOrDash(fitLines(rec.ImmediateActions, width), "\n")},
				[]string{"Habits", joinOrDash(fitLines(rec.SuggestedHabits, width), "\n")},
				[]string{"Resources", joinOrDash(fitLines(rec.Resources, width), "\n")},
				[]string{"Message", contract.TruncateText(rec.Message, width)},
				[]string{"Source", rec.Source},
			)
			return renderKeyValue(w, rows)
		}, "Wrote text")
	}
}

// assessmentRows builds the field/value rows shared by every assessment table.
func assessmentRows(a schema.Assessment, cfg *contract.Config, fmtFloat func(float64) string) [][]string {
	width := GetMaxTableTextWidth(cfg)
	problems := "none"
	if len(a.Problems) > 0 {
		problems = strings.Join(a.Problems, ", ")
	}
	return [][]string{
		{"Index", fmtFloat(a.Index)},
		{"Tier", tierLabel(a.Tier, cfg)},
		{"Problems", problems},
		{"Advice", contract.TruncateText(a.Advice, width)},
	}
}

// sentimentRows returns nothing when there is no judgment.
func sentimentRows(j *schema.SentimentJudgment, fmtFloat func(float64) string) [][]string {
	if j == nil {
		return nil
	}
	return [][]string{
		{"Sentiment", string(j.Label)},
		{"Polarity", fmtFloat(j.Score)},
		{"Confidence", fmtFloat(j.Confidence)},
		{"Method", j.Method},
	}
}

// renderKeyValue prints a two-column field/value table.
func renderKeyValue(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// fitLines truncates each item to width.
func fitLines(items []string, width int) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = contract.TruncateText(item, width)
	}
	return out
}
