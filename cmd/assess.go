package cmd

import (
	"errors"
	"strings"

	"github.com/huangsam/workwell/core"
	"github.com/huangsam/workwell/schema"
	"github.com/spf13/cobra"
)

// scoreCmd scores one set of ratings without storing anything.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the wellbeing index for one set of ratings",
	Long: `Score four self-reported ratings (1 to 10) and print the wellbeing index,
its tier and the sentiment of the optional comment.

The index starts from the ratings with stress and anxiety inverted, then moves
by up to 15 points in the direction of the comment sentiment.

Tiers:
  excellent  80 and above
  good       65 to 80
  moderate   50 to 65
  concerning 35 to 50
  critical   below 35

Examples:
  # Balanced ratings land exactly on 50
  workwell score --stress 5 --happiness 5 --anxiety 5 --motivation 5

  # Include a comment and print JSON
  workwell score --stress 3 --happiness 8 --anxiety 2 --motivation 9 \
    --comment "Great team, feeling motivated" --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, comment, err := ratingsFromFlags(cmd)
		if err != nil {
			return err
		}
		return core.ExecuteScore(rootCtx, cfg, svc, r, comment)
	},
}

// sentimentCmd classifies free text.
var sentimentCmd = &cobra.Command{
	Use:   "sentiment <text>",
	Short: "Classify the sentiment of a comment",
	Long: `Classify a Portuguese or English comment as positive, negative or neutral.

The keyword classifier counts matches against a built-in list of positive and
negative phrases. With --classifier llm an Anthropic model refines the label and adds
emotions, concerns and suggestions; failures fall back to the keywords.

Examples:
  workwell sentiment "Estou muito feliz com a equipe"
  workwell sentiment --classifier llm "I am exhausted and anxious"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return errors.New("text cannot be empty")
		}
		return core.ExecuteSentiment(rootCtx, cfg, svc, text)
	},
}

// submitCmd stores one record for an employee.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Store a wellbeing record and print its assessment",
	Long: `Store one employee's ratings in the record backend and print the assessment.

Stress and happiness are required. Anxiety and motivation default to 5 when
omitted. Comments are trimmed to 1000 characters and their sentiment is stored
with the record. Cached heatmaps and statistics of the company are invalidated.

Examples:
  workwell submit --company 1 --employee 42 --sector 3 --stress 4 --happiness 7

  # Keep the comment out of exports
  workwell submit --company 1 --employee 42 --sector 3 --stress 8 --happiness 3 \
    --comment "Too many meetings" --anonymous`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, comment, err := ratingsFromFlags(cmd)
		if err != nil {
			return err
		}
		employee, err := cmd.Flags().GetInt64("employee")
		if err != nil {
			return err
		}
		sector, err := cmd.Flags().GetInt64("sector")
		if err != nil {
			return err
		}
		anonymous, err := cmd.Flags().GetBool("anonymous")
		if err != nil {
			return err
		}
		return core.ExecuteSubmit(rootCtx, cfg, svc, schema.SubmitRequest{
			EmployeeID: employee,
			CompanyID:  cfg.CompanyID,
			SectorID:   sector,
			Ratings:    r,
			Comment:    comment,
			Anonymous:  anonymous,
		})
	},
}

// recommendCmd prints personalized actions for a rating set.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest wellbeing actions for one set of ratings",
	Long: `Assess the ratings and print a recommendation with a priority and actions.

With an Anthropic API key the recommendation is written by the model; otherwise
it comes from built-in rules keyed on the tier and the worst ratings.

Examples:
  workwell recommend --stress 9 --happiness 2 --anxiety 8 --motivation 3
  ANTHROPIC_API_KEY=... workwell recommend --stress 6 --happiness 5 --anxiety 6 --motivation 4 \
    --comment "Sinto-me sobrecarregado"`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, comment, err := ratingsFromFlags(cmd)
		if err != nil {
			return err
		}
		return core.ExecuteRecommend(rootCtx, cfg, svc, r, comment)
	},
}
