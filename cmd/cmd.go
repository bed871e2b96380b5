// Package cmd defines the command-line interface for workwell.
package cmd

import (
	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(sentimentCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sectorsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	sectorsCmd.AddCommand(sectorsListCmd)
	sectorsCmd.AddCommand(sectorsAddCmd)

	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	dbCmd.AddCommand(dbClearCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbExportCmd)
	dbCmd.AddCommand(dbMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("record-backend", string(schema.SQLiteBackend), "Record backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("record-db-connect", "", "Database connection string for records (SQLite file path or mysql/postgresql DSN)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for the cache (must differ from record-db-connect)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long cached heatmaps and statistics stay fresh")
	rootCmd.PersistentFlags().String("classifier", string(schema.KeywordClassifier), "Comment classifier: keyword or llm")
	rootCmd.PersistentFlags().String("anthropic-api-key", "", "Anthropic API key for the llm classifier and recommendations (falls back to ANTHROPIC_API_KEY)")
	rootCmd.PersistentFlags().String("llm-model", "", "Anthropic model name (empty uses the built-in default)")
	rootCmd.PersistentFlags().Int64("company", 0, "Company ID for reports and submissions")
	rootCmd.PersistentFlags().Int("days", contract.DefaultDays, "Reporting window in days")
	rootCmd.PersistentFlags().String("metric", string(schema.StressMetric), "Highlighted metric: stress or happiness or anxiety or motivation")
	rootCmd.PersistentFlags().Bool("sort-metric", false, "Sort heatmap rows worst first by the highlighted metric")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Rating flags stay local to each command and are not bound to Viper
	addRatingFlags(scoreCmd, true)
	addRatingFlags(recommendCmd, true)
	addRatingFlags(submitCmd, false)
	submitCmd.Flags().Int64("employee", 0, "Employee ID of the submitter")
	submitCmd.Flags().Int64("sector", 0, "Sector ID of the submitter")
	submitCmd.Flags().Bool("anonymous", false, "Hide the comment from exports")
	markRequired(submitCmd, "employee", "sector")

	sectorsAddCmd.Flags().String("description", "", "Optional sector description")

	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address for the HTTP API to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	dbMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(dbMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding db migrate flags", err)
	}
}

// addRatingFlags registers the four rating flags and the optional comment.
// Submissions only require stress and happiness; the rest default to 5.
func addRatingFlags(c *cobra.Command, all bool) {
	c.Flags().Int("stress", 0, "Stress rating from 1 to 10")
	c.Flags().Int("happiness", 0, "Happiness rating from 1 to 10")
	c.Flags().Int("anxiety", 0, "Anxiety rating from 1 to 10")
	c.Flags().Int("motivation", 0, "Motivation rating from 1 to 10")
	c.Flags().String("comment", "", "Optional free-text comment")
	if all {
		markRequired(c, "stress", "happiness", "anxiety", "motivation")
		return
	}
	markRequired(c, "stress", "happiness")
}

func markRequired(c *cobra.Command, names ...string) {
	for _, name := range names {
		if err := c.MarkFlagRequired(name); err != nil {
			contract.LogFatal("Error marking flag "+name+" required", err)
		}
	}
}

// ratingsFromFlags reads the rating flags of a command.
func ratingsFromFlags(c *cobra.Command) (schema.Ratings, string, error) {
	var r schema.Ratings
	var err error
	if r.Stress, err = c.Flags().GetInt("stress"); err != nil {
		return r, "", err
	}
	if r.Happiness, err = c.Flags().GetInt("happiness"); err != nil {
		return r, "", err
	}
	if r.Anxiety, err = c.Flags().GetInt("anxiety"); err != nil {
		return r, "", err
	}
	if r.Motivation, err = c.Flags().GetInt("motivation"); err != nil {
		return r, "", err
	}
	comment, err := c.Flags().GetString("comment")
	return r, comment, err
}
