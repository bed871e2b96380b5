package cmd

import (
	"errors"

	"github.com/huangsam/workwell/core"
	"github.com/spf13/cobra"
)

// errCompanyRequired is returned when a company-scoped command runs without --company.
var errCompanyRequired = errors.New("--company is required (or set WORKWELL_COMPANY)")

func requireCompany() error {
	if cfg.CompanyID <= 0 {
		return errCompanyRequired
	}
	return nil
}

// heatmapCmd prints per-sector averages for a company.
var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show average ratings per sector for a company",
	Long: `Show the average stress, happiness, anxiety and motivation of every sector
that has records in the reporting window, with each sector's wellbeing index.

The --metric column is highlighted. With --sort-metric the sectors are ordered
worst first for that metric (highest stress or anxiety, lowest happiness or
motivation); otherwise they are ordered by name.

Results are cached per company and window until the cache TTL expires or a new
record is submitted.

Examples:
  workwell heatmap --company 1
  workwell heatmap --company 1 --days 90 --metric anxiety --sort-metric
  workwell heatmap --company 1 --output csv --output-file heatmap.csv`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := requireCompany(); err != nil {
			return err
		}
		return core.ExecuteHeatmap(rootCtx, cfg, svc)
	},
}

// statsCmd prints company-wide statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show company-wide wellbeing statistics",
	Long: `Show the number of records, employees and sectors in the reporting window
with the company-wide averages, wellbeing index and tier.

Examples:
  workwell stats --company 1
  workwell stats --company 1 --days 7 --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := requireCompany(); err != nil {
			return err
		}
		return core.ExecuteStatistics(rootCtx, cfg, svc)
	},
}

// sectorsCmd groups sector management.
var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Manage the sectors of a company",
	Long: `List or create the sectors records are submitted against.

Subcommands:
  list - Show every sector of the company
  add  - Create a sector`,
}

var sectorsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the sectors of a company",
	Example: `  workwell sectors list --company 1`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := requireCompany(); err != nil {
			return err
		}
		return core.ExecuteSectors(rootCtx, cfg, svc)
	},
}

var sectorsAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Create a sector for a company",
	Example: `  workwell sectors add --company 1 "Financeiro" --description "Finance and billing"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCompany(); err != nil {
			return err
		}
		description, err := cmd.Flags().GetString("description")
		if err != nil {
			return err
		}
		return core.ExecuteAddSector(rootCtx, cfg, svc, args[0], description)
	},
}
