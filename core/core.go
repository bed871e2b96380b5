// Package core has core logic for wellbeing scoring, reporting and record handling.
package core

import (
	"context"
	"time"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/internal/outwriter"
	"github.com/huangsam/workwell/schema"
)

// ExecuteScore assesses one rating set and prints the result.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, svc *Service, r schema.Ratings, comment string) error {
	a, sentiment, err := svc.Assess(ctx, r, comment)
	if err != nil {
		return err
	}
	return outwriter.PrintAssessment(a, sentiment, cfg)
}

// ExecuteSentiment classifies a comment and prints the judgment.
func ExecuteSentiment(ctx context.Context, cfg *contract.Config, svc *Service, text string) error {
	j, err := svc.Classify(ctx, text)
	if err != nil {
		return err
	}
	return outwriter.PrintSentiment(*j, cfg)
}

// ExecuteSubmit stores a record and prints its assessment.
func ExecuteSubmit(ctx context.Context, cfg *contract.Config, svc *Service, req schema.SubmitRequest) error {
	res, err := svc.Submit(ctx, req)
	if err != nil {
		return err
	}
	return outwriter.PrintSubmitResult(res, cfg)
}

// ExecuteRecommend prints an assessment with its personalized recommendation.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, svc *Service, r schema.Ratings, comment string) error {
	res, err := svc.Recommend(ctx, r, comment)
	if err != nil {
		return err
	}
	return outwriter.PrintRecommendation(res, cfg)
}

// ExecuteHeatmap prints the sector heatmap for the configured company and period.
// With SortByMetric the worst sectors for the metric come first.
func ExecuteHeatmap(ctx context.Context, cfg *contract.Config, svc *Service) error {
	start := time.Now()
	h, err := svc.Heatmap(ctx, cfg.CompanyID, cfg.Days, cfg.Metric)
	if err != nil {
		return err
	}
	if cfg.SortByMetric {
		h.Sectors = RankSectors(h.Sectors, h.Metric, 0)
	}
	return outwriter.PrintHeatmap(h, cfg, time.Since(start))
}

// ExecuteStatistics prints company-wide statistics for the configured period.
func ExecuteStatistics(ctx context.Context, cfg *contract.Config, svc *Service) error {
	start := time.Now()
	stats, err := svc.Statistics(ctx, cfg.CompanyID, cfg.Days)
	if err != nil {
		return err
	}
	return outwriter.PrintStatistics(stats, cfg, time.Since(start))
}

// ExecuteSectors prints the sectors of the configured company.
func ExecuteSectors(ctx context.Context, cfg *contract.Config, svc *Service) error {
	sectors, err := svc.Sectors(ctx, cfg.CompanyID)
	if err != nil {
		return err
	}
	return outwriter.PrintSectors(sectors, cfg)
}

// ExecuteAddSector creates a sector for the configured company and prints it.
func ExecuteAddSector(ctx context.Context, cfg *contract.Config, svc *Service, name, description string) error {
	sector, err := svc.AddSector(ctx, cfg.CompanyID, name, description)
	if err != nil {
		return err
	}
	return outwriter.PrintSectors([]schema.Sector{sector}, cfg)
}
