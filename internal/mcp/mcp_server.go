// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/workwell/core"
	"github.com/huangsam/workwell/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var metricEnum = mcp.Enum("stress", "happiness", "anxiety", "motivation")

// NewMCPServer initializes and configures the Workwell MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, svc *core.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Workwell Wellbeing Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		svc:     svc,
	}

	// --- 1. Tool: score_wellbeing ---
	s.AddTool(mcp.NewTool("score_wellbeing",
		mcp.WithDescription("Compute the wellbeing index, tier, detected problems and advice for one set of ratings."),
		mcp.WithNumber("stress", mcp.Description("Stress rating from 1 to 10 (lower is better)."), mcp.Required()),
		mcp.WithNumber("happiness", mcp.Description("Happiness rating from 1 to 10."), mcp.Required()),
		mcp.WithNumber("anxiety", mcp.Description("Anxiety rating from 1 to 10 (lower is better)."), mcp.Required()),
		mcp.WithNumber("motivation", mcp.Description("Motivation rating from 1 to 10."), mcp.Required()),
		mcp.WithString("comment", mcp.Description("Optional free-text comment whose sentiment adjusts the index.")),
	), h.handleScoreWellbeing)

	// --- 2. Tool: analyze_sentiment ---
	s.AddTool(mcp.NewTool("analyze_sentiment",
		mcp.WithDescription("Classify the sentiment of a free-text comment (Portuguese or English)."),
		mcp.WithString("text", mcp.Description("The comment to classify."), mcp.Required()),
	), h.handleAnalyzeSentiment)

	// --- 3. Tool: submit_record ---
	s.AddTool(mcp.NewTool("submit_record",
		mcp.WithDescription("Store an employee self-report and return its assessment."),
		mcp.WithNumber("employee_id", mcp.Description("Employee ID."), mcp.Required()),
		mcp.WithNumber("company_id", mcp.Description("Company ID."), mcp.Required()),
		mcp.WithNumber("sector_id", mcp.Description("Sector ID, which must belong to the company."), mcp.Required()),
		mcp.WithNumber("stress", mcp.Description("Stress rating from 1 to 10."), mcp.Required()),
		mcp.WithNumber("happiness", mcp.Description("Happiness rating from 1 to 10."), mcp.Required()),
		mcp.WithNumber("anxiety", mcp.Description("Anxiety rating from 1 to 10. Defaults to 5.")),
		mcp.WithNumber("motivation", mcp.Description("Motivation rating from 1 to 10. Defaults to 5.")),
		mcp.WithString("comment", mcp.Description("Optional comment.")),
		mcp.WithBoolean("anonymous", mcp.Description("Whether the report is anonymous.")),
	), h.handleSubmitRecord)

	// --- 4. Tool: recommend_actions ---
	s.AddTool(mcp.NewTool("recommend_actions",
		mcp.WithDescription("Build personalized wellbeing recommendations for one set of ratings."),
		mcp.WithNumber("stress", mcp.Description("Stress rating from 1 to 10."), mcp.Required()),
		mcp.WithNumber("happiness", mcp.Description("Happiness rating from 1 to 10."), mcp.Required()),
		mcp.WithNumber("anxiety", mcp.Description("Anxiety rating from 1 to 10."), mcp.Required()),
		mcp.WithNumber("motivation", mcp.Description("Motivation rating from 1 to 10."), mcp.Required()),
		mcp.WithString("comment", mcp.Description("Optional comment.")),
	), h.handleRecommendActions)

	// --- 5. Tool: get_sector_heatmap ---
	s.AddTool(mcp.NewTool("get_sector_heatmap",
		mcp.WithDescription("Average ratings per sector of a company, with the wellbeing index of each sector."),
		mcp.WithNumber("company_id", mcp.Description("Company ID (defaults to the configured company).")),
		mcp.WithNumber("days", mcp.Description("Reporting window in days. Defaults to 30.")),
		mcp.WithString("metric", mcp.Description("Metric to rank by. Defaults to 'stress'."), metricEnum),
		mcp.WithNumber("limit", mcp.Description("Only return the worst N sectors for the metric.")),
	), h.handleGetSectorHeatmap)

	// --- 6. Tool: get_statistics ---
	s.AddTool(mcp.NewTool("get_statistics",
		mcp.WithDescription("Company-wide record counts, average ratings and wellbeing index."),
		mcp.WithNumber("company_id", mcp.Description("Company ID (defaults to the configured company).")),
		mcp.WithNumber("days", mcp.Description("Reporting window in days. Defaults to 30.")),
	), h.handleGetStatistics)

	// --- 7. Tool: list_sectors ---
	s.AddTool(mcp.NewTool("list_sectors",
		mcp.WithDescription("List the sectors of a company."),
		mcp.WithNumber("company_id", mcp.Description("Company ID (defaults to the configured company).")),
	), h.handleListSectors)

	return s
}

// StartMCPServer starts the Workwell MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, svc *core.Service) error {
	s := NewMCPServer(baseCfg, svc)
	return server.ServeStdio(s)
}
