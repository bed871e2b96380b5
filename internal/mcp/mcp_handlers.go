package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/workwell/core"
	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	svc     *core.Service
}

// ratingsFrom reads the four ratings. Missing values stay zero and fail validation downstream.
func ratingsFrom(request mcp.CallToolRequest) schema.Ratings {
	return schema.Ratings{
		Stress:     request.GetInt("stress", 0),
		Happiness:  request.GetInt("happiness", 0),
		Anxiety:    request.GetInt("anxiety", 0),
		Motivation: request.GetInt("motivation", 0),
	}
}

// window resolves the company and days arguments against the base config.
func (h *toolHandler) window(request mcp.CallToolRequest) (int64, int) {
	companyID := int64(request.GetInt("company_id", int(h.baseCfg.CompanyID)))
	days := request.GetInt("days", h.baseCfg.Days)
	if days == 0 {
		days = contract.DefaultDays
	}
	return companyID, days
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreWellbeing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, sentiment, err := h.svc.Assess(ctx, ratingsFrom(request), request.GetString("comment", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(struct {
		schema.Assessment
		Sentiment *schema.SentimentJudgment `json:"sentiment,omitempty"`
	}{a, sentiment})
}

func (h *toolHandler) handleAnalyzeSentiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	j, err := h.svc.Classify(ctx, contract.TruncateRunes(text, contract.MaxCommentRunes))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sentiment analysis failed: %v", err)), nil
	}
	return jsonResult(j)
}

func (h *toolHandler) handleSubmitRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := schema.SubmitRequest{
		EmployeeID: int64(request.GetInt("employee_id", 0)),
		CompanyID:  int64(request.GetInt("company_id", 0)),
		SectorID:   int64(request.GetInt("sector_id", 0)),
		Ratings:    ratingsFrom(request),
		Comment:    request.GetString("comment", ""),
		Anonymous:  request.GetBool("anonymous", false),
	}
	res, err := h.svc.Submit(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("submit failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleRecommendActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := h.svc.Recommend(ctx, ratingsFrom(request), request.GetString("comment", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleGetSectorHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	companyID, days := h.window(request)
	metric := schema.Metric(request.GetString("metric", string(h.baseCfg.Metric)))

	hm, err := h.svc.Heatmap(ctx, companyID, days, metric)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("heatmap failed: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		hm.Sectors = core.RankSectors(hm.Sectors, hm.Metric, l)
	}
	return jsonResult(hm)
}

func (h *toolHandler) handleGetStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	companyID, days := h.window(request)
	st, err := h.svc.Statistics(ctx, companyID, days)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("statistics failed: %v", err)), nil
	}
	return jsonResult(st)
}

func (h *toolHandler) handleListSectors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	companyID, _ := h.window(request)
	sectors, err := h.svc.Sectors(ctx, companyID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sectors failed: %v", err)), nil
	}
	return jsonResult(sectors)
}
