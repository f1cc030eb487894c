package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/toolsathi/toolsathi/pkg/models"
	"github.com/toolsathi/toolsathi/pkg/server"
)

// toolHandler is a function that handles a tool call.
type toolHandler func(ctx context.Context, s *Server, args json.RawMessage) ToolCallResult

// toolHandlers maps tool names to their handlers.
var toolHandlers = map[string]toolHandler{
	"toolsathi_usage":        handleUsage,
	"toolsathi_quota":        handleQuota,
	"toolsathi_cache_stats":  handleCacheStats,
	"toolsathi_calculate":    handleCalculate,
	"toolsathi_audit_search": handleAuditSearch,
}

// allTools is the list of tool definitions exposed via tools/list.
var allTools = []ToolDefinition{
	{
		Name:        "toolsathi_usage",
		Description: "Show per-tool usage counts, optionally filtered by tool id.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tool_id": map[string]any{
					"type":        "string",
					"description": "Filter by tool id (optional, omit for all tools)",
				},
			},
		},
	},
	{
		Name:        "toolsathi_quota",
		Description: "Show today's generation quota status for all configured policies, optionally filtered by tool id.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tool_id": map[string]any{
					"type":        "string",
					"description": "Filter by tool id (optional, omit for all policies)",
				},
			},
		},
	},
	{
		Name:        "toolsathi_cache_stats",
		Description: "Show generation cache statistics (entries, hits, misses, hit rate).",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		Name:        "toolsathi_calculate",
		Description: "Run one of the calculator tools (emi, dca, risk-reward, percentage, age, word-counter, ...) with typed JSON arguments.",
		InputSchema: map[string]any{
			"type":     "object",
			"required": []string{"tool_id", "args"},
			"properties": map[string]any{
				"tool_id": map[string]any{
					"type":        "string",
					"description": "The calculator tool id",
				},
				"args": map[string]any{
					"type":        "object",
					"description": "The tool's input, same shape as the /api/calc endpoint",
				},
			},
		},
	},
	{
		Name:        "toolsathi_audit_search",
		Description: "Search the generation audit log with optional filters.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tool_id": map[string]any{
					"type":        "string",
					"description": "Filter by tool id (optional)",
				},
				"model": map[string]any{
					"type":        "string",
					"description": "Filter by model (optional)",
				},
				"since": map[string]any{
					"type":        "string",
					"description": "Start date in YYYY-MM-DD format (optional)",
				},
				"request_id": map[string]any{
					"type":        "string",
					"description": "Filter by request id (optional)",
				},
			},
		},
	},
}

func textResult(text string) ToolCallResult {
	return ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

func errorResult(text string) ToolCallResult {
	return ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: true,
	}
}

type toolIDArgs struct {
	ToolID string `json:"tool_id"`
}

func handleUsage(ctx context.Context, s *Server, rawArgs json.RawMessage) ToolCallResult {
	var args toolIDArgs
	if len(rawArgs) > 0 {
		_ = json.Unmarshal(rawArgs, &args)
	}
	records, err := s.ledger.List(ctx)
	if err != nil {
		return errorResult("Error fetching usage: " + err.Error())
	}
	if args.ToolID != "" {
		filtered := records[:0]
		for _, r := range records {
			if r.ToolID == args.ToolID {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	return textResult(formatUsage(records))
}

func handleQuota(ctx context.Context, s *Server, rawArgs json.RawMessage) ToolCallResult {
	if s.enforcer == nil {
		return textResult("Quota enforcement is not configured.")
	}
	var args toolIDArgs
	if len(rawArgs) > 0 {
		_ = json.Unmarshal(rawArgs, &args)
	}
	statuses, err := s.enforcer.Status(ctx, args.ToolID)
	if err != nil {
		return errorResult("Error fetching quota status: " + err.Error())
	}
	return textResult(formatQuotaStatus(statuses))
}

func handleCacheStats(_ context.Context, s *Server, _ json.RawMessage) ToolCallResult {
	if s.cache == nil {
		return textResult("Cache is not configured.")
	}
	stats, err := s.cache.Stats()
	if err != nil {
		return errorResult("Error fetching cache stats: " + err.Error())
	}
	return textResult(formatCacheStats(stats))
}

type calculateArgs struct {
	ToolID string          `json:"tool_id"`
	Args   json.RawMessage `json:"args"`
}

func handleCalculate(_ context.Context, _ *Server, rawArgs json.RawMessage) ToolCallResult {
	var args calculateArgs
	if len(rawArgs) > 0 {
		_ = json.Unmarshal(rawArgs, &args)
	}
	if args.ToolID == "" {
		return errorResult("tool_id is required")
	}
	if len(args.Args) == 0 {
		args.Args = json.RawMessage(`{}`)
	}

	result, err := server.EvaluateCalc(args.ToolID, args.Args)
	if err != nil {
		return errorResult("Calculation failed: " + err.Error())
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errorResult("Error encoding result: " + err.Error())
	}
	return textResult(string(out))
}

type auditSearchArgs struct {
	ToolID    string `json:"tool_id"`
	Model     string `json:"model"`
	Since     string `json:"since"`
	RequestID string `json:"request_id"`
}

func handleAuditSearch(ctx context.Context, s *Server, rawArgs json.RawMessage) ToolCallResult {
	if s.auditor == nil {
		return textResult("Audit logging is not configured.")
	}
	var args auditSearchArgs
	if len(rawArgs) > 0 {
		_ = json.Unmarshal(rawArgs, &args)
	}

	opts := models.GenerationLogQueryOpts{
		ToolID:    args.ToolID,
		Model:     args.Model,
		RequestID: args.RequestID,
		Limit:     50,
	}
	if args.Since != "" {
		t, err := time.Parse("2006-01-02", args.Since)
		if err != nil {
			return errorResult("Invalid since date (use YYYY-MM-DD): " + err.Error())
		}
		opts.Since = t
	}

	entries, err := s.auditor.Query(ctx, opts)
	if err != nil {
		return errorResult("Error searching audit log: " + err.Error())
	}
	return textResult(formatAuditEntries(entries))
}
