package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests for one user: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
	userID  int
}

func NewHandler(service contextService, userID int) *Handler {
	return &Handler{
		service: service,
		userID:  userID,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// GetSchemaTool returns the MCP tool handler for get_ironlog_schema.
func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// GetAnalyticsOverviewTool returns the MCP tool handler for get_analytics_overview.
func (h *Handler) GetAnalyticsOverviewTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		overview, err := h.service.Overview(ctx, h.userID)
		if err != nil {
			return errorResult("Error building analytics overview: " + err.Error()), nil, nil
		}
		return jsonResult(overview), nil, nil
	}
}

// ListInput is the input for list_sessions and list_body_weight.
type ListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max number of rows to return, newest first"`
}

// ListSessionsTool returns the MCP tool handler for list_sessions.
func (h *Handler) ListSessionsTool() func(context.Context, *mcp.CallToolRequest, ListInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.ListSessions(ctx, h.userID, in.Limit)
		if err != nil {
			return errorResult("Error listing sessions: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// GetSessionInput is the input for get_session.
type GetSessionInput struct {
	SessionID int `json:"session_id" jsonschema:"Id of the workout session"`
}

// GetSessionTool returns the MCP tool handler for get_session.
func (h *Handler) GetSessionTool() func(context.Context, *mcp.CallToolRequest, GetSessionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in GetSessionInput) (*mcp.CallToolResult, any, error) {
		if in.SessionID <= 0 {
			return errorResult("Invalid session_id: must be a positive integer"), nil, nil
		}
		detail, err := h.service.GetSession(ctx, h.userID, in.SessionID)
		if err != nil {
			return errorResult("Error fetching session: " + err.Error()), nil, nil
		}
		return jsonResult(detail), nil, nil
	}
}

// ListBodyWeightTool returns the MCP tool handler for list_body_weight.
func (h *Handler) ListBodyWeightTool() func(context.Context, *mcp.CallToolRequest, ListInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, any, error) {
		entries, err := h.service.ListBodyWeight(ctx, h.userID, in.Limit)
		if err != nil {
			return errorResult("Error listing body weight: " + err.Error()), nil, nil
		}
		return jsonResult(entries), nil, nil
	}
}
