package mcp

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/assetboard/internal/domain/order"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "select_project",
			Description: "Select the project whose assets are retrieved. Any retrieval in flight is superseded; an empty key clears the board",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_key": map[string]any{
						"type":        "string",
						"description": "Project key in the review API (empty to clear)",
					},
					"wait": map[string]any{
						"type":        "boolean",
						"description": "Block until the retrieval completes or fails",
					},
					"timeout_ms": map[string]any{
						"type":        "integer",
						"description": "Maximum time to wait in milliseconds (default 30000)",
					},
				},
				"required": []string{"project_key"},
			},
		},
		{
			Name:        "get_status",
			Description: "Get the current board status: project, loading flag, error and asset count",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "list_assets",
			Description: "List the retrieved assets joined with their per-phase review info, ordered by one column",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sort": map[string]any{
						"type":        "string",
						"description": "Sort expression column[:asc|desc], default " + order.DefaultSpec().String(),
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of rows (default 100)",
					},
					"offset": map[string]any{
						"type":        "integer",
						"description": "Rows to skip",
					},
				},
			},
		},
		{
			Name:        "list_columns",
			Description: "List the sortable columns in board order",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_review_info",
			Description: "Get the review info of one asset in one phase of the selected project, including comment text",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Asset name",
					},
					"relation": map[string]any{
						"type":        "string",
						"description": "Asset relation",
					},
					"phase": map[string]any{
						"type":        "string",
						"description": "Review phase",
						"enum":        []string{"mdl", "rig", "bld", "dsn", "ldv"},
					},
				},
				"required": []string{"name", "relation", "phase"},
			},
		},
		{
			Name:        "get_recent_activity",
			Description: "Get recent retrieval activity, newest first",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"project_key": map[string]any{
						"type":        "string",
						"description": "Project key to filter by",
					},
					"session_id": map[string]any{
						"type":        "string",
						"description": "Retrieval session id to filter by",
					},
					"type": map[string]any{
						"type":        "string",
						"description": "Activity type to filter by",
						"enum":        []string{"session_started", "session_completed", "session_failed", "session_superseded", "reviews_imported"},
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of activity entries",
					},
					"offset": map[string]any{
						"type":        "integer",
						"description": "Entries to skip",
					},
				},
			},
		},
	}
}

func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := handler.Handle(ctx, name, args)
			if err != nil {
				return toolError(err), nil
			}
			return toolResult(result)
		})
	}
}

func toolResult(result any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func toolError(err error) *sdkmcp.CallToolResult {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, mErr := json.Marshal(apiErr)
	if mErr != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
