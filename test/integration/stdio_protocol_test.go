package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/assetboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

func serverBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/assetboard", "../../bin/assetboard"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("assetboard binary not found. Run 'go build -o bin/assetboard ./cmd/assetboard' first.")
	return ""
}

// TestStdioProtocolCompliance drives the built binary over stdio with the SDK client.
func TestStdioProtocolCompliance(t *testing.T) {
	binaryPath := serverBinary(t)
	api := testserver.NewReviewAPI(t)
	api.Generate("sunrise", 5)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "serve")
	cmd.Env = append(os.Environ(),
		"ASSETBOARD_CONFIG_PATH=",
		"ASSETBOARD_TRANSPORT=stdio",
		"ASSETBOARD_DB_PATH=:memory:",
		"ASSETBOARD_API_BASE="+api.URL(),
		"ASSETBOARD_PAGE_SIZE=2",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err, "failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.NotNil(t, initResult.ServerInfo)
		require.Equal(t, "assetboard", initResult.ServerInfo.Name)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)

		toolNames := make(map[string]bool)
		for _, tool := range tools.Tools {
			toolNames[tool.Name] = true
		}
		for _, name := range []string{"select_project", "get_status", "list_assets", "list_columns", "get_review_info", "get_recent_activity"} {
			require.True(t, toolNames[name], "missing tool: %s", name)
		}
	})

	t.Run("SelectAndList", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "select_project",
			Arguments: map[string]any{"project_key": "sunrise", "wait": true},
		})
		require.NoError(t, err)
		require.False(t, result.IsError, "select_project returned error: %v", result)

		var selected struct {
			Completed bool `json:"completed"`
			Status    struct {
				Count int `json:"count"`
			} `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &selected))
		require.True(t, selected.Completed)
		require.Equal(t, 5, selected.Status.Count)

		result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "list_assets",
			Arguments: map[string]any{"sort": "name:desc", "limit": 2},
		})
		require.NoError(t, err)
		require.False(t, result.IsError, "list_assets returned error: %v", result)

		var listed struct {
			Total int `json:"total"`
			Rows  []struct {
				Name string `json:"name"`
			} `json:"rows"`
		}
		require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &listed))
		require.Equal(t, 5, listed.Total)
		require.Len(t, listed.Rows, 2)
		require.Equal(t, testserver.AssetName("sunrise", 4), listed.Rows[0].Name)
	})

	require.Len(t, api.RequestsFor("sunrise"), 3)
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatal("tool result has no text content")
	return ""
}
