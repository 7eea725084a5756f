package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/assetboard/internal/domain/order"
)

const serverInstructions = `assetboard retrieves every asset of a project from the paginated review API and serves a sortable board joined with per-phase review info.

Workflow:
1) select_project(project_key, wait=true) starts a retrieval. Selecting another project supersedes the one in flight; its results are discarded.
2) get_status reports loading / error / count. Loading, error and a result are mutually exclusive.
3) list_assets(sort="column:asc|desc") returns ordered rows. Rows without a value for the sort column always come last.
4) get_review_info(name, relation, phase) returns one review entry with its comment text.
5) get_recent_activity shows retrieval sessions (started, completed, failed, superseded).

Docs:
- assetboard://docs/index
- assetboard://docs/columns
- assetboard://docs/errors
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "assetboard://docs/index",
		Name:        "docs_index",
		Title:       "assetboard docs index",
		Description: "Entry point: what the server does and which doc to read next.",
		Content: `# assetboard

The board holds the assets of exactly one project at a time.

- A retrieval fetches fixed-size pages (200 assets by default) in order until a page comes back short.
- Only complete retrievals are shown. A failed retrieval shows its error and no assets.
- Review info comes from a local snapshot imported with ` + "`assetboard reviews import`" + `.

Read ` + "`assetboard://docs/columns`" + ` before sorting and ` + "`assetboard://docs/errors`" + ` when a tool fails.
`,
	},
	{
		URI:         "assetboard://docs/columns",
		Name:        "docs_columns",
		Title:       "Sortable columns",
		Description: "Column ids accepted by list_assets, in board order.",
		Content:     columnsDoc(),
	},
	{
		URI:         "assetboard://docs/errors",
		Name:        "docs_errors",
		Title:       "Error codes",
		Description: "Error codes returned by tools and how to recover.",
		Content: `# Error codes

- UNAUTHORIZED: the review API answered 401. Sign in, then select the project again.
- TRANSPORT_ERROR: any other non-success status or a network failure. details.http_status is 0 without a response.
- NO_PROJECT: call select_project first.
- LOADING: a retrieval is in flight. Poll get_status or select with wait=true.
- INVALID_SORT: unknown column or direction. See assetboard://docs/columns.
- NOT_FOUND: no review info for that asset and phase.
- INVALID_INPUT: malformed arguments.
`,
	},
}

func columnsDoc() string {
	var b strings.Builder
	b.WriteString("# Sortable columns\n\n")
	fmt.Fprintf(&b, "Default sort: `%s`. `name` is accepted for `%s`.\n\n", order.DefaultSpec(), order.DefaultColumn)
	b.WriteString("| id | label | kind | phase |\n|---|---|---|---|\n")
	for _, col := range order.Columns() {
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", col.ID, col.Label, col.Kind, col.Phase)
	}
	b.WriteString("\nStatus columns compare as text and `*_submitted_at` columns compare as instants. Missing values sort last in both directions.\n")
	return b.String()
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
