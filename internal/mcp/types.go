package mcp

import (
	"encoding/json"
	"time"

	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/rpggio/assetboard/internal/domain/board"
	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
)

type SelectProjectParams struct {
	ProjectKey string `json:"project_key"`
	Wait       bool   `json:"wait,omitempty"`
	TimeoutMS  int    `json:"timeout_ms,omitempty"`
}

type SelectProjectResponse struct {
	SessionID string       `json:"session_id,omitempty"`
	Completed bool         `json:"completed"`
	Status    board.Status `json:"status"`
}

type ListAssetsParams struct {
	Sort   string `json:"sort,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type ListAssetsResponse struct {
	Status board.Status   `json:"status"`
	Sort   order.SortSpec `json:"sort"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Rows   []AssetRow     `json:"rows"`
}

// AssetRow is a board row with review info flattened per phase.
type AssetRow struct {
	Key      string                     `json:"key"`
	Name     string                     `json:"name"`
	Relation string                     `json:"relation"`
	Fields   map[string]json.RawMessage `json:"fields,omitempty"`
	Phases   map[review.Phase]PhaseCell `json:"phases,omitempty"`
}

type PhaseCell struct {
	WorkStatus     string     `json:"work_status"`
	ApprovalStatus string     `json:"approval_status"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	Comments       string     `json:"comments,omitempty"`
}

type ListColumnsResponse struct {
	Default order.SortSpec `json:"default"`
	Columns []order.Column `json:"columns"`
}

type GetReviewInfoParams struct {
	Name     string       `json:"name"`
	Relation string       `json:"relation"`
	Phase    review.Phase `json:"phase"`
}

type GetReviewInfoResponse struct {
	Project string      `json:"project"`
	Key     string      `json:"key"`
	Info    review.Info `json:"info"`
	Comment string      `json:"comment_text,omitempty"`
}

type GetRecentActivityParams struct {
	ProjectKey string `json:"project_key,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	Type       string `json:"type,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

type ActivityEntryResponse struct {
	Timestamp time.Time             `json:"timestamp"`
	Type      activity.ActivityType `json:"type"`
	Project   string                `json:"project"`
	SessionID string                `json:"session_id,omitempty"`
	Summary   string                `json:"summary"`
	Pages     int                   `json:"pages,omitempty"`
	Assets    int                   `json:"assets,omitempty"`
	Error     string                `json:"error,omitempty"`
}
