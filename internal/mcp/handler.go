package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/rpggio/assetboard/internal/domain/board"
	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
)

const (
	defaultAssetLimit  = 100
	defaultWaitTimeout = 30 * time.Second
)

// Handler dispatches MCP commands.
type Handler struct {
	board    BoardService
	reviews  ReviewService
	activity ActivityService
	logger   *slog.Logger
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		board:    services.Board,
		reviews:  services.Reviews,
		activity: services.Activity,
		logger:   logger,
	}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	h.logger.Debug("tool call", "method", method, "session_id", clientSession(ctx))

	switch method {
	case "select_project":
		var req SelectProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.selectProject(ctx, req)
	case "get_status":
		return h.board.Status(), nil
	case "list_assets":
		var req ListAssetsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.listAssets(ctx, req)
	case "list_columns":
		return ListColumnsResponse{Default: order.DefaultSpec(), Columns: order.Columns()}, nil
	case "get_review_info":
		var req GetReviewInfoParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.getReviewInfo(ctx, req)
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.getRecentActivity(ctx, req)
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) selectProject(ctx context.Context, req SelectProjectParams) (*SelectProjectResponse, error) {
	handle := h.board.Select(ctx, req.ProjectKey)
	resp := &SelectProjectResponse{SessionID: handle.ID()}

	if req.Wait {
		timeout := defaultWaitTimeout
		if req.TimeoutMS > 0 {
			timeout = time.Duration(req.TimeoutMS) * time.Millisecond
		}
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		resp.Completed = handle.Wait(waitCtx) == nil
	} else {
		select {
		case <-handle.Done():
			resp.Completed = true
		default:
		}
	}

	resp.Status = h.board.Status()
	return resp, nil
}

func (h *Handler) listAssets(ctx context.Context, req ListAssetsParams) (*ListAssetsResponse, error) {
	spec, err := order.ParseSortExpression(req.Sort)
	if err != nil {
		return nil, mapError(err)
	}
	view, err := h.board.View(ctx, spec)
	if err != nil {
		return nil, mapError(err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultAssetLimit
	}
	start := min(max(req.Offset, 0), len(view.Rows))
	end := start + min(limit, len(view.Rows)-start)

	rows := make([]AssetRow, 0, end-start)
	for _, row := range view.Rows[start:end] {
		rows = append(rows, toAssetRow(row))
	}
	return &ListAssetsResponse{
		Status: view.Status,
		Sort:   view.Sort,
		Total:  len(view.Rows),
		Offset: start,
		Rows:   rows,
	}, nil
}

func (h *Handler) getReviewInfo(ctx context.Context, req GetReviewInfoParams) (*GetReviewInfoResponse, error) {
	if h.reviews == nil {
		return nil, mapError(fmt.Errorf("%w: review snapshot not configured", review.ErrInvalidInput))
	}
	project := h.board.Status().Project
	if project == "" {
		return nil, mapError(board.ErrNoProject)
	}
	if req.Name == "" {
		return nil, mapError(fmt.Errorf("%w: name is required", ErrInvalidParams))
	}
	info, err := h.reviews.Get(ctx, project, req.Name, req.Relation, req.Phase)
	if err != nil {
		return nil, mapError(err)
	}
	return &GetReviewInfoResponse{
		Project: project,
		Key:     review.Key(req.Name, req.Relation, req.Phase),
		Info:    *info,
		Comment: info.CommentText(),
	}, nil
}

func (h *Handler) getRecentActivity(ctx context.Context, req GetRecentActivityParams) ([]ActivityEntryResponse, error) {
	if h.activity == nil {
		return []ActivityEntryResponse{}, nil
	}
	opts := activity.ListActivityOptions{
		ProjectKey: req.ProjectKey,
		SessionID:  req.SessionID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if req.Type != "" {
		typ := activity.ActivityType(req.Type)
		opts.ActivityType = &typ
	}
	entries, err := h.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, mapError(err)
	}
	resp := make([]ActivityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, ActivityEntryResponse{
			Timestamp: entry.CreatedAt,
			Type:      entry.ActivityType,
			Project:   entry.ProjectKey,
			SessionID: entry.SessionID,
			Summary:   entry.Summary,
			Pages:     entry.Pages,
			Assets:    entry.Assets,
			Error:     entry.Error,
		})
	}
	return resp, nil
}

func toAssetRow(row board.Row) AssetRow {
	out := AssetRow{Key: row.Key, Name: row.Name, Relation: row.Relation, Fields: row.Fields}
	for phase, info := range row.Reviews {
		if out.Phases == nil {
			out.Phases = make(map[review.Phase]PhaseCell, len(row.Reviews))
		}
		out.Phases[phase] = PhaseCell{
			WorkStatus:     info.WorkStatus,
			ApprovalStatus: info.ApprovalStatus,
			SubmittedAt:    info.SubmittedAt,
			Comments:       info.CommentText(),
		}
	}
	return out
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return mapError(fmt.Errorf("%w: %v", ErrInvalidParams, err))
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
