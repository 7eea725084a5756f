package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/assetboard/internal/domain/board"
	"github.com/rpggio/assetboard/internal/domain/collect"
	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/rpggio/assetboard/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrInvalidParams is returned when tool arguments cannot be decoded.
var ErrInvalidParams = errors.New("invalid params")

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var te *collect.TransportError
	switch {
	case errors.Is(err, collect.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "review API rejected the request", RecoveryHint: "Sign in to the review service, then select the project again"}
	case errors.As(err, &te):
		details := map[string]any{"http_status": te.Status}
		return &APIError{Code: "TRANSPORT_ERROR", Message: err.Error(), Details: details, RecoveryHint: "Select the project again to retry"}
	case errors.Is(err, board.ErrNoProject):
		return &APIError{Code: "NO_PROJECT", Message: "no project selected", RecoveryHint: "Call select_project first"}
	case errors.Is(err, board.ErrLoading):
		return &APIError{Code: "LOADING", Message: "assets are still loading", RecoveryHint: "Call get_status until loading is false, or select_project with wait=true"}
	case errors.Is(err, order.ErrInvalidSortColumn):
		return &APIError{Code: "INVALID_SORT", Message: err.Error(), RecoveryHint: "Call list_columns for valid column ids"}
	case errors.Is(err, order.ErrInvalidSortOrder), errors.Is(err, order.ErrInvalidSortFormat):
		return &APIError{Code: "INVALID_SORT", Message: err.Error(), RecoveryHint: "Use column or column:asc|desc"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "no review info for this asset and phase"}
	case errors.Is(err, review.ErrInvalidInput), errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}
