package board

import (
	"context"

	"github.com/rpggio/assetboard/internal/domain/review"
)

// ReviewSource supplies the review snapshot joined against a project's assets.
type ReviewSource interface {
	Lookup(ctx context.Context, projectKey string) (review.Lookup, error)
}
