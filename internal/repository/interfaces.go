package repository

import (
	"context"

	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/rpggio/assetboard/internal/domain/review"
)

// ReviewRepository manages review snapshot persistence
type ReviewRepository interface {
	Replace(ctx context.Context, projectKey string, lookup review.Lookup) error
	Lookup(ctx context.Context, projectKey string) (review.Lookup, error)
	Get(ctx context.Context, projectKey, key string) (*review.Info, error)
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

var (
	_ review.Repository   = ReviewRepository(nil)
	_ activity.Repository = ActivityRepository(nil)
)
