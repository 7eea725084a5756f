package mocks

import (
	"context"

	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/rpggio/assetboard/internal/domain/collect"
	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/stretchr/testify/mock"
)

// PageFetcher is a mock for collect.PageFetcher.
type PageFetcher struct {
	mock.Mock
}

func (m *PageFetcher) FetchPage(ctx context.Context, projectKey string, page, pageSize int) (*collect.Page, error) {
	args := m.Called(ctx, projectKey, page, pageSize)
	if p, ok := args.Get(0).(*collect.Page); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReviewRepository is a mock for repository.ReviewRepository.
type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Replace(ctx context.Context, projectKey string, lookup review.Lookup) error {
	args := m.Called(ctx, projectKey, lookup)
	return args.Error(0)
}

func (m *ReviewRepository) Lookup(ctx context.Context, projectKey string) (review.Lookup, error) {
	args := m.Called(ctx, projectKey)
	if lookup, ok := args.Get(0).(review.Lookup); ok {
		return lookup, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) Get(ctx context.Context, projectKey, key string) (*review.Info, error) {
	args := m.Called(ctx, projectKey, key)
	if info, ok := args.Get(0).(*review.Info); ok {
		return info, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
