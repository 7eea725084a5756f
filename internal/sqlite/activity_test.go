package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/rpggio/assetboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entry1 := &activity.ActivityEntry{
		ID:           "e1",
		ProjectKey:   "p1",
		SessionID:    "s1",
		ActivityType: activity.TypeSessionStarted,
		Summary:      "Started retrieving p1",
		CreatedAt:    base,
	}
	entry2 := &activity.ActivityEntry{
		ID:           "e2",
		ProjectKey:   "p1",
		SessionID:    "s1",
		ActivityType: activity.TypeSessionFailed,
		Summary:      "Retrieval for p1 failed after 2 pages",
		Pages:        2,
		Assets:       400,
		Error:        "unauthorized",
		CreatedAt:    base.Add(1500 * time.Millisecond),
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectKey: "p1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "e2", entries[0].ID)
	require.Equal(t, "e1", entries[1].ID)
	require.Equal(t, 2, entries[0].Pages)
	require.Equal(t, 400, entries[0].Assets)
	require.Equal(t, "unauthorized", entries[0].Error)
	require.True(t, entry2.CreatedAt.Equal(entries[0].CreatedAt))
	require.Empty(t, entries[1].Error)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	log := func(id, project, session string, typ activity.ActivityType, offset time.Duration) {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
			ID: id, ProjectKey: project, SessionID: session, ActivityType: typ, Summary: id, CreatedAt: base.Add(offset),
		}))
	}
	log("a", "p1", "s1", activity.TypeSessionStarted, 0)
	log("b", "p2", "s2", activity.TypeSessionStarted, time.Second)
	log("c", "p1", "s1", activity.TypeSessionCompleted, 2*time.Second)
	log("d", "p1", "", activity.TypeReviewsImported, 3*time.Second)

	completed := activity.TypeSessionCompleted
	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectKey: "p1", SessionID: "s1", ActivityType: &completed})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "c", entries[0].ID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, entryIDs(entries))

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 3})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, entryIDs(entries))

	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectKey: "p3"})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestActivityRepository_LogRequiresID(t *testing.T) {
	repo := NewActivityRepository(NewTestDB(t))
	err := repo.Log(context.Background(), &activity.ActivityEntry{ActivityType: activity.TypeSessionStarted})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestActivityRepository_WithService(t *testing.T) {
	svc := activity.NewService(NewActivityRepository(NewTestDB(t)), nil)
	ctx := context.Background()

	require.NoError(t, svc.LogActivity(ctx, &activity.ActivityEntry{ProjectKey: "p1", ActivityType: activity.TypeSessionStarted, Summary: "go"}))

	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotEmpty(t, entries[0].ID)
}

func entryIDs(entries []activity.ActivityEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
