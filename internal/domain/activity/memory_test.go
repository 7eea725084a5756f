package activity_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_NewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	repo := activity.NewMemoryRepository(3)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
			ID:           fmt.Sprintf("e%d", i),
			ProjectKey:   "proj",
			ActivityType: activity.TypeSessionStarted,
		}))
	}

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"e5", "e4", "e3"}, ids(entries))
}

func TestMemoryRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := activity.NewMemoryRepository(0)

	log := func(id, project, session string, typ activity.ActivityType) {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ID: id, ProjectKey: project, SessionID: session, ActivityType: typ}))
	}
	log("a", "p1", "s1", activity.TypeSessionStarted)
	log("b", "p2", "s2", activity.TypeSessionStarted)
	log("c", "p1", "s1", activity.TypeSessionCompleted)
	log("d", "p1", "s3", activity.TypeSessionStarted)

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectKey: "p1"})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "c", "a"}, ids(entries))

	started := activity.TypeSessionStarted
	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectKey: "p1", ActivityType: &started})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "a"}, ids(entries))

	entries, err = repo.List(ctx, activity.ListActivityOptions{SessionID: "s1", Limit: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, ids(entries))

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, ids(entries))

	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectKey: "nope"})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestMemoryRepository_RejectsNil(t *testing.T) {
	require.ErrorIs(t, activity.NewMemoryRepository(1).Log(context.Background(), nil), activity.ErrInvalidInput)
}

func ids(entries []activity.ActivityEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
