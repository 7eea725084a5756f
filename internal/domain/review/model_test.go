package review_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	require.Equal(t, "chrA-master-mdl", review.Key("chrA", "master", review.PhaseModel))
}

func TestLookup_Get(t *testing.T) {
	lookup := review.Lookup{
		"chrA-master-rig": {WorkStatus: "check"},
	}

	info, ok := lookup.Get("chrA", "master", review.PhaseRig)
	require.True(t, ok)
	require.Equal(t, "check", info.WorkStatus)

	_, ok = lookup.Get("chrA", "master", review.PhaseModel)
	require.False(t, ok)

	var empty review.Lookup
	_, ok = empty.Get("chrA", "master", review.PhaseRig)
	require.False(t, ok)
}

func TestInfo_CommentText(t *testing.T) {
	info := review.Info{Comments: []review.Comment{
		{Language: "en", Text: "fix the hands"},
		{Language: "ja", Text: ""},
		{Language: "ja", Text: "手を直す"},
	}}
	require.Equal(t, "en:\nfix the hands\nja:\n手を直す", info.CommentText())
	require.Equal(t, "", review.Info{}.CommentText())
}

func TestInfo_DecodeWireShape(t *testing.T) {
	var info review.Info
	err := json.Unmarshal([]byte(`{
		"work_status": "svApproved",
		"approval_status": "dirReview",
		"submitted_at_utc": "2024-05-01T10:00:00Z",
		"review_comments": [{"language": "en", "text": "ok"}]
	}`), &info)
	require.NoError(t, err)
	require.Equal(t, "svApproved", info.WorkStatus)
	require.NotNil(t, info.SubmittedAt)
	require.True(t, info.SubmittedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	require.Len(t, info.Comments, 1)
}

func TestPhases(t *testing.T) {
	for _, p := range review.Phases() {
		require.True(t, p.Valid())
	}
	require.False(t, review.Phase("cmp").Valid())
}
