package order_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rpggio/assetboard/internal/domain/asset"
	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/stretchr/testify/require"
)

func names(assets []asset.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Name+"/"+a.Relation)
	}
	return out
}

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return &parsed
}

func TestOrder_NameDescending(t *testing.T) {
	assets := []asset.Asset{{Name: "A", Relation: "r1"}, {Name: "B", Relation: "r1"}}

	sorted := order.Order(assets, order.SortSpec{Column: "name", Direction: order.Desc}, nil)
	require.Equal(t, []string{"B/r1", "A/r1"}, names(sorted))
}

func TestOrder_MissingReviewInfoSortsLastInBothDirections(t *testing.T) {
	assets := []asset.Asset{{Name: "A", Relation: "r1"}, {Name: "B", Relation: "r1"}}
	lookup := review.Lookup{
		review.Key("A", "r1", review.PhaseModel): {WorkStatus: "check"},
	}

	for _, dir := range []order.Direction{order.Asc, order.Desc} {
		sorted := order.Order(assets, order.SortSpec{Column: "mdl_work_status", Direction: dir}, lookup)
		require.Equal(t, []string{"A/r1", "B/r1"}, names(sorted), "direction %s", dir)

		reversed := order.Order([]asset.Asset{assets[1], assets[0]}, order.SortSpec{Column: "mdl_work_status", Direction: dir}, lookup)
		require.Equal(t, []string{"A/r1", "B/r1"}, names(reversed), "direction %s", dir)
	}
}

func TestOrder_NoColumnKeepsInputOrder(t *testing.T) {
	assets := []asset.Asset{{Name: "C"}, {Name: "A"}, {Name: "B"}}

	for _, dir := range []order.Direction{"", order.Asc, order.Desc, "sideways"} {
		sorted := order.Order(assets, order.SortSpec{Direction: dir}, nil)
		require.Equal(t, names(assets), names(sorted))
	}
}

func TestOrder_MalformedSpecKeepsInputOrder(t *testing.T) {
	assets := []asset.Asset{{Name: "C"}, {Name: "A"}, {Name: "B"}}

	require.Equal(t, names(assets), names(order.Order(assets, order.SortSpec{Column: "thumbnail", Direction: order.Asc}, nil)))
	require.Equal(t, names(assets), names(order.Order(assets, order.SortSpec{Column: "name", Direction: "up"}, nil)))
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	assets := []asset.Asset{{Name: "C"}, {Name: "A"}, {Name: "B"}}
	before := names(assets)

	sorted := order.Order(assets, order.SortSpec{Column: "name", Direction: order.Asc}, nil)
	require.Equal(t, []string{"A/", "B/", "C/"}, names(sorted))
	require.Equal(t, before, names(assets))

	sorted[0].Name = "Z"
	require.Equal(t, "C", assets[0].Name)
}

func TestOrder_EmptyDirectionIsAscending(t *testing.T) {
	assets := []asset.Asset{{Name: "B"}, {Name: "A"}}
	require.Equal(t, []string{"A/", "B/"}, names(order.Order(assets, order.SortSpec{Column: "group_1_name"}, nil)))
}

func TestOrder_RelationColumnTieBreaksByName(t *testing.T) {
	assets := []asset.Asset{
		{Name: "B", Relation: "master"},
		{Name: "A", Relation: "variant"},
		{Name: "A", Relation: "master"},
	}

	asc := order.Order(assets, order.SortSpec{Column: "relation", Direction: order.Asc}, nil)
	require.Equal(t, []string{"A/master", "B/master", "A/variant"}, names(asc))

	desc := order.Order(assets, order.SortSpec{Column: "relation", Direction: order.Desc}, nil)
	require.Equal(t, []string{"A/variant", "A/master", "B/master"}, names(desc))
}

func TestOrder_TieBreakIsAscendingIdentity(t *testing.T) {
	assets := []asset.Asset{
		{Name: "C", Relation: "r1"},
		{Name: "A", Relation: "r2"},
		{Name: "A", Relation: "r1"},
		{Name: "B", Relation: "r1"},
	}
	lookup := review.Lookup{}
	for _, a := range assets {
		lookup[review.Key(a.Name, a.Relation, review.PhaseRig)] = review.Info{ApprovalStatus: "dirReview"}
	}

	for _, dir := range []order.Direction{order.Asc, order.Desc} {
		sorted := order.Order(assets, order.SortSpec{Column: "rig_approval_status", Direction: dir}, lookup)
		require.Equal(t, []string{"A/r1", "A/r2", "B/r1", "C/r1"}, names(sorted))
	}

	// Both missing also ties.
	sorted := order.Order(assets, order.SortSpec{Column: "bld_approval_status", Direction: order.Desc}, lookup)
	require.Equal(t, []string{"A/r1", "A/r2", "B/r1", "C/r1"}, names(sorted))
}

func TestOrder_SubmittedAtComparesInstants(t *testing.T) {
	assets := []asset.Asset{{Name: "tokyo"}, {Name: "utc"}, {Name: "never"}, {Name: "absent"}}
	lookup := review.Lookup{
		// 01:00Z, printed later than 05:00Z as text
		review.Key("tokyo", "", review.PhaseLookdev): {SubmittedAt: ts(t, "2024-01-01T10:00:00+09:00")},
		review.Key("utc", "", review.PhaseLookdev):   {SubmittedAt: ts(t, "2024-01-01T05:00:00Z")},
		review.Key("never", "", review.PhaseLookdev): {WorkStatus: "check"},
	}

	asc := order.Order(assets, order.SortSpec{Column: "ldv_submitted_at", Direction: order.Asc}, lookup)
	require.Equal(t, []string{"tokyo/", "utc/", "absent/", "never/"}, names(asc))

	desc := order.Order(assets, order.SortSpec{Column: "ldv_submitted_at", Direction: order.Desc}, lookup)
	require.Equal(t, []string{"utc/", "tokyo/", "absent/", "never/"}, names(desc))
}

func TestOrder_StatusColumnsUseTheirOwnPhase(t *testing.T) {
	assets := []asset.Asset{{Name: "A"}, {Name: "B"}}
	lookup := review.Lookup{
		review.Key("A", "", review.PhaseDesign): {WorkStatus: "svRetake", ApprovalStatus: "clientApproved"},
		review.Key("B", "", review.PhaseDesign): {WorkStatus: "check", ApprovalStatus: "dirReview"},
		review.Key("A", "", review.PhaseModel):  {WorkStatus: "aaa"},
	}

	work := order.Order(assets, order.SortSpec{Column: "dsn_work_status", Direction: order.Asc}, lookup)
	require.Equal(t, []string{"B/", "A/"}, names(work))

	approval := order.Order(assets, order.SortSpec{Column: "dsn_approval_status", Direction: order.Asc}, lookup)
	require.Equal(t, []string{"A/", "B/"}, names(approval))
}

func TestOrder_Idempotent(t *testing.T) {
	assets, lookup := randomBoard(rand.New(rand.NewPCG(1, 2)), 120)

	for _, col := range order.ColumnIDs() {
		for _, dir := range []order.Direction{order.Asc, order.Desc} {
			spec := order.SortSpec{Column: col, Direction: dir}
			once := order.Order(assets, spec, lookup)
			twice := order.Order(once, spec, lookup)
			require.Equal(t, names(once), names(twice), "spec %s", spec)
		}
	}
}

func TestOrder_ResultIndependentOfInputOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	assets, lookup := randomBoard(rng, 80)

	for _, col := range order.ColumnIDs() {
		spec := order.SortSpec{Column: col, Direction: order.Desc}
		want := names(order.Order(assets, spec, lookup))

		shuffled := append([]asset.Asset(nil), assets...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		require.Equal(t, want, names(order.Order(shuffled, spec, lookup)), "spec %s", spec)
	}
}

func TestOrder_MissingAlwaysAfterPresent(t *testing.T) {
	assets, lookup := randomBoard(rand.New(rand.NewPCG(3, 5)), 100)

	for _, dir := range []order.Direction{order.Asc, order.Desc} {
		sorted := order.Order(assets, order.SortSpec{Column: "rig_submitted_at", Direction: dir}, lookup)
		seenMissing := false
		for _, a := range sorted {
			info, ok := lookup.Get(a.Name, a.Relation, review.PhaseRig)
			present := ok && info.SubmittedAt != nil
			if !present {
				seenMissing = true
				continue
			}
			require.False(t, seenMissing, "present key %s after a missing one (%s)", a.Key(), dir)
		}
	}
}

func randomBoard(rng *rand.Rand, n int) ([]asset.Asset, review.Lookup) {
	statuses := []string{"check", "svRetake", "svApproved", "leadOther", ""}
	relations := []string{"master", "variant", "lod"}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assets := make([]asset.Asset, 0, n)
	lookup := review.Lookup{}
	seen := map[string]bool{}
	for len(assets) < n {
		a := asset.Asset{
			Name:     string(rune('A'+rng.IntN(20))) + string(rune('a'+rng.IntN(20))),
			Relation: relations[rng.IntN(len(relations))],
		}
		if seen[a.Key()] {
			continue
		}
		seen[a.Key()] = true
		assets = append(assets, a)

		for _, phase := range review.Phases() {
			if rng.IntN(3) == 0 {
				continue
			}
			info := review.Info{
				WorkStatus:     statuses[rng.IntN(len(statuses))],
				ApprovalStatus: statuses[rng.IntN(len(statuses))],
			}
			if rng.IntN(4) != 0 {
				at := base.Add(time.Duration(rng.IntN(72)) * time.Hour)
				info.SubmittedAt = &at
			}
			lookup[review.Key(a.Name, a.Relation, phase)] = info
		}
	}
	return assets, lookup
}
