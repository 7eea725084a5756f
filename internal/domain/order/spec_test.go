package order_test

import (
	"testing"

	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/stretchr/testify/require"
)

func TestParseSortExpression(t *testing.T) {
	tests := []struct {
		expr    string
		want    order.SortSpec
		wantErr error
	}{
		{expr: "", want: order.SortSpec{}},
		{expr: "  ", want: order.SortSpec{}},
		{expr: "name", want: order.SortSpec{Column: "name", Direction: order.Asc}},
		{expr: "mdl_submitted_at:desc", want: order.SortSpec{Column: "mdl_submitted_at", Direction: order.Desc}},
		{expr: "relation: ASC ", want: order.SortSpec{Column: "relation", Direction: order.Asc}},
		{expr: "name:up", wantErr: order.ErrInvalidSortOrder},
		{expr: "thumbnail", wantErr: order.ErrInvalidSortColumn},
		{expr: "a:b:c", wantErr: order.ErrInvalidSortFormat},
		{expr: ":desc", wantErr: order.ErrInvalidSortFormat},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := order.ParseSortExpression(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSortSpec_String(t *testing.T) {
	require.Equal(t, "", order.SortSpec{}.String())
	require.Equal(t, "relation:asc", order.SortSpec{Column: "relation"}.String())
	require.Equal(t, "group_1_name:asc", order.DefaultSpec().String())
}

func TestColumns(t *testing.T) {
	cols := order.Columns()
	require.Len(t, cols, 2+3*len(review.Phases()))
	require.Equal(t, "group_1_name", cols[0].ID)
	require.Equal(t, "relation", cols[len(cols)-1].ID)
	require.False(t, cols[0].Derived())

	col, ok := order.LookupColumn("rig_approval_status")
	require.True(t, ok)
	require.True(t, col.Derived())
	require.Equal(t, review.PhaseRig, col.Phase)
	require.Equal(t, order.KindApprovalStatus, col.Kind)
	require.Equal(t, "RIG APPR", col.Label)

	alias, ok := order.LookupColumn("name")
	require.True(t, ok)
	require.Equal(t, "group_1_name", alias.ID)

	require.False(t, order.IsValidColumn("thumbnail"))
}
