package asset_test

import (
	"encoding/json"
	"testing"

	"github.com/rpggio/assetboard/internal/domain/asset"
	"github.com/stretchr/testify/require"
)

func TestAsset_UnmarshalKeepsFields(t *testing.T) {
	var a asset.Asset
	err := json.Unmarshal([]byte(`{"name":"chrA","relation":"master","group_1":"chr","lod":2}`), &a)
	require.NoError(t, err)
	require.Equal(t, "chrA", a.Name)
	require.Equal(t, "master", a.Relation)
	require.Equal(t, "chrA-master", a.Key())

	raw, ok := a.Field("lod")
	require.True(t, ok)
	require.JSONEq(t, `2`, string(raw))

	_, ok = a.Field("name")
	require.False(t, ok)
}

func TestAsset_MarshalRoundTripsUnknownFields(t *testing.T) {
	in := `{"name":"propB","relation":"variant","tags":["a","b"]}`
	var a asset.Asset
	require.NoError(t, json.Unmarshal([]byte(in), &a))

	out, err := json.Marshal(a)
	require.NoError(t, err)
	require.JSONEq(t, in, string(out))
}

func TestAsset_UnmarshalRejectsNonObject(t *testing.T) {
	var a asset.Asset
	require.Error(t, json.Unmarshal([]byte(`"chrA"`), &a))
}

func TestCompare(t *testing.T) {
	a := asset.Asset{Name: "A", Relation: "r2"}
	b := asset.Asset{Name: "A", Relation: "r1"}
	c := asset.Asset{Name: "B", Relation: "r0"}

	require.Equal(t, 1, asset.Compare(a, b))
	require.Equal(t, -1, asset.Compare(b, c))
	require.Equal(t, 0, asset.Compare(a, a))
	require.True(t, asset.Less(a, c))
}
