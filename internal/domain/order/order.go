package order

import (
	"slices"
	"strings"
	"time"

	"github.com/rpggio/assetboard/internal/domain/asset"
	"github.com/rpggio/assetboard/internal/domain/review"
)

// sortKey is a resolved column value tagged present or missing.
// Missing keys sort after every present key in both directions.
type sortKey struct {
	present bool
	timed   bool
	text    string
	instant time.Time
}

func compareKeys(a, b sortKey, sign int) int {
	switch {
	case !a.present && !b.present:
		return 0
	case !a.present:
		return 1
	case !b.present:
		return -1
	}
	if a.timed {
		return a.instant.Compare(b.instant) * sign
	}
	return strings.Compare(a.text, b.text) * sign
}

func resolveKey(col Column, a asset.Asset, lookup review.Lookup) sortKey {
	if col.Kind == KindField {
		switch col.Field {
		case fieldName:
			return sortKey{present: true, text: a.Name}
		case fieldRelation:
			return sortKey{present: true, text: a.Relation}
		default:
			return sortKey{}
		}
	}

	info, ok := lookup.Get(a.Name, a.Relation, col.Phase)
	if !ok {
		return sortKey{}
	}
	switch col.Kind {
	case KindWorkStatus:
		return sortKey{present: true, text: info.WorkStatus}
	case KindApprovalStatus:
		return sortKey{present: true, text: info.ApprovalStatus}
	case KindSubmittedAt:
		if info.SubmittedAt == nil {
			return sortKey{}
		}
		return sortKey{present: true, timed: true, instant: *info.SubmittedAt}
	default:
		return sortKey{}
	}
}

type keyedAsset struct {
	asset asset.Asset
	key   sortKey
}

// Order returns a new slice of assets sorted by spec. The input is not modified.
// An empty or unrecognised spec keeps the input order. Equal keys fall back to
// (Name, Relation) ascending, so the result is fully deterministic.
func Order(assets []asset.Asset, spec SortSpec, lookup review.Lookup) []asset.Asset {
	out := slices.Clone(assets)
	if spec.Column == "" || spec.Validate() != nil {
		return out
	}
	col, _ := LookupColumn(spec.Column)

	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}

	keyed := make([]keyedAsset, len(out))
	for i, a := range out {
		keyed[i] = keyedAsset{asset: a, key: resolveKey(col, a, lookup)}
	}

	slices.SortStableFunc(keyed, func(x, y keyedAsset) int {
		if c := compareKeys(x.key, y.key, sign); c != 0 {
			return c
		}
		return asset.Compare(x.asset, y.asset)
	})

	for i := range keyed {
		out[i] = keyed[i].asset
	}
	return out
}
