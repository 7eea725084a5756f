package board

import (
	"encoding/json"

	"github.com/rpggio/assetboard/internal/domain/asset"
	"github.com/rpggio/assetboard/internal/domain/collect"
	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
)

// Status summarises the collector state for a consumer.
type Status struct {
	Project    string            `json:"project,omitempty"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
	ErrorKind  collect.ErrorKind `json:"error_kind,omitempty"`
	HTTPStatus int               `json:"http_status,omitempty"`
	Count      int               `json:"count"`
}

// StatusOf converts a collector state.
func StatusOf(st collect.State) Status {
	status := Status{
		Project: st.ProjectKey,
		Loading: st.Loading,
		Count:   len(st.Assets),
	}
	if st.Err != nil {
		status.Error = st.Err.Error()
		status.ErrorKind = collect.KindOf(st.Err)
		status.HTTPStatus = collect.StatusOf(st.Err)
	}
	return status
}

// View is an ordered snapshot of the board.
type View struct {
	Status Status         `json:"status"`
	Sort   order.SortSpec `json:"sort"`
	Rows   []Row          `json:"rows"`
}

// Row is one asset joined with its per-phase review info.
type Row struct {
	Key      string                       `json:"key"`
	Name     string                       `json:"name"`
	Relation string                       `json:"relation"`
	Fields   map[string]json.RawMessage   `json:"fields,omitempty"`
	Reviews  map[review.Phase]review.Info `json:"reviews,omitempty"`
}

// BuildRows joins ordered assets with the lookup.
func BuildRows(assets []asset.Asset, lookup review.Lookup) []Row {
	rows := make([]Row, 0, len(assets))
	for _, a := range assets {
		row := Row{Key: a.Key(), Name: a.Name, Relation: a.Relation, Fields: a.Fields}
		for _, phase := range review.Phases() {
			info, ok := lookup.Get(a.Name, a.Relation, phase)
			if !ok {
				continue
			}
			if row.Reviews == nil {
				row.Reviews = make(map[review.Phase]review.Info)
			}
			row.Reviews[phase] = info
		}
		rows = append(rows, row)
	}
	return rows
}
