package order

import "github.com/rpggio/assetboard/internal/domain/review"

// ColumnKind says how a column's sort key is resolved.
type ColumnKind string

const (
	// KindField reads a field of the asset itself.
	KindField ColumnKind = "field"
	// KindWorkStatus reads the phase review's work status.
	KindWorkStatus ColumnKind = "work_status"
	// KindApprovalStatus reads the phase review's approval status.
	KindApprovalStatus ColumnKind = "approval_status"
	// KindSubmittedAt reads the phase review's submission time.
	KindSubmittedAt ColumnKind = "submitted_at"
)

// Column is a sortable column of the asset board.
type Column struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Kind  ColumnKind   `json:"kind"`
	Field string       `json:"field,omitempty"`
	Phase review.Phase `json:"phase,omitempty"`
}

// Derived reports whether the column is resolved through review info.
func (c Column) Derived() bool {
	return c.Kind != KindField
}

const (
	fieldName     = "name"
	fieldRelation = "relation"
)

var columnAliases = map[string]string{
	"name": "group_1_name",
}

// Columns returns the recognised columns in board order.
func Columns() []Column {
	cols := []Column{{ID: "group_1_name", Label: "Name", Kind: KindField, Field: fieldName}}
	for _, phase := range review.Phases() {
		prefix := string(phase)
		label := phaseLabel(phase)
		cols = append(cols,
			Column{ID: prefix + "_work_status", Label: label + " WORK", Kind: KindWorkStatus, Phase: phase},
			Column{ID: prefix + "_approval_status", Label: label + " APPR", Kind: KindApprovalStatus, Phase: phase},
			Column{ID: prefix + "_submitted_at", Label: label + " Submitted At", Kind: KindSubmittedAt, Phase: phase},
		)
	}
	return append(cols, Column{ID: "relation", Label: "Relation", Kind: KindField, Field: fieldRelation})
}

// LookupColumn resolves a column id, including aliases.
func LookupColumn(id string) (Column, bool) {
	if canonical, ok := columnAliases[id]; ok {
		id = canonical
	}
	for _, col := range Columns() {
		if col.ID == id {
			return col, true
		}
	}
	return Column{}, false
}

// IsValidColumn reports whether id names a recognised column.
func IsValidColumn(id string) bool {
	_, ok := LookupColumn(id)
	return ok
}

// ColumnIDs returns the recognised column ids in board order.
func ColumnIDs() []string {
	cols := Columns()
	ids := make([]string, 0, len(cols))
	for _, col := range cols {
		ids = append(ids, col.ID)
	}
	return ids
}

func phaseLabel(p review.Phase) string {
	switch p {
	case review.PhaseModel:
		return "MDL"
	case review.PhaseRig:
		return "RIG"
	case review.PhaseBuild:
		return "BLD"
	case review.PhaseDesign:
		return "DSN"
	case review.PhaseLookdev:
		return "LDV"
	default:
		return string(p)
	}
}
