package order

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultColumn is the column the board sorts by when nothing is chosen.
const DefaultColumn = "group_1_name"

var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'column' or 'column:order'")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortColumn = errors.New("invalid sort column")
)

// SortSpec selects a column and direction. An empty Column keeps input order.
type SortSpec struct {
	Column    string    `json:"column,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// DefaultSpec sorts by name ascending.
func DefaultSpec() SortSpec {
	return SortSpec{Column: DefaultColumn, Direction: Asc}
}

// Validate reports whether s names a known column and direction.
// An empty column is valid and means no sort.
func (s SortSpec) Validate() error {
	if s.Column == "" {
		return nil
	}
	if !IsValidColumn(s.Column) {
		return fmt.Errorf("%w: %q", ErrInvalidSortColumn, s.Column)
	}
	switch s.Direction {
	case "", Asc, Desc:
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s.Direction)
	}
}

func (s SortSpec) String() string {
	if s.Column == "" {
		return ""
	}
	dir := s.Direction
	if dir == "" {
		dir = Asc
	}
	return s.Column + ":" + string(dir)
}

const sortPartsMax = 2

// ParseSortExpression parses "column" or "column:order". An empty expression
// yields the zero SortSpec (keep input order). Order defaults to asc.
func ParseSortExpression(expr string) (SortSpec, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return SortSpec{}, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	spec := SortSpec{Column: strings.TrimSpace(parts[0]), Direction: Asc}
	if spec.Column == "" {
		return SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}
	if len(parts) == sortPartsMax {
		spec.Direction = Direction(strings.ToLower(strings.TrimSpace(parts[1])))
	}

	if err := spec.Validate(); err != nil {
		return SortSpec{}, err
	}
	return spec, nil
}
