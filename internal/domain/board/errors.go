package board

import "errors"

var (
	// ErrNoProject is returned when a view is requested before a project is selected.
	ErrNoProject = errors.New("no project selected")
	// ErrLoading is returned when a view is requested while a retrieval is in flight.
	ErrLoading = errors.New("assets are still loading")
)
