package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rpggio/assetboard/internal/domain/collect"
	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/rpggio/assetboard/internal/domain/review"
)

// Service is the single consumer of a Collector: it selects projects and
// serves ordered views joined with review info.
type Service struct {
	collector *collect.Collector
	reviews   ReviewSource
	logger    *slog.Logger
}

// NewService creates a board service. reviews may be nil, in which case every
// derived column is missing.
func NewService(collector *collect.Collector, reviews ReviewSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{collector: collector, reviews: reviews, logger: logger}
}

// Select retargets the board. An empty key clears it.
func (s *Service) Select(_ context.Context, projectKey string) *collect.Handle {
	s.logger.Debug("project selected", "project", projectKey)
	return s.collector.Start(projectKey)
}

// Status returns the current collector status.
func (s *Service) Status() Status {
	return StatusOf(s.collector.State())
}

// Subscribe forwards the collector's change feed.
func (s *Service) Subscribe() (<-chan collect.State, func()) {
	return s.collector.Subscribe()
}

// View orders the current assets. An empty spec sorts by the default column.
// It fails with ErrNoProject or ErrLoading, and with the retrieval error when the
// last retrieval failed.
func (s *Service) View(ctx context.Context, spec order.SortSpec) (*View, error) {
	st := s.collector.State()
	switch {
	case st.Idle():
		return nil, ErrNoProject
	case st.Loading:
		return nil, ErrLoading
	case st.Err != nil:
		return nil, st.Err
	}

	if spec.Column == "" {
		spec = order.DefaultSpec()
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	lookup, err := s.lookup(ctx, st.ProjectKey)
	if err != nil {
		return nil, err
	}

	ordered := order.Order(st.Assets, spec, lookup)
	return &View{
		Status: StatusOf(st),
		Sort:   spec,
		Rows:   BuildRows(ordered, lookup),
	}, nil
}

func (s *Service) lookup(ctx context.Context, projectKey string) (review.Lookup, error) {
	if s.reviews == nil {
		return review.Lookup{}, nil
	}
	lookup, err := s.reviews.Lookup(ctx, projectKey)
	if err != nil {
		return nil, fmt.Errorf("loading review info: %w", err)
	}
	return lookup, nil
}

// Close stops observing. An in-flight retrieval is superseded.
func (s *Service) Close() {
	s.collector.Stop()
}

// Shutdown is Close that also waits, bounded by ctx, for a superseded
// retrieval to report its final event.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.collector.Shutdown(ctx)
}
