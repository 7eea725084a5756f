package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/assetboard/internal/domain/collect"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// LogActivity logs an activity entry, filling in the id and timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering, newest first.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	return s.repo.List(ctx, opts)
}

// RecordEvent turns a retrieval lifecycle event into an activity entry.
// It matches collect.Config.OnEvent; failures are logged, not returned.
func (s *Service) RecordEvent(ev collect.Event) {
	entry := EntryFromEvent(ev)
	if err := s.LogActivity(context.Background(), entry); err != nil {
		s.logger.Warn("activity not recorded", "type", ev.Type, "session", ev.SessionID, "error", err)
	}
}

// EntryFromEvent builds the activity entry describing ev.
func EntryFromEvent(ev collect.Event) *ActivityEntry {
	entry := &ActivityEntry{
		ProjectKey:   ev.ProjectKey,
		SessionID:    ev.SessionID,
		ActivityType: ActivityType(ev.Type),
		Pages:        ev.Stats.Pages,
		Assets:       ev.Stats.Assets,
		CreatedAt:    ev.At,
	}
	switch ev.Type {
	case collect.EventStarted:
		entry.Summary = fmt.Sprintf("Started retrieving %s", ev.ProjectKey)
	case collect.EventCompleted:
		entry.Summary = fmt.Sprintf("Retrieved %d assets for %s in %d pages", ev.Stats.Assets, ev.ProjectKey, ev.Stats.Pages)
	case collect.EventFailed:
		entry.Summary = fmt.Sprintf("Retrieval for %s failed after %d pages", ev.ProjectKey, ev.Stats.Pages)
	case collect.EventSuperseded:
		entry.Summary = fmt.Sprintf("Retrieval for %s superseded", ev.ProjectKey)
	default:
		entry.Summary = string(ev.Type)
	}
	if ev.Err != nil {
		entry.Error = ev.Err.Error()
	}
	return entry
}
