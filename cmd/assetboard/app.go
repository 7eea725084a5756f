package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/assetboard/internal/config"
	"github.com/rpggio/assetboard/internal/domain/activity"
	"github.com/rpggio/assetboard/internal/domain/board"
	"github.com/rpggio/assetboard/internal/domain/collect"
	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/rpggio/assetboard/internal/sqlite"
	"github.com/rpggio/assetboard/internal/transport"
)

// app holds the wired services for one command invocation.
type app struct {
	db        *sqlite.DB
	reviews   *review.Service
	activity  *activity.Service
	client    *transport.Client
	collector *collect.Collector
	board     *board.Service
	logger    *slog.Logger
}

const closeTimeout = 5 * time.Second

type activityStore int

const (
	activityInMemory activityStore = iota
	activityPersistent
)

func newApp(cfg config.Config, logger *slog.Logger, store activityStore) (*app, error) {
	if err := ensureParentDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	var activityRepo activity.Repository = activity.NewMemoryRepository(0)
	if store == activityPersistent {
		activityRepo = sqlite.NewActivityRepository(db)
	}
	activitySvc := activity.NewService(activityRepo, logger)
	reviewSvc := review.NewService(sqlite.NewReviewRepository(db), logger)

	client, err := transport.NewClient(cfg.API.BaseURL, cfg.API.Timeout, transport.WithLogger(logger))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating api client: %w", err)
	}
	collector, err := collect.New(collect.Config{
		Fetcher:  client,
		PageSize: cfg.API.PageSize,
		Logger:   logger,
		OnEvent:  activitySvc.RecordEvent,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating collector: %w", err)
	}

	return &app{
		db:        db,
		reviews:   reviewSvc,
		activity:  activitySvc,
		client:    client,
		collector: collector,
		board:     board.NewService(collector, reviewSvc, logger),
		logger:    logger,
	}, nil
}

// Close stops the board and waits for a superseded retrieval to log its final
// activity before the database goes away.
func (a *app) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := a.board.Shutdown(ctx); err != nil {
		a.logger.Warn("retrieval still running at close", "error", err)
	}
	return a.db.Close()
}
