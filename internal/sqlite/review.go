package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/assetboard/internal/domain/review"
	"github.com/rpggio/assetboard/internal/repository"
)

// ReviewRepository implements repository.ReviewRepository for SQLite
type ReviewRepository struct {
	db *DB
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Replace swaps the snapshot of a project in one transaction.
func (r *ReviewRepository) Replace(ctx context.Context, projectKey string, lookup review.Lookup) (err error) {
	if projectKey == "" {
		return repository.ErrInvalidInput
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM review_infos WHERE project_key = ?`, projectKey); err != nil {
		return fmt.Errorf("failed to clear review snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO review_infos (
			project_key, lookup_key, work_status, approval_status, submitted_at, comments
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare review insert: %w", err)
	}
	defer stmt.Close()

	for key, info := range lookup {
		comments, mErr := json.Marshal(commentsOrEmpty(info.Comments))
		if mErr != nil {
			err = fmt.Errorf("failed to encode comments for %s: %w", key, mErr)
			return err
		}
		if _, err = stmt.ExecContext(ctx,
			projectKey,
			key,
			info.WorkStatus,
			info.ApprovalStatus,
			formatTime(info.SubmittedAt),
			string(comments),
		); err != nil {
			return fmt.Errorf("failed to insert review info %s: %w", key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review snapshot: %w", err)
	}
	return nil
}

// Lookup returns the snapshot of a project. A project without a snapshot yields an empty lookup.
func (r *ReviewRepository) Lookup(ctx context.Context, projectKey string) (review.Lookup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT lookup_key, work_status, approval_status, submitted_at, comments
		FROM review_infos
		WHERE project_key = ?
	`, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query review infos: %w", err)
	}
	defer rows.Close()

	lookup := review.Lookup{}
	for rows.Next() {
		key, info, err := scanReviewInfo(rows)
		if err != nil {
			return nil, err
		}
		lookup[key] = *info
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return lookup, nil
}

// Get returns one review info by its composite key.
func (r *ReviewRepository) Get(ctx context.Context, projectKey, key string) (*review.Info, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT lookup_key, work_status, approval_status, submitted_at, comments
		FROM review_infos
		WHERE project_key = ? AND lookup_key = ?
	`, projectKey, key)

	_, info, err := scanReviewInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReviewInfo(s scanner) (string, *review.Info, error) {
	var (
		key         string
		info        review.Info
		submittedAt sql.NullString
		comments    string
	)
	if err := s.Scan(&key, &info.WorkStatus, &info.ApprovalStatus, &submittedAt, &comments); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("failed to scan review info: %w", err)
	}

	if submittedAt.Valid && submittedAt.String != "" {
		t, err := time.Parse(time.RFC3339Nano, submittedAt.String)
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse submitted_at for %s: %w", key, err)
		}
		info.SubmittedAt = &t
	}
	if err := json.Unmarshal([]byte(comments), &info.Comments); err != nil {
		return "", nil, fmt.Errorf("failed to decode comments for %s: %w", key, err)
	}
	return key, &info, nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func commentsOrEmpty(c []review.Comment) []review.Comment {
	if c == nil {
		return []review.Comment{}
	}
	return c
}
