package review

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Service imports and serves review snapshots.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new review service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// ParseSnapshot decodes a JSON object mapping "name-relation-phase" keys to review info.
func ParseSnapshot(r io.Reader) (Lookup, error) {
	var lookup Lookup
	dec := json.NewDecoder(r)
	if err := dec.Decode(&lookup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if lookup == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidSnapshot)
	}
	for key := range lookup {
		if !validKey(key) {
			return nil, fmt.Errorf("%w: key %q does not end in a known phase", ErrInvalidSnapshot, key)
		}
	}
	return lookup, nil
}

// validKey checks the phase suffix. Names and relations may contain '-'.
func validKey(key string) bool {
	idx := strings.LastIndex(key, "-")
	if idx <= 0 {
		return false
	}
	return Phase(key[idx+1:]).Valid()
}

// Import replaces the snapshot of projectKey with the document read from r.
func (s *Service) Import(ctx context.Context, projectKey string, r io.Reader) (int, error) {
	if strings.TrimSpace(projectKey) == "" {
		return 0, ErrInvalidInput
	}
	lookup, err := ParseSnapshot(r)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Replace(ctx, projectKey, lookup); err != nil {
		return 0, fmt.Errorf("storing review snapshot: %w", err)
	}
	s.logger.Info("review snapshot imported", "project", projectKey, "entries", len(lookup))
	return len(lookup), nil
}

// Lookup returns the snapshot of projectKey. It satisfies board.ReviewSource.
func (s *Service) Lookup(ctx context.Context, projectKey string) (Lookup, error) {
	if projectKey == "" {
		return Lookup{}, nil
	}
	return s.repo.Lookup(ctx, projectKey)
}

// Get returns the review info of one asset in one phase.
func (s *Service) Get(ctx context.Context, projectKey, name, relation string, phase Phase) (*Info, error) {
	if projectKey == "" || !phase.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.Get(ctx, projectKey, Key(name, relation, phase))
}
