package review

import "context"

// Repository stores per-project review snapshots.
type Repository interface {
	// Replace swaps the whole snapshot of a project.
	Replace(ctx context.Context, projectKey string, lookup Lookup) error
	// Lookup returns the snapshot of a project, empty if none was imported.
	Lookup(ctx context.Context, projectKey string) (Lookup, error)
	// Get returns one entry or repository.ErrNotFound.
	Get(ctx context.Context, projectKey, key string) (*Info, error)
}
