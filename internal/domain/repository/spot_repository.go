package repository

import (
	"context"

	"github.com/family-spots/internal/domain"
)

// SpotRepository defines persistence for spot records
type SpotRepository interface {
	// GetAll returns every persisted spot (snapshot load)
	GetAll(ctx context.Context) ([]*domain.Spot, error)

	// GetByID returns a single spot or errors.ErrSpotNotFound
	GetByID(ctx context.Context, id string) (*domain.Spot, error)

	// GetByIDs returns the spots matching the given IDs, preserving input order
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Spot, error)

	// Upsert inserts or updates a spot record
	Upsert(ctx context.Context, spot *domain.Spot) error
}

// SnapshotStore holds the current immutable view of the spot dataset
type SnapshotStore interface {
	// Current returns the active snapshot, or nil before the first load
	Current() *domain.SpotSnapshot

	// Replace atomically publishes a new snapshot and returns its version
	Replace(spots []*domain.Spot) *domain.SpotSnapshot
}
