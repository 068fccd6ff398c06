package repository

import "context"

// FavoriteRepository defines persistence for per-user favorites
type FavoriteRepository interface {
	// ListSpotIDs returns the spot IDs favorited by a user, newest first
	ListSpotIDs(ctx context.Context, userID string) ([]string, error)

	// Add records a favorite; adding an existing favorite is a no-op
	Add(ctx context.Context, userID, spotID string) error

	// Remove deletes a favorite; removing a missing favorite is a no-op
	Remove(ctx context.Context, userID, spotID string) error
}
