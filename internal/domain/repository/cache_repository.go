package repository

import (
	"context"
	"time"
)

// CacheRepository defines methods for the response cache
type CacheRepository interface {
	// Get fetches a value by key; a miss returns (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key under a prefix (snapshot invalidation)
	DeleteByPrefix(ctx context.Context, prefix string) error
}
