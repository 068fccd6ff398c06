package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/family-spots/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis wraps the single client shared by the search-page cache and the
// spot event streams.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis connects to the instance holding cached search pages and the
// upsert/changed streams. The ping keeps a misconfigured instance from
// surfacing later as silent cache misses.
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("db", cfg.DB),
	)

	return &Redis{
		client: client,
		logger: logger,
	}, nil
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

// Health pings the server; the api health endpoint and the workers both
// use it to report readiness.
func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Client exposes the raw client for the stream repository, which needs
// consumer-group commands the cache wrapper does not cover.
func (r *Redis) Client() *redis.Client {
	return r.client
}
