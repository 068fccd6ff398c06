package repository

import (
	"context"

	"github.com/family-spots/internal/domain"
)

// StreamRepository defines methods for Redis Streams messaging
type StreamRepository interface {
	// CreateConsumerGroup creates a consumer group for a stream
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream reads messages through a consumer group
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream publishes a JSON-serialized payload to a stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
