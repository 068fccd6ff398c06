package spots

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/worker"
)

// searchCachePrefix must match the prefix the search use case writes under
const searchCachePrefix = "spots:search:"

// SnapshotWorker keeps the in-process spot snapshot fresh. It reloads on a
// fixed interval and whenever a changed event arrives, then drops cached
// search pages. Each API instance consumes the changed stream through its
// own group so every instance sees every event.
type SnapshotWorker struct {
	*worker.BaseWorker
	spotRepo        repository.SpotRepository
	snapshots       repository.SnapshotStore
	cacheRepo       repository.CacheRepository
	streamRepo      repository.StreamRepository
	consumerName    string
	refreshInterval time.Duration
}

// NewSnapshotWorker creates a new SnapshotWorker
func NewSnapshotWorker(
	spotRepo repository.SpotRepository,
	snapshots repository.SnapshotStore,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	refreshInterval time.Duration,
	logger *zap.Logger,
) *SnapshotWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())
	// Per-instance group: the changed stream is a broadcast, not a queue
	group := fmt.Sprintf("snapshot-%s", consumerName)

	return &SnapshotWorker{
		BaseWorker:      worker.NewBaseWorker("spot-snapshot", group, logger),
		spotRepo:        spotRepo,
		snapshots:       snapshots,
		cacheRepo:       cacheRepo,
		streamRepo:      streamRepo,
		consumerName:    consumerName,
		refreshInterval: refreshInterval,
	}
}

// Start loads the initial snapshot and runs the refresh loop
func (w *SnapshotWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting SnapshotWorker",
		zap.Duration("refresh_interval", w.refreshInterval))

	// Initial load; failure is not fatal, the first successful refresh
	// will publish the snapshot
	if err := w.refresh(ctx); err != nil {
		logger.Warn("Initial snapshot load failed", zap.Error(err))
	}

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamSpotsChanged, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamSpotsChanged, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	ticker := time.NewTicker(w.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				logger.Error("Periodic snapshot refresh failed", zap.Error(err))
			}

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			if err := w.refresh(ctx); err != nil {
				logger.Error("Event-driven snapshot refresh failed",
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
			if err := w.streamRepo.AckMessage(ctx, domain.StreamSpotsChanged, w.ConsumerGroup(), msg.ID); err != nil {
				logger.Error("Failed to ack changed event", zap.Error(err))
			}
		}
	}
}

// refresh loads all spots, swaps the snapshot and purges cached pages
func (w *SnapshotWorker) refresh(ctx context.Context) error {
	spots, err := w.spotRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load spots: %w", err)
	}

	snap := w.snapshots.Replace(spots)

	if err := w.cacheRepo.DeleteByPrefix(ctx, searchCachePrefix); err != nil {
		// Versioned cache keys make stale pages unreachable anyway
		w.Logger().Warn("Failed to purge search cache", zap.Error(err))
	}

	w.Logger().Debug("Snapshot refreshed",
		zap.Int64("version", snap.Version),
		zap.Int("spots", snap.Len()))
	return nil
}
