package spots

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/utils"
	"github.com/family-spots/internal/worker"
)

// UpsertWorker consumes spot write events, normalizes them and persists them
// to the spot store. Every successful write publishes a changed event so API
// instances refresh their snapshot.
type UpsertWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	spotRepo     repository.SpotRepository
	consumerName string
	maxRetries   int
}

// NewUpsertWorker creates a new UpsertWorker
func NewUpsertWorker(
	streamRepo repository.StreamRepository,
	spotRepo repository.SpotRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *UpsertWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &UpsertWorker{
		BaseWorker:   worker.NewBaseWorker("spot-upsert", consumerGroup, logger),
		streamRepo:   streamRepo,
		spotRepo:     spotRepo,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start runs the consume loop
func (w *UpsertWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting UpsertWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamSpotsUpsert, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamSpotsUpsert, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes one upsert event with retries. Malformed events
// are acked and dropped; persistent store failures leave the message
// unacked so another consumer can claim it.
func (w *UpsertWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.SpotUpsertEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Dropping malformed upsert event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	spot, err := BuildSpotFromEvent(&event)
	if err != nil {
		logger.Warn("Dropping invalid upsert event",
			zap.String("message_id", msg.ID),
			zap.String("spot_id", event.SpotID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.spotRepo.Upsert(ctx, spot); err == nil {
			break
		}
		logger.Error("Failed to upsert spot",
			zap.String("spot_id", spot.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		// Leave unacked for redelivery
		return
	}

	changed := domain.SpotsChangedEvent{
		EventID:   event.EventID,
		SpotID:    spot.ID,
		ChangedAt: time.Now().UTC(),
	}
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamSpotsChanged, changed); err != nil {
		logger.Error("Failed to publish changed event",
			zap.String("spot_id", spot.ID),
			zap.Error(err))
	}

	w.ack(ctx, msg.ID)
	logger.Info("Spot upserted",
		zap.String("spot_id", spot.ID),
		zap.String("event_id", event.EventID.String()))
}

func (w *UpsertWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamSpotsUpsert, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", messageID), zap.Error(err))
	}
}

// BuildSpotFromEvent normalizes an upsert event into a persistable record:
// tags are case-normalized and deduped, the cost range is whitelisted, and
// the persisted-spot invariants (non-empty name, valid location) are
// enforced here regardless of what the publisher sent.
func BuildSpotFromEvent(event *domain.SpotUpsertEvent) (*domain.Spot, error) {
	name := strings.TrimSpace(event.Name)
	if event.SpotID == "" || name == "" {
		return nil, fmt.Errorf("spot_id and name are required")
	}
	if !utils.ValidateCoordinates(event.Lat, event.Lng) {
		return nil, fmt.Errorf("invalid coordinates: %f, %f", event.Lat, event.Lng)
	}
	if event.AgeMin != nil && *event.AgeMin < 0 {
		return nil, fmt.Errorf("age_min must be non-negative")
	}
	if event.AgeMin != nil && event.AgeMax != nil && *event.AgeMin > *event.AgeMax {
		return nil, fmt.Errorf("age_min exceeds age_max")
	}

	var costRange *domain.CostRange
	if event.CostRange != nil {
		costRange = domain.NormalizeCostRange(*event.CostRange)
	}

	source := event.Source
	if source == "" {
		source = "unknown"
	}

	return &domain.Spot{
		ID:          event.SpotID,
		Name:        name,
		Lat:         event.Lat,
		Lng:         event.Lng,
		Address:     strings.TrimSpace(event.Address),
		Summary:     strings.TrimSpace(event.Summary),
		OfficialURL: event.OfficialURL,
		CostRange:   costRange,
		AgeMin:      event.AgeMin,
		AgeMax:      event.AgeMax,
		Tags:        domain.NormalizeTags(event.Tags),
		Images:      event.Images,
		Hours:       event.Hours,
		Source:      source,
	}, nil
}
