package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/errors"
	"github.com/family-spots/internal/pkg/utils"
	"github.com/family-spots/internal/usecase/dto"
)

// SpotUseCase - spot detail reads and the admin write path
type SpotUseCase struct {
	snapshots  repository.SnapshotStore
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

// NewSpotUseCase - creates a new SpotUseCase
func NewSpotUseCase(
	snapshots repository.SnapshotStore,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *SpotUseCase {
	return &SpotUseCase{
		snapshots:  snapshots,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// GetSpot returns a single spot by ID from the current snapshot
func (uc *SpotUseCase) GetSpot(ctx context.Context, id string) (*domain.Spot, error) {
	if id == "" {
		return nil, errors.ErrInvalidRequest
	}

	snap := uc.snapshots.Current()
	if snap == nil {
		return nil, errors.ErrDataUnavailable
	}

	spot := snap.Get(id)
	if spot == nil {
		return nil, errors.ErrSpotNotFound
	}

	return spot, nil
}

// SubmitUpsert validates an admin write and queues it on the upsert stream.
// Persistence happens asynchronously in the upsert worker; the returned
// event ID identifies the queued write.
func (uc *SpotUseCase) SubmitUpsert(ctx context.Context, req dto.UpsertSpotRequest) (*dto.UpsertAcceptedResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if req.AgeMin != nil && req.AgeMax != nil && *req.AgeMin > *req.AgeMax {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"age_min": *req.AgeMin,
			"age_max": *req.AgeMax,
		})
	}

	source := req.Source
	if source == "" {
		source = "admin"
	}

	event := domain.SpotUpsertEvent{
		EventID:     uuid.New(),
		SpotID:      req.SpotID,
		Name:        req.Name,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Address:     req.Address,
		Summary:     req.Summary,
		OfficialURL: req.OfficialURL,
		CostRange:   req.CostRange,
		AgeMin:      req.AgeMin,
		AgeMax:      req.AgeMax,
		Tags:        req.Tags,
		Images:      req.Images,
		Hours:       req.Hours,
		Source:      source,
		RequestedAt: time.Now().UTC(),
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamSpotsUpsert, event); err != nil {
		uc.logger.Error("Failed to publish upsert event",
			zap.String("spot_id", req.SpotID),
			zap.Error(err))
		return nil, errors.ErrDataUnavailable
	}

	uc.logger.Info("Spot upsert queued",
		zap.String("event_id", event.EventID.String()),
		zap.String("spot_id", req.SpotID))

	return &dto.UpsertAcceptedResponse{
		EventID: event.EventID,
		SpotID:  req.SpotID,
		Status:  "queued",
	}, nil
}
