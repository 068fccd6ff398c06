package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/errors"
	"github.com/family-spots/internal/usecase/dto"
)

// FavoriteUseCase - per-user favorite spots
type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	spotRepo     repository.SpotRepository
	logger       *zap.Logger
}

// NewFavoriteUseCase - creates a new FavoriteUseCase
func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	spotRepo repository.SpotRepository,
	logger *zap.Logger,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		spotRepo:     spotRepo,
		logger:       logger,
	}
}

// List returns the caller's favorited spots as full records
func (uc *FavoriteUseCase) List(ctx context.Context, userID string) (*dto.FavoritesResponse, error) {
	if userID == "" {
		return nil, errors.ErrUnauthorized
	}

	ids, err := uc.favoriteRepo.ListSpotIDs(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list favorites", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if len(ids) == 0 {
		return &dto.FavoritesResponse{Items: nil, Total: 0}, nil
	}

	spots, err := uc.spotRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Failed to load favorited spots", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.FavoritesResponse{
		Items: spots,
		Total: len(spots),
	}, nil
}

// Add records a favorite. Unknown spot IDs are rejected; re-adding an
// existing favorite succeeds without effect.
func (uc *FavoriteUseCase) Add(ctx context.Context, userID, spotID string) error {
	if userID == "" {
		return errors.ErrUnauthorized
	}
	if spotID == "" {
		return errors.ErrInvalidRequest
	}

	if _, err := uc.spotRepo.GetByID(ctx, spotID); err != nil {
		return err
	}

	if err := uc.favoriteRepo.Add(ctx, userID, spotID); err != nil {
		uc.logger.Error("Failed to add favorite",
			zap.String("user_id", userID),
			zap.String("spot_id", spotID),
			zap.Error(err))
		return err
	}

	return nil
}

// Remove deletes a favorite; removing a non-favorite is a no-op
func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, spotID string) error {
	if userID == "" {
		return errors.ErrUnauthorized
	}
	if spotID == "" {
		return errors.ErrInvalidRequest
	}

	if err := uc.favoriteRepo.Remove(ctx, userID, spotID); err != nil {
		uc.logger.Error("Failed to remove favorite",
			zap.String("user_id", userID),
			zap.String("spot_id", spotID),
			zap.Error(err))
		return err
	}

	return nil
}
