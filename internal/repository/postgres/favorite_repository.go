package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/errors"
)

type favoriteRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFavoriteRepository(db *DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *favoriteRepository) ListSpotIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT spot_id
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		r.logger.Error("Failed to list favorite IDs", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return ids, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userID, spotID string) error {
	query := `
		INSERT INTO favorites (user_id, spot_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, spot_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, spotID); err != nil {
		r.logger.Error("Failed to add favorite",
			zap.String("user_id", userID),
			zap.String("spot_id", spotID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, spotID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND spot_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, spotID); err != nil {
		r.logger.Error("Failed to remove favorite",
			zap.String("user_id", userID),
			zap.String("spot_id", spotID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}
