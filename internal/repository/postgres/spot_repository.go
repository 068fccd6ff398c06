package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/errors"
)

const spotColumns = `
	id, name, lat, lng, address, summary, official_url,
	cost_range, age_min, age_max, tags, images, hours,
	source, created_at, updated_at
`

type spotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSpotRepository(db *DB) repository.SpotRepository {
	return &spotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *spotRepository) GetAll(ctx context.Context) ([]*domain.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load all spots", zap.Error(err))
		return nil, errors.ErrDataUnavailable
	}
	defer rows.Close()

	var spots []*domain.Spot
	for rows.Next() {
		spot, err := r.scanSpot(rows)
		if err != nil {
			r.logger.Error("Failed to scan spot", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Spot rows iteration failed", zap.Error(err))
		return nil, errors.ErrDataUnavailable
	}

	return spots, nil
}

func (r *spotRepository) GetByID(ctx context.Context, id string) (*domain.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	spot, err := r.scanSpot(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSpotNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get spot by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return spot, nil
}

func (r *spotRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Spot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + spotColumns + ` FROM spots WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get spots by IDs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	byID := make(map[string]*domain.Spot, len(ids))
	for rows.Next() {
		spot, err := r.scanSpot(rows)
		if err != nil {
			r.logger.Error("Failed to scan spot", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		byID[spot.ID] = spot
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	// Preserve the caller's ordering, dropping IDs that no longer exist
	spots := make([]*domain.Spot, 0, len(byID))
	for _, id := range ids {
		if spot, ok := byID[id]; ok {
			spots = append(spots, spot)
		}
	}

	return spots, nil
}

func (r *spotRepository) Upsert(ctx context.Context, spot *domain.Spot) error {
	query := `
		INSERT INTO spots (
			id, name, lat, lng, address, summary, official_url,
			cost_range, age_min, age_max, tags, images, hours,
			source, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			address = EXCLUDED.address,
			summary = EXCLUDED.summary,
			official_url = EXCLUDED.official_url,
			cost_range = EXCLUDED.cost_range,
			age_min = EXCLUDED.age_min,
			age_max = EXCLUDED.age_max,
			tags = EXCLUDED.tags,
			images = EXCLUDED.images,
			hours = EXCLUDED.hours,
			source = EXCLUDED.source,
			updated_at = NOW()
	`

	tagsJSON, err := json.Marshal(spot.Tags)
	if err != nil {
		return errors.ErrDatabaseError
	}
	imagesJSON, err := json.Marshal(spot.Images)
	if err != nil {
		return errors.ErrDatabaseError
	}

	var costRange *string
	if spot.CostRange != nil {
		cr := string(*spot.CostRange)
		costRange = &cr
	}

	_, err = r.db.ExecContext(ctx, query,
		spot.ID, spot.Name, spot.Lat, spot.Lng, spot.Address, spot.Summary,
		spot.OfficialURL, costRange, spot.AgeMin, spot.AgeMax,
		tagsJSON, imagesJSON, spot.Hours, spot.Source,
	)
	if err != nil {
		r.logger.Error("Failed to upsert spot", zap.String("id", spot.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *spotRepository) scanSpot(rows rowScanner) (*domain.Spot, error) {
	var spot domain.Spot
	var costRange *string
	var tagsJSON, imagesJSON []byte

	err := rows.Scan(
		&spot.ID, &spot.Name, &spot.Lat, &spot.Lng, &spot.Address, &spot.Summary,
		&spot.OfficialURL, &costRange, &spot.AgeMin, &spot.AgeMax,
		&tagsJSON, &imagesJSON, &spot.Hours,
		&spot.Source, &spot.CreatedAt, &spot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if costRange != nil {
		cr := domain.CostRange(*costRange)
		spot.CostRange = &cr
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &spot.Tags); err != nil {
			r.logger.Warn("Failed to unmarshal tags", zap.String("id", spot.ID), zap.Error(err))
		}
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &spot.Images); err != nil {
			r.logger.Warn("Failed to unmarshal images", zap.String("id", spot.ID), zap.Error(err))
		}
	}

	return &spot, nil
}
