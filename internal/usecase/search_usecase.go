package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/errors"
	"github.com/family-spots/internal/pkg/utils"
	"github.com/family-spots/internal/usecase/dto"
)

const (
	DefaultRadiusKm = 5.0
	DefaultLimit    = 20
	MaxLimit        = 100
)

// searchCachePrefix - every cached search page lives under this prefix so a
// snapshot swap can purge them all
const searchCachePrefix = "spots:search:"

// SearchUseCase - ranked radius search over the current spot snapshot
type SearchUseCase struct {
	snapshots repository.SnapshotStore
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewSearchUseCase - creates a new SearchUseCase
func NewSearchUseCase(
	snapshots repository.SnapshotStore,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SearchUseCase {
	return &SearchUseCase{
		snapshots: snapshots,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// SearchSpots validates the query, runs it against the current snapshot and
// returns one ranked page. Each call sees exactly one snapshot; a swap
// between two paginated calls may duplicate or skip a record at a page
// boundary, but a single page is always internally consistent.
func (uc *SearchUseCase) SearchSpots(ctx context.Context, req dto.SearchSpotsRequest) (*dto.SearchSpotsResponse, error) {
	// Defaults before validation so zero values don't trip the caps
	if req.RadiusKm == 0 {
		req.RadiusKm = DefaultRadiusKm
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}

	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}
	if req.Limit < 1 || req.Limit > MaxLimit || req.Offset < 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"limit":  req.Limit,
			"offset": req.Offset,
		})
	}

	snap := uc.snapshots.Current()
	if snap == nil {
		return nil, errors.ErrDataUnavailable
	}

	// Cache lookup; any cache failure degrades to a direct scan
	cacheKey := searchCacheKey(snap.Version, &req)
	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.SearchSpotsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			uc.logger.Debug("Search cache hit", zap.String("key", cacheKey))
			return &resp, nil
		}
		uc.logger.Warn("Failed to decode cached search page", zap.String("key", cacheKey), zap.Error(err))
	}

	filter := newSpotFilter(req.CostRange, req.Age, req.Tags, req.Query)
	page, total := searchSnapshot(snap, req.Lat, req.Lng, req.RadiusKm, filter, req.Offset, req.Limit)

	results := make([]dto.SpotResult, 0, len(page))
	for _, c := range page {
		results = append(results, dto.SpotResult{
			Spot:       c.spot,
			DistanceKm: c.distanceKm,
		})
	}

	nextOffset := -1
	if req.Offset+len(results) < total {
		nextOffset = req.Offset + len(results)
	}

	resp := &dto.SearchSpotsResponse{
		Spots:           results,
		Total:           total,
		NextOffset:      nextOffset,
		SnapshotVersion: snap.Version,
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache search page", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return resp, nil
}

// searchCacheKey builds a canonical key for one query against one snapshot.
// The snapshot version is part of the key, so stale pages can never be
// served even if the prefix purge lags behind a swap.
func searchCacheKey(version int64, req *dto.SearchSpotsRequest) string {
	age := -1
	if req.Age != nil {
		age = *req.Age
	}
	tags := domain.NormalizeTags(req.Tags)

	canonical := fmt.Sprintf("%.6f|%.6f|%.2f|%s|%s|%d|%s|%d|%d",
		req.Lat, req.Lng, req.RadiusKm,
		strings.ToLower(strings.TrimSpace(req.Query)),
		req.CostRange, age, strings.Join(tags, ","),
		req.Limit, req.Offset,
	)

	sum := sha1.Sum([]byte(canonical))
	return fmt.Sprintf("%sv%d:%s", searchCachePrefix, version, hex.EncodeToString(sum[:]))
}
