package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/domain/repository"
	"github.com/family-spots/internal/pkg/errors"
)

// StatsUseCase - aggregate statistics over the current snapshot
type StatsUseCase struct {
	snapshots repository.SnapshotStore
	logger    *zap.Logger
}

// NewStatsUseCase - creates a new StatsUseCase
func NewStatsUseCase(snapshots repository.SnapshotStore, logger *zap.Logger) *StatsUseCase {
	return &StatsUseCase{
		snapshots: snapshots,
		logger:    logger,
	}
}

// GetStatistics computes dataset stats from the active snapshot
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.DatasetStats, error) {
	snap := uc.snapshots.Current()
	if snap == nil {
		return nil, errors.ErrDataUnavailable
	}

	stats := &domain.DatasetStats{
		TotalSpots:      snap.Len(),
		ByCostRange:     make(map[string]int),
		ByTag:           make(map[string]int),
		SnapshotVersion: snap.Version,
		LoadedAt:        snap.LoadedAt,
	}

	if snap.Len() == 0 {
		return stats, nil
	}

	coverage := domain.CoverageStats{
		BBoxMinLat: 90,
		BBoxMaxLat: -90,
		BBoxMinLng: 180,
		BBoxMaxLng: -180,
	}

	for _, s := range snap.Spots {
		if s.CostRange != nil {
			stats.ByCostRange[string(*s.CostRange)]++
		}
		for _, t := range s.Tags {
			stats.ByTag[t]++
		}

		if s.Lat < coverage.BBoxMinLat {
			coverage.BBoxMinLat = s.Lat
		}
		if s.Lat > coverage.BBoxMaxLat {
			coverage.BBoxMaxLat = s.Lat
		}
		if s.Lng < coverage.BBoxMinLng {
			coverage.BBoxMinLng = s.Lng
		}
		if s.Lng > coverage.BBoxMaxLng {
			coverage.BBoxMaxLng = s.Lng
		}
	}

	coverage.CenterLat = (coverage.BBoxMinLat + coverage.BBoxMaxLat) / 2
	coverage.CenterLng = (coverage.BBoxMinLng + coverage.BBoxMaxLng) / 2
	// A span over 180 degrees means the dataset straddles the antimeridian
	// and the midpoint lands on the wrong side of the globe
	if coverage.BBoxMaxLng-coverage.BBoxMinLng > 180 {
		coverage.CenterLng += 180
		if coverage.CenterLng > 180 {
			coverage.CenterLng -= 360
		}
	}
	stats.Coverage = coverage

	return stats, nil
}
