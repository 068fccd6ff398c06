package dto

import (
	"github.com/family-spots/internal/domain"
	"github.com/google/uuid"
)

// SpotResult - a spot plus its distance from the query center
type SpotResult struct {
	*domain.Spot
	DistanceKm float64 `json:"distance_km"`
}

// SearchSpotsResponse - one ranked page of matching spots.
// NextOffset is -1 once the result set is exhausted.
type SearchSpotsResponse struct {
	Spots           []SpotResult `json:"spots"`
	Total           int          `json:"total"`
	NextOffset      int          `json:"next_offset"`
	SnapshotVersion int64        `json:"snapshot_version"`
}

// FavoritesResponse - the caller's favorited spots
type FavoritesResponse struct {
	Items []*domain.Spot `json:"items"`
	Total int            `json:"total"`
}

// UpsertAcceptedResponse - acknowledgement of a queued spot write
type UpsertAcceptedResponse struct {
	EventID uuid.UUID `json:"event_id"`
	SpotID  string    `json:"spot_id"`
	Status  string    `json:"status"`
}
