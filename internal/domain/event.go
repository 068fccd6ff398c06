package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names shared between the API and the upsert worker
const (
	StreamSpotsUpsert  = "stream:spots:upsert"
	StreamSpotsChanged = "stream:spots:changed"
)

// SpotUpsertEvent - a single-record write request published by the admin API
// and consumed by the upsert worker
type SpotUpsertEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	SpotID      string    `json:"spot_id"`
	Name        string    `json:"name"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Address     string    `json:"address"`
	Summary     string    `json:"summary"`
	OfficialURL *string   `json:"official_url,omitempty"`
	CostRange   *string   `json:"cost_range,omitempty"`
	AgeMin      *int      `json:"age_min,omitempty"`
	AgeMax      *int      `json:"age_max,omitempty"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	Hours       *string   `json:"hours,omitempty"`
	Source      string    `json:"source"`
	RequestedAt time.Time `json:"requested_at"`
}

// SpotsChangedEvent - published after a successful upsert so API instances
// reload their snapshot and drop cached search pages
type SpotsChangedEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	SpotID    string    `json:"spot_id"`
	ChangedAt time.Time `json:"changed_at"`
}

// StreamMessage - a raw message read from a Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
