package domain

import "time"

// SpotSnapshot - an immutable point-in-time view of the full spot dataset.
// Every search runs against exactly one snapshot, so readers never observe a
// half-applied write. Spots and byID must not be mutated after construction.
type SpotSnapshot struct {
	Spots    []*Spot
	Version  int64
	LoadedAt time.Time

	byID map[string]*Spot
}

// NewSpotSnapshot builds a snapshot with its ID index
func NewSpotSnapshot(spots []*Spot, version int64, loadedAt time.Time) *SpotSnapshot {
	byID := make(map[string]*Spot, len(spots))
	for _, s := range spots {
		byID[s.ID] = s
	}
	return &SpotSnapshot{
		Spots:    spots,
		Version:  version,
		LoadedAt: loadedAt,
		byID:     byID,
	}
}

// Get returns the spot with the given ID, or nil
func (s *SpotSnapshot) Get(id string) *Spot {
	return s.byID[id]
}

// Len returns the number of spots in the snapshot
func (s *SpotSnapshot) Len() int {
	return len(s.Spots)
}
