package dto

// SearchSpotsRequest - spot search query.
// Caps are policy, not suggestions: out-of-range values are rejected, never
// silently clamped. Filters are AND-combined across categories; the tag
// filter alone is match-any within its set.
type SearchSpotsRequest struct {
	Lat       float64  `json:"lat" validate:"min=-90,max=90"`
	Lng       float64  `json:"lng" validate:"min=-180,max=180"`
	RadiusKm  float64  `json:"radius_km" validate:"gt=0,lte=50"`
	Query     string   `json:"q" validate:"omitempty,max=256"`
	CostRange string   `json:"cost_range" validate:"omitempty,oneof=FREE U500 U1000 U3000 OVER3000"`
	Age       *int     `json:"age" validate:"omitempty,min=0,max=18"`
	Tags      []string `json:"tags" validate:"omitempty,max=20"`
	Limit     int      `json:"limit" validate:"min=1,max=100"`
	Offset    int      `json:"offset" validate:"min=0"`
}

// UpsertSpotRequest - admin write request for a single spot record
type UpsertSpotRequest struct {
	SpotID      string   `json:"spot_id" validate:"required,max=128"`
	Name        string   `json:"name" validate:"required,max=255"`
	Lat         float64  `json:"lat" validate:"min=-90,max=90"`
	Lng         float64  `json:"lng" validate:"min=-180,max=180"`
	Address     string   `json:"address" validate:"required,max=255"`
	Summary     string   `json:"summary" validate:"required"`
	OfficialURL *string  `json:"official_url,omitempty" validate:"omitempty,url,max=512"`
	CostRange   *string  `json:"cost_range,omitempty" validate:"omitempty,oneof=FREE U500 U1000 U3000 OVER3000"`
	AgeMin      *int     `json:"age_min,omitempty" validate:"omitempty,min=0"`
	AgeMax      *int     `json:"age_max,omitempty" validate:"omitempty,min=0"`
	Tags        []string `json:"tags" validate:"omitempty,max=50"`
	Images      []string `json:"images" validate:"omitempty,max=20,dive,url"`
	Hours       *string  `json:"hours,omitempty" validate:"omitempty,max=128"`
	Source      string   `json:"source" validate:"omitempty,max=64"`
}

// FavoriteRequest - add a spot to the caller's favorites
type FavoriteRequest struct {
	SpotID string `json:"spot_id" validate:"required,max=128"`
}
