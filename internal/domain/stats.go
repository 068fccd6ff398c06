package domain

import "time"

// DatasetStats - aggregate view of the current snapshot
type DatasetStats struct {
	TotalSpots      int            `json:"total_spots"`
	ByCostRange     map[string]int `json:"by_cost_range"`
	ByTag           map[string]int `json:"by_tag"`
	Coverage        CoverageStats  `json:"coverage"`
	SnapshotVersion int64          `json:"snapshot_version"`
	LoadedAt        time.Time      `json:"loaded_at"`
}

// CoverageStats - geographic extent of the dataset
type CoverageStats struct {
	BBoxMinLat float64 `json:"bbox_min_lat"`
	BBoxMaxLat float64 `json:"bbox_max_lat"`
	BBoxMinLng float64 `json:"bbox_min_lng"`
	BBoxMaxLng float64 `json:"bbox_max_lng"`
	CenterLat  float64 `json:"center_lat"`
	CenterLng  float64 `json:"center_lng"`
}
