package domain

import (
	"sort"
	"strings"
	"time"
)

// CostRange - coarse price bucket of a spot
type CostRange string

const (
	CostFree     CostRange = "FREE"
	CostUnder500 CostRange = "U500"
	CostUnder1K  CostRange = "U1000"
	CostUnder3K  CostRange = "U3000"
	CostOver3K   CostRange = "OVER3000"
)

// ValidCostRanges - whitelist applied on the write path
var ValidCostRanges = map[CostRange]bool{
	CostFree:     true,
	CostUnder500: true,
	CostUnder1K:  true,
	CostUnder3K:  true,
	CostOver3K:   true,
}

// NormalizeCostRange uppercases a raw value and drops anything outside the
// whitelist. Empty result means "no cost information".
func NormalizeCostRange(raw string) *CostRange {
	if raw == "" {
		return nil
	}
	cr := CostRange(strings.ToUpper(strings.TrimSpace(raw)))
	if !ValidCostRanges[cr] {
		return nil
	}
	return &cr
}

// Spot - a single family-outing location record.
// Persisted spots always have a non-empty name and valid coordinates; tags are
// case-normalized at write time so matching stays deterministic.
type Spot struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Lat         float64    `json:"lat" db:"lat"`
	Lng         float64    `json:"lng" db:"lng"`
	Address     string     `json:"address" db:"address"`
	Summary     string     `json:"summary" db:"summary"`
	OfficialURL *string    `json:"official_url,omitempty" db:"official_url"`
	CostRange   *CostRange `json:"cost_range,omitempty" db:"cost_range"`
	AgeMin      *int       `json:"age_min,omitempty" db:"age_min"`
	AgeMax      *int       `json:"age_max,omitempty" db:"age_max"`
	Tags        []string   `json:"tags" db:"tags"`
	Images      []string   `json:"images" db:"images"`
	Hours       *string    `json:"hours,omitempty" db:"hours"`
	Source      string     `json:"source,omitempty" db:"source"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// MatchesAge reports whether a child of the given age fits the spot.
// Spots without an age range welcome everyone; an open end is unbounded.
func (s *Spot) MatchesAge(age int) bool {
	if s.AgeMin != nil && age < *s.AgeMin {
		return false
	}
	if s.AgeMax != nil && age > *s.AgeMax {
		return false
	}
	return true
}

// HasAnyTag reports whether the spot shares at least one tag with the query
// set. The query set must already be normalized via NormalizeTags.
func (s *Spot) HasAnyTag(tags map[string]bool) bool {
	for _, t := range s.Tags {
		if tags[NormalizeTag(t)] {
			return true
		}
	}
	return false
}

// SearchText returns the lowercased haystack for free-text containment
// matching: name, address, summary and tags joined together.
func (s *Spot) SearchText() string {
	parts := make([]string, 0, 3+len(s.Tags))
	parts = append(parts, s.Name, s.Address, s.Summary)
	parts = append(parts, s.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// NormalizeTag - canonical form of a single tag
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags trims, lowercases, dedupes and sorts a tag list
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		normalized := NormalizeTag(t)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}
	sort.Strings(result)
	return result
}

// NormalizeTagSet builds the set form used by tag filters
func NormalizeTagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		if normalized := NormalizeTag(t); normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
