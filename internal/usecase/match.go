package usecase

import (
	"container/heap"
	"sort"
	"strings"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/pkg/utils"
)

// matchCandidate - a spot that passed every filter, with its distance
type matchCandidate struct {
	spot       *domain.Spot
	distanceKm float64
}

// candidateLess is the ranking order: ascending distance, ties broken by
// spot ID ascending. The tie-break keeps repeated identical queries stable.
func candidateLess(a, b matchCandidate) bool {
	if a.distanceKm != b.distanceKm {
		return a.distanceKm < b.distanceKm
	}
	return a.spot.ID < b.spot.ID
}

// spotFilter - the AND-combined optional filters of a search query.
// Cost is an exact match, age is a range test, tags are match-any and text
// is case-insensitive substring containment. Empty fields skip their filter.
type spotFilter struct {
	costRange *domain.CostRange
	age       *int
	tags      map[string]bool
	text      string
}

func newSpotFilter(costRange string, age *int, tags []string, text string) *spotFilter {
	f := &spotFilter{
		age:  age,
		text: strings.ToLower(strings.TrimSpace(text)),
	}
	if costRange != "" {
		cr := domain.CostRange(costRange)
		f.costRange = &cr
	}
	if len(tags) > 0 {
		f.tags = domain.NormalizeTagSet(tags)
	}
	return f
}

func (f *spotFilter) Matches(s *domain.Spot) bool {
	if f.costRange != nil {
		if s.CostRange == nil || *s.CostRange != *f.costRange {
			return false
		}
	}
	if f.age != nil && !s.MatchesAge(*f.age) {
		return false
	}
	if len(f.tags) > 0 && !s.HasAnyTag(f.tags) {
		return false
	}
	if f.text != "" && !strings.Contains(s.SearchText(), f.text) {
		return false
	}
	return true
}

// candidateHeap - max-heap on the ranking order, so the worst of the kept
// candidates sits at the root and is the one evicted first
type candidateHeap []matchCandidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return candidateLess(h[j], h[i]) }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(matchCandidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topKSelector keeps the k best-ranked candidates seen so far
type topKSelector struct {
	k int
	h candidateHeap
}

func newTopKSelector(k int) *topKSelector {
	return &topKSelector{k: k, h: make(candidateHeap, 0, k)}
}

func (s *topKSelector) Offer(c matchCandidate) {
	if s.k <= 0 {
		return
	}
	if len(s.h) < s.k {
		heap.Push(&s.h, c)
		return
	}
	if candidateLess(c, s.h[0]) {
		s.h[0] = c
		heap.Fix(&s.h, 0)
	}
}

// Sorted returns the kept candidates in ranking order
func (s *topKSelector) Sorted() []matchCandidate {
	out := make([]matchCandidate, len(s.h))
	copy(out, s.h)
	sort.Slice(out, func(i, j int) bool { return candidateLess(out[i], out[j]) })
	return out
}

// searchSnapshot runs one query against an immutable snapshot: a linear scan
// with a bounding-box prune before the exact haversine test, filter predicate
// on the survivors, and bounded top-(offset+limit) selection. Returns the
// requested page slice and the total number of matches.
func searchSnapshot(
	snap *domain.SpotSnapshot,
	lat, lng, radiusKm float64,
	filter *spotFilter,
	offset, limit int,
) ([]matchCandidate, int) {
	bbox := utils.NewBoundingBox(lat, lng, radiusKm)
	selector := newTopKSelector(offset + limit)
	total := 0

	for _, s := range snap.Spots {
		if !bbox.Contains(s.Lat, s.Lng) {
			continue
		}
		distance := utils.HaversineDistance(lat, lng, s.Lat, s.Lng)
		if distance > radiusKm {
			continue
		}
		if !filter.Matches(s) {
			continue
		}
		total++
		selector.Offer(matchCandidate{spot: s, distanceKm: distance})
	}

	ranked := selector.Sorted()
	if offset >= len(ranked) {
		return nil, total
	}
	return ranked[offset:], total
}
