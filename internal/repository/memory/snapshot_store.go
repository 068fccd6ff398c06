package memory

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/domain/repository"
)

// snapshotStore publishes immutable spot snapshots with an atomic pointer
// swap. Readers grab the pointer once per call and keep working against that
// snapshot even while a newer one is being published, so a half-loaded
// dataset is never observable.
type snapshotStore struct {
	current atomic.Pointer[domain.SpotSnapshot]
	version atomic.Int64
	logger  *zap.Logger
}

// NewSnapshotStore creates an empty store; Current returns nil until the
// first Replace
func NewSnapshotStore(logger *zap.Logger) repository.SnapshotStore {
	return &snapshotStore{logger: logger}
}

func (s *snapshotStore) Current() *domain.SpotSnapshot {
	return s.current.Load()
}

func (s *snapshotStore) Replace(spots []*domain.Spot) *domain.SpotSnapshot {
	version := s.version.Add(1)
	snap := domain.NewSpotSnapshot(spots, version, time.Now().UTC())
	s.current.Store(snap)

	s.logger.Info("Spot snapshot published",
		zap.Int64("version", version),
		zap.Int("spots", snap.Len()))

	return snap
}
