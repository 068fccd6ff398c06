package spots_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/worker/spots"
)

func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }

func validEvent() *domain.SpotUpsertEvent {
	return &domain.SpotUpsertEvent{
		EventID: uuid.New(),
		SpotID:  "tokyo-zoo-1",
		Name:    "  上野動物園  ",
		Lat:     35.7156,
		Lng:     139.7713,
		Address: " 東京都台東区 ",
		Summary: "パンダで有名な動物園。",
		Tags:    []string{" 屋外 ", "動物", "屋外"},
		Source:  "admin",
	}
}

func TestBuildSpotFromEvent(t *testing.T) {
	t.Run("normalizes a valid event", func(t *testing.T) {
		spot, err := spots.BuildSpotFromEvent(validEvent())

		require.NoError(t, err)
		assert.Equal(t, "tokyo-zoo-1", spot.ID)
		assert.Equal(t, "上野動物園", spot.Name)
		assert.Equal(t, "東京都台東区", spot.Address)
		assert.Equal(t, []string{"動物", "屋外"}, spot.Tags)
		assert.Equal(t, "admin", spot.Source)
	})

	t.Run("whitelists the cost range", func(t *testing.T) {
		event := validEvent()
		event.CostRange = ptrString("free")

		spot, err := spots.BuildSpotFromEvent(event)

		require.NoError(t, err)
		require.NotNil(t, spot.CostRange)
		assert.Equal(t, domain.CostFree, *spot.CostRange)
	})

	t.Run("drops an unknown cost range instead of persisting it", func(t *testing.T) {
		event := validEvent()
		event.CostRange = ptrString("CHEAP")

		spot, err := spots.BuildSpotFromEvent(event)

		require.NoError(t, err)
		assert.Nil(t, spot.CostRange)
	})

	t.Run("defaults the source when absent", func(t *testing.T) {
		event := validEvent()
		event.Source = ""

		spot, err := spots.BuildSpotFromEvent(event)

		require.NoError(t, err)
		assert.Equal(t, "unknown", spot.Source)
	})

	t.Run("rejects missing ID or blank name", func(t *testing.T) {
		event := validEvent()
		event.SpotID = ""
		_, err := spots.BuildSpotFromEvent(event)
		assert.Error(t, err)

		event = validEvent()
		event.Name = "   "
		_, err = spots.BuildSpotFromEvent(event)
		assert.Error(t, err)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		event := validEvent()
		event.Lat = 95

		_, err := spots.BuildSpotFromEvent(event)

		assert.Error(t, err)
	})

	t.Run("rejects an inverted or negative age range", func(t *testing.T) {
		event := validEvent()
		event.AgeMin = ptrInt(10)
		event.AgeMax = ptrInt(3)
		_, err := spots.BuildSpotFromEvent(event)
		assert.Error(t, err)

		event = validEvent()
		event.AgeMin = ptrInt(-1)
		_, err = spots.BuildSpotFromEvent(event)
		assert.Error(t, err)
	})

	t.Run("keeps open age ends", func(t *testing.T) {
		event := validEvent()
		event.AgeMin = ptrInt(3)

		spot, err := spots.BuildSpotFromEvent(event)

		require.NoError(t, err)
		require.NotNil(t, spot.AgeMin)
		assert.Equal(t, 3, *spot.AgeMin)
		assert.Nil(t, spot.AgeMax)
	})
}

func TestUpsertWorker_ConsumeLoop(t *testing.T) {
	repo := &fakeSpotRepo{}
	stream := &fakeStream{
		messages:  make(chan domain.StreamMessage),
		published: make(chan interface{}, 1),
	}

	w := spots.NewUpsertWorker(stream, repo, "test-group", 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	t.Run("persists a valid event and publishes changed", func(t *testing.T) {
		event := validEvent()
		data, err := json.Marshal(event)
		require.NoError(t, err)

		stream.messages <- domain.StreamMessage{ID: "1-0", Data: string(data)}

		select {
		case published := <-stream.published:
			changed, ok := published.(domain.SpotsChangedEvent)
			require.True(t, ok)
			assert.Equal(t, event.EventID, changed.EventID)
			assert.Equal(t, "tokyo-zoo-1", changed.SpotID)
		case <-time.After(2 * time.Second):
			t.Fatal("no changed event published")
		}

		upserts := repo.upserted()
		require.Len(t, upserts, 1)
		assert.Equal(t, "tokyo-zoo-1", upserts[0].ID)
		assert.Equal(t, "上野動物園", upserts[0].Name)

		require.Eventually(t, func() bool {
			return stream.acks.Load() == 1
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("acks and drops a malformed event", func(t *testing.T) {
		before := stream.acks.Load()

		stream.messages <- domain.StreamMessage{ID: "2-0", Data: "not json"}

		require.Eventually(t, func() bool {
			return stream.acks.Load() > before
		}, 2*time.Second, 10*time.Millisecond)

		// Nothing new was persisted
		assert.Len(t, repo.upserted(), 1)
	})

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
