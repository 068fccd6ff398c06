package postgres_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/family-spots/internal/domain"
	apperrors "github.com/family-spots/internal/pkg/errors"
	"github.com/family-spots/internal/repository/postgres"
)

// setupTestDB connects to a local test database and applies the schema.
// Tests are skipped when PostgreSQL is not reachable.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres password=postgres dbname=family_spots_test sslmode=disable"
	}

	sqlxDB, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("PostgreSQL not available for integration tests: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlxDB.PingContext(ctx); err != nil {
		t.Skipf("PostgreSQL not available for integration tests: %v", err)
	}

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = sqlxDB.Exec(string(schema))
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlxDB.Exec(`DELETE FROM favorites WHERE user_id LIKE 'test-%'`)
		sqlxDB.Exec(`DELETE FROM spots WHERE id LIKE 'test-%'`)
		sqlxDB.Close()
	})

	return postgres.NewDBForTest(sqlxDB, zap.NewNop())
}

func testSpot(id string) *domain.Spot {
	cr := domain.CostFree
	ageMin, ageMax := 0, 8
	return &domain.Spot{
		ID:        id,
		Name:      "テスト公園",
		Lat:       35.6895,
		Lng:       139.6917,
		Address:   "東京都千代田区",
		Summary:   "テスト用のスポット。",
		CostRange: &cr,
		AgeMin:    &ageMin,
		AgeMax:    &ageMax,
		Tags:      []string{"屋外", "ベビーカーok"},
		Images:    []string{},
		Source:    "test",
	}
}

func TestSpotRepository_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewSpotRepository(db)
	ctx := context.Background()

	spot := testSpot("test-park-1")
	require.NoError(t, repo.Upsert(ctx, spot))

	got, err := repo.GetByID(ctx, "test-park-1")
	require.NoError(t, err)
	assert.Equal(t, spot.Name, got.Name)
	assert.Equal(t, spot.Lat, got.Lat)
	assert.Equal(t, spot.Tags, got.Tags)
	require.NotNil(t, got.CostRange)
	assert.Equal(t, domain.CostFree, *got.CostRange)
	require.NotNil(t, got.AgeMax)
	assert.Equal(t, 8, *got.AgeMax)

	// Second upsert with the same ID updates in place
	spot.Name = "テスト公園（改装後）"
	spot.Tags = []string{"屋外"}
	require.NoError(t, repo.Upsert(ctx, spot))

	got, err = repo.GetByID(ctx, "test-park-1")
	require.NoError(t, err)
	assert.Equal(t, "テスト公園（改装後）", got.Name)
	assert.Equal(t, []string{"屋外"}, got.Tags)
}

func TestSpotRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewSpotRepository(db)

	_, err := repo.GetByID(context.Background(), "test-does-not-exist")

	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
}

func TestSpotRepository_GetByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewSpotRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Upsert(ctx, testSpot(fmt.Sprintf("test-multi-%d", i))))
	}

	t.Run("preserves the caller's ordering", func(t *testing.T) {
		spots, err := repo.GetByIDs(ctx, []string{"test-multi-3", "test-multi-1", "test-multi-2"})
		require.NoError(t, err)
		require.Len(t, spots, 3)
		assert.Equal(t, "test-multi-3", spots[0].ID)
		assert.Equal(t, "test-multi-1", spots[1].ID)
		assert.Equal(t, "test-multi-2", spots[2].ID)
	})

	t.Run("drops IDs that no longer exist", func(t *testing.T) {
		spots, err := repo.GetByIDs(ctx, []string{"test-multi-1", "test-gone"})
		require.NoError(t, err)
		require.Len(t, spots, 1)
		assert.Equal(t, "test-multi-1", spots[0].ID)
	})

	t.Run("empty input returns nothing", func(t *testing.T) {
		spots, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, spots)
	})
}

func TestFavoriteRepository(t *testing.T) {
	db := setupTestDB(t)
	spotRepo := postgres.NewSpotRepository(db)
	favRepo := postgres.NewFavoriteRepository(db)
	ctx := context.Background()

	require.NoError(t, spotRepo.Upsert(ctx, testSpot("test-fav-1")))
	require.NoError(t, spotRepo.Upsert(ctx, testSpot("test-fav-2")))

	userID := "test-user-1"

	require.NoError(t, favRepo.Add(ctx, userID, "test-fav-1"))
	require.NoError(t, favRepo.Add(ctx, userID, "test-fav-2"))

	// Re-adding is a no-op, not an error
	require.NoError(t, favRepo.Add(ctx, userID, "test-fav-1"))

	ids, err := favRepo.ListSpotIDs(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "test-fav-1")
	assert.Contains(t, ids, "test-fav-2")

	require.NoError(t, favRepo.Remove(ctx, userID, "test-fav-1"))

	ids, err = favRepo.ListSpotIDs(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"test-fav-2"}, ids)

	// Removing a missing favorite is a no-op
	assert.NoError(t, favRepo.Remove(ctx, userID, "test-gone"))
}
