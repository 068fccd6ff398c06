package http_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/family-spots/internal/config"
	httpDelivery "github.com/family-spots/internal/delivery/http"
	"github.com/family-spots/internal/domain"
	"github.com/family-spots/internal/repository/memory"
)

type healthEnvelope struct {
	Data struct {
		Status          string `json:"status"`
		SnapshotLoaded  bool   `json:"snapshot_loaded"`
		SnapshotVersion int64  `json:"snapshot_version"`
	} `json:"data"`
}

func TestServer_Health(t *testing.T) {
	snapshots := memory.NewSnapshotStore(zap.NewNop())
	srv := httpDelivery.NewServer(&config.Config{}, zap.NewNop(), snapshots, nil, nil, nil, nil)

	t.Run("reports no snapshot before the first load", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, 200, resp.StatusCode)

		var body healthEnvelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body.Data.Status)
		assert.False(t, body.Data.SnapshotLoaded)
		assert.Equal(t, int64(0), body.Data.SnapshotVersion)
	})

	t.Run("wraps snapshot state in the data envelope", func(t *testing.T) {
		snapshots.Replace([]*domain.Spot{})

		resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, 200, resp.StatusCode)

		var body healthEnvelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Data.SnapshotLoaded)
		assert.Equal(t, int64(1), body.Data.SnapshotVersion)
	})
}
