package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/family-spots/internal/pkg/utils"
	"github.com/family-spots/internal/usecase"
)

// StatsHandler - handler for dataset statistics
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler - creates a new StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Dataset statistics
// @Description Aggregates over the active snapshot: totals, cost range and tag distributions, geographic coverage.
// @Tags Stats
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.DatasetStats}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.statsUC.GetStatistics(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, &utils.Meta{
		Total: stats.TotalSpots,
	})
}
