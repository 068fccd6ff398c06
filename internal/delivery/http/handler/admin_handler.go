package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/family-spots/internal/pkg/errors"
	"github.com/family-spots/internal/pkg/utils"
	"github.com/family-spots/internal/pkg/validator"
	"github.com/family-spots/internal/usecase"
	"github.com/family-spots/internal/usecase/dto"
)

// AdminHandler - handler for the spot write path
type AdminHandler struct {
	spotUC *usecase.SpotUseCase
	logger *zap.Logger
}

// NewAdminHandler - creates a new AdminHandler
func NewAdminHandler(spotUC *usecase.SpotUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		spotUC: spotUC,
		logger: logger,
	}
}

// UpsertSpot godoc
// @Summary Queue a spot insert or update
// @Description Validates the payload and queues it on the upsert stream. Persistence is asynchronous; the snapshot serving reads is refreshed once the write lands.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.UpsertSpotRequest true "Spot record"
// @Success 202 {object} utils.SuccessResponse{data=dto.UpsertAcceptedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/admin/spots [post]
func (h *AdminHandler) UpsertSpot(c *fiber.Ctx) error {
	var req dto.UpsertSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.spotUC.SubmitUpsert(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{Data: result})
}
