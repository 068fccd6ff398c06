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

// userIDHeader identifies the caller; auth provider verification is handled
// upstream and is not this service's concern
const userIDHeader = "X-User-Id"

// FavoriteHandler - handler for per-user favorite spots
type FavoriteHandler struct {
	favoriteUC *usecase.FavoriteUseCase
	logger     *zap.Logger
}

// NewFavoriteHandler - creates a new FavoriteHandler
func NewFavoriteHandler(favoriteUC *usecase.FavoriteUseCase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUC: favoriteUC,
		logger:     logger,
	}
}

// List godoc
// @Summary List the caller's favorite spots
// @Tags Favorites
// @Produce json
// @Param X-User-Id header string true "Caller user ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.FavoritesResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	result, err := h.favoriteUC.List(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// Add godoc
// @Summary Add a spot to the caller's favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller user ID"
// @Param request body dto.FavoriteRequest true "Spot to favorite"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/favorites [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	if err := h.favoriteUC.Add(c.Context(), userID, req.SpotID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"ok": true}, nil)
}

// Remove godoc
// @Summary Remove a spot from the caller's favorites
// @Tags Favorites
// @Produce json
// @Param X-User-Id header string true "Caller user ID"
// @Param spot_id path string true "Spot ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/favorites/{spot_id} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	if err := h.favoriteUC.Remove(c.Context(), userID, c.Params("spot_id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"ok": true}, nil)
}
