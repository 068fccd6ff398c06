package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/family-spots/internal/pkg/errors"
	"github.com/family-spots/internal/pkg/utils"
	"github.com/family-spots/internal/pkg/validator"
	"github.com/family-spots/internal/usecase"
	"github.com/family-spots/internal/usecase/dto"
)

// SpotHandler - handler for spot search and detail requests
type SpotHandler struct {
	searchUC *usecase.SearchUseCase
	spotUC   *usecase.SpotUseCase
	logger   *zap.Logger
}

// NewSpotHandler - creates a new SpotHandler
func NewSpotHandler(searchUC *usecase.SearchUseCase, spotUC *usecase.SpotUseCase, logger *zap.Logger) *SpotHandler {
	return &SpotHandler{
		searchUC: searchUC,
		spotUC:   spotUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Search spots around a point
// @Description Returns spots within radius_km of (lat, lng), ranked by ascending distance with ties broken by spot ID. Optional filters are AND-combined: exact cost range, age within the spot's range, match-any tags, and case-insensitive free-text containment over name, address, summary and tags.
// @Tags Spots
// @Produce json
// @Param lat query number true "Latitude of the search center"
// @Param lng query number true "Longitude of the search center"
// @Param radius_km query number false "Search radius in km (0 < r <= 50)" default(5.0)
// @Param q query string false "Free-text filter"
// @Param cost_range query string false "Cost bucket filter (FREE, U500, U1000, U3000, OVER3000)"
// @Param age query int false "Child age filter (0-18)"
// @Param tags query string false "Comma-separated tags, match-any"
// @Param limit query int false "Page size (1-100)" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchSpotsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/spots [get]
func (h *SpotHandler) Search(c *fiber.Ctx) error {
	req, err := parseSearchRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.searchUC.SearchSpots(c.Context(), *req)
	if err != nil {
		return utils.SendError(c, err)
	}

	nextOffset := result.NextOffset
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:      result.Total,
		Limit:      req.Limit,
		Offset:     req.Offset,
		NextOffset: &nextOffset,
	})
}

// GetSpot godoc
// @Summary Get a spot by ID
// @Tags Spots
// @Produce json
// @Param id path string true "Spot ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.Spot}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id} [get]
func (h *SpotHandler) GetSpot(c *fiber.Ctx) error {
	spot, err := h.spotUC.GetSpot(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, spot, nil)
}

// parseSearchRequest maps query parameters onto the search DTO. lat and lng
// are mandatory and must parse; everything else falls back to defaults.
func parseSearchRequest(c *fiber.Ctx) (*dto.SearchSpotsRequest, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": c.Query("lat"),
		})
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lng": c.Query("lng"),
		})
	}

	radiusKm := usecase.DefaultRadiusKm
	if raw := c.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
				"radius_km": raw,
			})
		}
	}

	var age *int
	if raw := c.Query("age"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"age": raw,
			})
		}
		age = &parsed
	}

	var tags []string
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}

	return &dto.SearchSpotsRequest{
		Lat:       lat,
		Lng:       lng,
		RadiusKm:  radiusKm,
		Query:     c.Query("q"),
		CostRange: strings.ToUpper(c.Query("cost_range")),
		Age:       age,
		Tags:      tags,
		Limit:     c.QueryInt("limit", usecase.DefaultLimit),
		Offset:    c.QueryInt("offset", 0),
	}, nil
}
