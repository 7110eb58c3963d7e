package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orekiez/pudu-field/internal/config"
	"github.com/orekiez/pudu-field/internal/domain"
	apperrors "github.com/orekiez/pudu-field/internal/pkg/errors"
	"github.com/orekiez/pudu-field/internal/pkg/utils"
	"github.com/orekiez/pudu-field/internal/pkg/validator"
	"github.com/orekiez/pudu-field/internal/usecase"
	"github.com/orekiez/pudu-field/internal/usecase/dto"
	"go.uber.org/zap"
)

// LocationHandler receives device position reports and hands the page
// its map bootstrap. Geolocation failures never reach us: a browser
// that cannot locate itself just stays silent.
type LocationHandler struct {
	view   *usecase.ViewStateUseCase
	mapCfg config.MapConfig
	logger *zap.Logger
}

func NewLocationHandler(
	view *usecase.ViewStateUseCase,
	mapCfg config.MapConfig,
	logger *zap.Logger,
) *LocationHandler {
	return &LocationHandler{
		view:   view,
		mapCfg: mapCfg,
		logger: logger,
	}
}

// ReportLocation stores the last-known device coordinate.
func (h *LocationHandler) ReportLocation(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	loc := domain.Coordinate{Latitud: *req.Latitud, Longitud: *req.Longitud}
	h.view.SetUserLocation(loc)

	h.logger.Debug("Device location reported",
		zap.Float64("latitud", loc.Latitud),
		zap.Float64("longitud", loc.Longitud))
	return utils.SendSuccess(c, loc, nil)
}

// GetMapConfig serves the tile source and initial viewport.
func (h *LocationHandler) GetMapConfig(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.MapConfigResponse{
		TileURL:     h.mapCfg.TileURL,
		Attribution: h.mapCfg.Attribution,
		CenterLat:   h.mapCfg.CenterLat,
		CenterLng:   h.mapCfg.CenterLng,
		Zoom:        h.mapCfg.Zoom,
	}, nil)
}
