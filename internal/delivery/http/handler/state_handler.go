package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/orekiez/pudu-field/internal/notify"
	apperrors "github.com/orekiez/pudu-field/internal/pkg/errors"
	"github.com/orekiez/pudu-field/internal/pkg/utils"
	"github.com/orekiez/pudu-field/internal/pkg/validator"
	"github.com/orekiez/pudu-field/internal/presentation"
	"github.com/orekiez/pudu-field/internal/usecase"
	"github.com/orekiez/pudu-field/internal/usecase/dto"
	"go.uber.org/zap"
)

// StateHandler serves the view-state snapshot and its pure
// transitions: filter, mode, reload, markers, notifications.
type StateHandler struct {
	view     *usecase.ViewStateUseCase
	session  *usecase.EditSessionUseCase
	notifier *notify.Notifier
	markers  *presentation.MarkerCatalog
	logger   *zap.Logger
}

func NewStateHandler(
	view *usecase.ViewStateUseCase,
	session *usecase.EditSessionUseCase,
	notifier *notify.Notifier,
	markers *presentation.MarkerCatalog,
	logger *zap.Logger,
) *StateHandler {
	return &StateHandler{
		view:     view,
		session:  session,
		notifier: notifier,
		markers:  markers,
		logger:   logger,
	}
}

// GetState returns the whole client state in one snapshot, read under
// a single lock so filter, mode and points cannot disagree.
func (h *StateHandler) GetState(c *fiber.Ctx) error {
	snap := h.view.Snapshot()

	return utils.SendSuccess(c, dto.StateResponse{
		Puntos:       snap.Visible,
		Tabla:        presentation.Rows(snap.Points),
		Filtro:       snap.Filter,
		Modo:         snap.Mode,
		Total:        len(snap.Points),
		Ubicacion:    snap.Location,
		Notificacion: h.notifier.Current(),
		Sesion:       h.session.View(),
	}, &utils.Meta{
		Total: len(snap.Visible),
	})
}

// GetMarkers returns the visible points as map pins, plus the
// transient device pin when a position is known.
func (h *StateHandler) GetMarkers(c *fiber.Ctx) error {
	snap := h.view.Snapshot()
	markers := h.markers.Markers(snap.Visible)
	if snap.Location != nil {
		markers = append(markers, h.markers.UserMarker(*snap.Location))
	}

	return utils.SendSuccess(c, dto.MarkersResponse{Markers: markers}, &utils.Meta{
		Total: len(markers),
	})
}

// SetFilter switches the display-time category predicate.
func (h *StateHandler) SetFilter(c *fiber.Ctx) error {
	var req dto.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	h.view.SetFilter(req.Filtro)
	return h.GetState(c)
}

// SetMode switches between map and table.
func (h *StateHandler) SetMode(c *fiber.Ctx) error {
	var req dto.ModeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	h.view.SetMode(domain.ViewMode(req.Modo))
	return h.GetState(c)
}

// Reload re-fetches the collection on demand. A failed listing leaves
// an empty collection and reports the failure.
func (h *StateHandler) Reload(c *fiber.Ctx) error {
	if err := h.view.Reload(c.Context()); err != nil {
		h.notifier.Publish(notify.LevelWarning, "No se pudieron cargar los puntos")
		return utils.SendError(c, err)
	}
	return h.GetState(c)
}

// DismissNotification clears the identified toast ahead of its TTL.
func (h *StateHandler) DismissNotification(c *fiber.Ctx) error {
	var req dto.DismissRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	h.notifier.Dismiss(req.ID)
	return utils.SendSuccess(c, fiber.Map{"dismissed": true}, nil)
}
