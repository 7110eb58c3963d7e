package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/orekiez/pudu-field/internal/domain"
	apperrors "github.com/orekiez/pudu-field/internal/pkg/errors"
	"github.com/orekiez/pudu-field/internal/pkg/utils"
	"github.com/orekiez/pudu-field/internal/pkg/validator"
	"github.com/orekiez/pudu-field/internal/usecase"
	"github.com/orekiez/pudu-field/internal/usecase/dto"
	"go.uber.org/zap"
)

// SessionHandler exposes the edit-session state machine over HTTP.
type SessionHandler struct {
	session *usecase.EditSessionUseCase
	view    *usecase.ViewStateUseCase
	logger  *zap.Logger
}

func NewSessionHandler(
	session *usecase.EditSessionUseCase,
	view *usecase.ViewStateUseCase,
	logger *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		session: session,
		view:    view,
		logger:  logger,
	}
}

func (h *SessionHandler) sendView(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.session.View(), nil)
}

// BeginCreate opens a blank draft at the clicked coordinate.
func (h *SessionHandler) BeginCreate(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	coord := domain.Coordinate{Latitud: *req.Latitud, Longitud: *req.Longitud}
	if err := h.session.BeginCreate(coord); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}

// BeginEdit opens the session on a copy of the identified record. The
// table's row action lands here too, so the view flips back to the map
// before the form opens.
func (h *SessionHandler) BeginEdit(c *fiber.Ctx) error {
	var req dto.EditSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	record, ok := h.view.PointByID(*req.ID)
	if !ok {
		return utils.SendError(c, apperrors.ErrPuntoNotFound)
	}

	if h.view.Mode() != domain.ModeMap {
		h.view.SetMode(domain.ModeMap)
	}

	if err := h.session.BeginEdit(record); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}

// PatchDraft applies field edits to the open draft.
func (h *SessionHandler) PatchDraft(c *fiber.Ctx) error {
	var req dto.DraftPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.session.UpdateDraft(req); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}

// Save persists the draft: create without identity, update with one.
func (h *SessionHandler) Save(c *fiber.Ctx) error {
	if err := h.session.Save(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}

// RequestDelete arms the confirmation gate.
func (h *SessionHandler) RequestDelete(c *fiber.Ctx) error {
	if err := h.session.RequestDelete(); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}

// ConfirmDelete issues the delete.
func (h *SessionHandler) ConfirmDelete(c *fiber.Ctx) error {
	if err := h.session.ConfirmDelete(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}

// DeclineDelete backs out of the confirmation gate.
func (h *SessionHandler) DeclineDelete(c *fiber.Ctx) error {
	if err := h.session.DeclineDelete(); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}

// Cancel discards the draft.
func (h *SessionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.session.Cancel(); err != nil {
		return utils.SendError(c, err)
	}
	return h.sendView(c)
}
