package usecase

import (
	"context"
	"sync"

	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/orekiez/pudu-field/internal/domain/repository"
	"github.com/orekiez/pudu-field/internal/notify"
	apperrors "github.com/orekiez/pudu-field/internal/pkg/errors"
	"github.com/orekiez/pudu-field/internal/usecase/dto"
	"go.uber.org/zap"
)

// SessionState names one position of the edit-session machine.
type SessionState string

const (
	SessionClosed           SessionState = "closed"
	SessionCreating         SessionState = "creating"
	SessionEditing          SessionState = "editing"
	SessionConfirmingDelete SessionState = "confirming_delete"
)

// EditSessionUseCase drives a single mutable draft: either a new point
// seeded from a map click, or a copy of a persisted record. The shared
// collection is never touched optimistically; every write goes to the
// remote store and becomes visible through the controller's reload.
// While a write is outstanding the session is frozen: every other
// transition returns ErrWriteInFlight until the write resolves.
type EditSessionUseCase struct {
	repo     repository.PuntoRepository
	view     *ViewStateUseCase
	notifier *notify.Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	state   SessionState
	draft   domain.Punto
	writing bool
}

func NewEditSessionUseCase(
	repo repository.PuntoRepository,
	view *ViewStateUseCase,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *EditSessionUseCase {
	return &EditSessionUseCase{
		repo:     repo,
		view:     view,
		notifier: notifier,
		logger:   logger,
		state:    SessionClosed,
	}
}

// View exposes the current state and a copy of the draft for the
// delivery layer.
func (uc *EditSessionUseCase) View() dto.SessionView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	view := dto.SessionView{State: string(uc.state)}
	if uc.state != SessionClosed {
		draft := uc.draft
		view.Draft = &draft
	}
	return view
}

// BeginCreate opens the session on a blank draft anchored at the
// clicked coordinate. Only valid from Closed.
func (uc *EditSessionUseCase) BeginCreate(coord domain.Coordinate) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.writing {
		return apperrors.ErrWriteInFlight
	}
	if uc.state != SessionClosed {
		return apperrors.ErrSessionBusy
	}

	uc.draft = domain.Punto{
		Nombre:        "",
		Latitud:       coord.Latitud,
		Longitud:      coord.Longitud,
		EstadoLlenado: 0,
		TipoResiduo:   domain.WasteGlass,
	}
	uc.state = SessionCreating

	uc.logger.Debug("Edit session opened for create",
		zap.Float64("latitud", coord.Latitud),
		zap.Float64("longitud", coord.Longitud))
	return nil
}

// BeginEdit opens the session on a copy of an already persisted
// record. Only valid from Closed.
func (uc *EditSessionUseCase) BeginEdit(record domain.Punto) error {
	if !record.Persisted() {
		return apperrors.ErrPuntoNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.writing {
		return apperrors.ErrWriteInFlight
	}
	if uc.state != SessionClosed {
		return apperrors.ErrSessionBusy
	}

	id := *record.ID
	record.ID = &id
	uc.draft = record
	uc.state = SessionEditing

	uc.logger.Debug("Edit session opened for edit", zap.Int64("id", id))
	return nil
}

// UpdateDraft applies a partial field patch to the draft. Pure local
// mutation, no I/O. Fill levels snap to the 25% steps the form offers.
func (uc *EditSessionUseCase) UpdateDraft(patch dto.DraftPatchRequest) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.writing {
		return apperrors.ErrWriteInFlight
	}
	if uc.state != SessionCreating && uc.state != SessionEditing {
		return apperrors.ErrSessionClosed
	}

	if patch.Nombre != nil {
		uc.draft.Nombre = *patch.Nombre
	}
	if patch.TipoResiduo != nil {
		uc.draft.TipoResiduo = *patch.TipoResiduo
	}
	if patch.EstadoLlenado != nil {
		uc.draft.EstadoLlenado = domain.QuantizeFill(*patch.EstadoLlenado)
	}
	if patch.Latitud != nil {
		uc.draft.Latitud = *patch.Latitud
	}
	if patch.Longitud != nil {
		uc.draft.Longitud = *patch.Longitud
	}
	return nil
}

// Save issues exactly one write: update when the draft has an
// identity, create otherwise. On success the session closes and the
// controller reloads; on failure the session stays where it was so the
// user can retry or cancel.
func (uc *EditSessionUseCase) Save(ctx context.Context) error {
	uc.mu.Lock()
	if uc.state != SessionCreating && uc.state != SessionEditing {
		uc.mu.Unlock()
		return apperrors.ErrSessionClosed
	}
	if uc.writing {
		uc.mu.Unlock()
		return apperrors.ErrWriteInFlight
	}
	uc.writing = true
	draft := uc.draft
	uc.mu.Unlock()

	var err error
	if draft.Persisted() {
		_, err = uc.repo.Update(ctx, *draft.ID, draft)
	} else {
		_, err = uc.repo.Create(ctx, draft)
	}

	if err != nil {
		uc.mu.Lock()
		uc.writing = false
		uc.mu.Unlock()

		uc.logger.Error("Failed to save punto", zap.Error(err))
		uc.notifier.Publish(notify.LevelError, "No se pudo guardar el punto")
		return err
	}

	if draft.Persisted() {
		uc.notifier.Publish(notify.LevelSuccess, "Punto actualizado")
	} else {
		uc.notifier.Publish(notify.LevelSuccess, "Punto creado")
	}

	uc.mu.Lock()
	uc.state = SessionClosed
	uc.draft = domain.Punto{}
	uc.writing = false
	uc.mu.Unlock()

	if reloadErr := uc.view.Reload(ctx); reloadErr != nil {
		// The write landed but the collection collapsed to empty; the
		// load warning replaces the success toast.
		uc.logger.Warn("Reload after save failed", zap.Error(reloadErr))
		uc.notifier.Publish(notify.LevelWarning, "No se pudieron cargar los puntos")
	}
	return nil
}

// RequestDelete arms the confirmation gate. Only a persisted draft can
// be deleted.
func (uc *EditSessionUseCase) RequestDelete() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.writing {
		return apperrors.ErrWriteInFlight
	}

	switch uc.state {
	case SessionEditing:
	case SessionCreating:
		return apperrors.ErrDraftNotPersisted
	default:
		return apperrors.ErrSessionClosed
	}

	uc.state = SessionConfirmingDelete
	uc.logger.Debug("Delete requested", zap.Int64("id", *uc.draft.ID))
	return nil
}

// ConfirmDelete issues the delete after the explicit confirmation. On
// failure the session falls back to editing with the draft intact.
func (uc *EditSessionUseCase) ConfirmDelete(ctx context.Context) error {
	uc.mu.Lock()
	if uc.state != SessionConfirmingDelete {
		uc.mu.Unlock()
		return apperrors.ErrNoPendingDelete
	}
	if uc.writing {
		uc.mu.Unlock()
		return apperrors.ErrWriteInFlight
	}
	uc.writing = true
	id := *uc.draft.ID
	uc.mu.Unlock()

	err := uc.repo.Delete(ctx, id)

	if err != nil {
		uc.mu.Lock()
		uc.state = SessionEditing
		uc.writing = false
		uc.mu.Unlock()

		uc.logger.Error("Failed to delete punto", zap.Int64("id", id), zap.Error(err))
		uc.notifier.Publish(notify.LevelError, "No se pudo eliminar el punto")
		return err
	}

	uc.notifier.Publish(notify.LevelSuccess, "Punto eliminado")

	uc.mu.Lock()
	uc.state = SessionClosed
	uc.draft = domain.Punto{}
	uc.writing = false
	uc.mu.Unlock()

	if reloadErr := uc.view.Reload(ctx); reloadErr != nil {
		uc.logger.Warn("Reload after delete failed", zap.Error(reloadErr))
		uc.notifier.Publish(notify.LevelWarning, "No se pudieron cargar los puntos")
	}
	return nil
}

// DeclineDelete is the normal cancellation path of the confirmation
// gate, not an error. The session returns to editing untouched.
func (uc *EditSessionUseCase) DeclineDelete() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.writing {
		return apperrors.ErrWriteInFlight
	}
	if uc.state != SessionConfirmingDelete {
		return apperrors.ErrNoPendingDelete
	}
	uc.state = SessionEditing
	return nil
}

// Cancel discards the draft and closes the session. No I/O.
func (uc *EditSessionUseCase) Cancel() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.writing {
		return apperrors.ErrWriteInFlight
	}
	if uc.state == SessionClosed {
		return apperrors.ErrSessionClosed
	}
	uc.state = SessionClosed
	uc.draft = domain.Punto{}
	return nil
}
