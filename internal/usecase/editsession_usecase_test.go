package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/orekiez/pudu-field/internal/notify"
	apperrors "github.com/orekiez/pudu-field/internal/pkg/errors"
	"github.com/orekiez/pudu-field/internal/usecase"
	"github.com/orekiez/pudu-field/internal/usecase/dto"
)

func newSession(repo *MockPuntoRepository) (*usecase.EditSessionUseCase, *usecase.ViewStateUseCase, *notify.Notifier) {
	logger := zap.NewNop()
	view := usecase.NewViewStateUseCase(repo, logger)
	notifier := notify.New(time.Minute, logger)
	session := usecase.NewEditSessionUseCase(repo, view, notifier, logger)
	return session, view, notifier
}

func strptr(s string) *string { return &s }
func intptr(v int) *int       { return &v }

func TestEditSession_CreateFlow(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, view, notifier := newSession(repo)

	require.NoError(t, session.BeginCreate(domain.Coordinate{Latitud: -39.82, Longitud: -73.25}))

	draft := session.View().Draft
	require.NotNil(t, draft)
	assert.Nil(t, draft.ID)
	assert.Equal(t, "", draft.Nombre)
	assert.Equal(t, 0, draft.EstadoLlenado)
	assert.Equal(t, domain.WasteGlass, draft.TipoResiduo)

	require.NoError(t, session.UpdateDraft(dto.DraftPatchRequest{Nombre: strptr("Nuevo")}))

	stored := domain.Punto{ID: ptr(10), Nombre: "Nuevo", Latitud: -39.82, Longitud: -73.25, TipoResiduo: domain.WasteGlass}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(d domain.Punto) bool {
		return d.ID == nil &&
			d.Nombre == "Nuevo" &&
			d.Latitud == -39.82 &&
			d.Longitud == -73.25
	})).Return(&stored, nil).Once()
	repo.On("List", mock.Anything).Return([]domain.Punto{stored}, nil).Once()

	require.NoError(t, session.Save(ctx))

	assert.Equal(t, string(usecase.SessionClosed), session.View().State)
	require.Len(t, view.Points(), 1)
	assert.Equal(t, "Nuevo", view.Points()[0].Nombre)

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.LevelSuccess, msg.Level)
	assert.Equal(t, "Punto creado", msg.Text)

	repo.AssertExpectations(t)
}

func TestEditSession_EditFlow(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, view, notifier := newSession(repo)

	record := domain.Punto{
		ID:            ptr(7),
		Nombre:        "Plaza",
		Latitud:       -39.8,
		Longitud:      -73.2,
		EstadoLlenado: 30,
		TipoResiduo:   domain.WasteGlass,
	}
	repo.On("List", mock.Anything).Return([]domain.Punto{record}, nil).Once()
	require.NoError(t, view.Reload(ctx))

	require.NoError(t, session.BeginEdit(record))
	require.NoError(t, session.UpdateDraft(dto.DraftPatchRequest{EstadoLlenado: intptr(75)}))

	updated := record
	updated.EstadoLlenado = 75
	repo.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(d domain.Punto) bool {
		// Everything but the fill level stays as it was.
		return d.ID != nil && *d.ID == 7 &&
			d.EstadoLlenado == 75 &&
			d.Nombre == "Plaza" &&
			d.Latitud == -39.8 &&
			d.Longitud == -73.2 &&
			d.TipoResiduo == domain.WasteGlass
	})).Return(&updated, nil).Once()
	repo.On("List", mock.Anything).Return([]domain.Punto{updated}, nil).Once()

	require.NoError(t, session.Save(ctx))

	assert.Equal(t, string(usecase.SessionClosed), session.View().State)
	require.Len(t, view.Points(), 1)
	assert.Equal(t, 75, view.Points()[0].EstadoLlenado)

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, "Punto actualizado", msg.Text)

	repo.AssertExpectations(t)
}

func TestEditSession_SaveFailureKeepsSessionOpen(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, _, notifier := newSession(repo)

	require.NoError(t, session.BeginCreate(domain.Coordinate{Latitud: -39.82, Longitud: -73.25}))

	repo.On("Create", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrRemoteUnavailable).Once()

	err := session.Save(ctx)
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)

	// Session stays open with the draft intact, no reload is triggered.
	assert.Equal(t, string(usecase.SessionCreating), session.View().State)
	repo.AssertNotCalled(t, "List", mock.Anything)

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.LevelError, msg.Level)
}

func TestEditSession_WriteInFlightFreezesSession(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, _, _ := newSession(repo)

	require.NoError(t, session.BeginCreate(domain.Coordinate{Latitud: -39.82, Longitud: -73.25}))
	require.NoError(t, session.UpdateDraft(dto.DraftPatchRequest{Nombre: strptr("Primera")}))

	createEntered := make(chan struct{})
	createRelease := make(chan struct{})
	stored := domain.Punto{ID: ptr(11), Nombre: "Primera", Latitud: -39.82, Longitud: -73.25}

	repo.On("Create", mock.Anything, mock.Anything).Return(&stored, nil).Once().
		Run(func(mock.Arguments) {
			close(createEntered)
			<-createRelease
		})
	repo.On("List", mock.Anything).Return([]domain.Punto{stored}, nil).Once()

	done := make(chan error, 1)
	go func() {
		done <- session.Save(ctx)
	}()
	<-createEntered

	// With the write outstanding, no transition can sneak in: a cancel
	// followed by a fresh create would otherwise be wiped out when the
	// old write resolves and closes the session.
	assert.ErrorIs(t, session.Cancel(), apperrors.ErrWriteInFlight)
	assert.ErrorIs(t, session.BeginCreate(domain.Coordinate{}), apperrors.ErrWriteInFlight)
	assert.ErrorIs(t, session.BeginEdit(stored), apperrors.ErrWriteInFlight)
	assert.ErrorIs(t, session.UpdateDraft(dto.DraftPatchRequest{Nombre: strptr("Segunda")}), apperrors.ErrWriteInFlight)
	assert.ErrorIs(t, session.RequestDelete(), apperrors.ErrWriteInFlight)
	assert.ErrorIs(t, session.Save(ctx), apperrors.ErrWriteInFlight)

	close(createRelease)
	require.NoError(t, <-done)

	// Once the write resolves the session is closed and usable again.
	assert.Equal(t, string(usecase.SessionClosed), session.View().State)
	require.NoError(t, session.BeginCreate(domain.Coordinate{Latitud: -39.83, Longitud: -73.26}))
	require.NoError(t, session.UpdateDraft(dto.DraftPatchRequest{Nombre: strptr("Segunda")}))

	draft := session.View().Draft
	require.NotNil(t, draft)
	assert.Equal(t, "Segunda", draft.Nombre)

	repo.AssertExpectations(t)
}

func TestEditSession_DeleteInFlightFreezesSession(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, view, _ := newSession(repo)

	record := domain.Punto{ID: ptr(7), Nombre: "Plaza", TipoResiduo: domain.WasteGlass}
	repo.On("List", mock.Anything).Return([]domain.Punto{record}, nil).Once()
	require.NoError(t, view.Reload(ctx))
	require.NoError(t, session.BeginEdit(record))
	require.NoError(t, session.RequestDelete())

	deleteEntered := make(chan struct{})
	deleteRelease := make(chan struct{})
	repo.On("Delete", mock.Anything, int64(7)).Return(nil).Once().
		Run(func(mock.Arguments) {
			close(deleteEntered)
			<-deleteRelease
		})
	repo.On("List", mock.Anything).Return([]domain.Punto{}, nil).Once()

	done := make(chan error, 1)
	go func() {
		done <- session.ConfirmDelete(ctx)
	}()
	<-deleteEntered

	assert.ErrorIs(t, session.DeclineDelete(), apperrors.ErrWriteInFlight)
	assert.ErrorIs(t, session.Cancel(), apperrors.ErrWriteInFlight)
	assert.ErrorIs(t, session.ConfirmDelete(ctx), apperrors.ErrWriteInFlight)

	close(deleteRelease)
	require.NoError(t, <-done)

	assert.Equal(t, string(usecase.SessionClosed), session.View().State)
	repo.AssertExpectations(t)
}

func TestEditSession_ReloadFailureAfterSaveWarns(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, view, notifier := newSession(repo)

	require.NoError(t, session.BeginCreate(domain.Coordinate{Latitud: -39.82, Longitud: -73.25}))
	require.NoError(t, session.UpdateDraft(dto.DraftPatchRequest{Nombre: strptr("Nuevo")}))

	stored := domain.Punto{ID: ptr(10), Nombre: "Nuevo"}
	repo.On("Create", mock.Anything, mock.Anything).Return(&stored, nil).Once()
	repo.On("List", mock.Anything).Return(nil, apperrors.ErrRemoteUnavailable).Once()

	// The save itself succeeded, so the session still closes.
	require.NoError(t, session.Save(ctx))
	assert.Equal(t, string(usecase.SessionClosed), session.View().State)
	assert.Empty(t, view.Points())

	// The collection is gone, so the load warning replaces the
	// success toast.
	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.LevelWarning, msg.Level)
	assert.Equal(t, "No se pudieron cargar los puntos", msg.Text)

	repo.AssertExpectations(t)
}

func TestEditSession_BeginEditThenCancelHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, view, _ := newSession(repo)

	record := domain.Punto{ID: ptr(7), Nombre: "Plaza", TipoResiduo: domain.WasteGlass}
	repo.On("List", mock.Anything).Return([]domain.Punto{record}, nil).Once()
	require.NoError(t, view.Reload(ctx))

	pointsBefore := view.Points()
	filterBefore := view.Filter()
	modeBefore := view.Mode()

	require.NoError(t, session.BeginEdit(record))
	require.NoError(t, session.UpdateDraft(dto.DraftPatchRequest{Nombre: strptr("renombrada")}))
	require.NoError(t, session.Cancel())

	assert.Equal(t, string(usecase.SessionClosed), session.View().State)
	assert.Equal(t, pointsBefore, view.Points())
	assert.Equal(t, filterBefore, view.Filter())
	assert.Equal(t, modeBefore, view.Mode())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEditSession_FillLevelAlwaysOnStep(t *testing.T) {
	repo := &MockPuntoRepository{}
	session, _, _ := newSession(repo)

	require.NoError(t, session.BeginCreate(domain.Coordinate{}))

	steps := map[int]bool{0: true, 25: true, 50: true, 75: true, 100: true}
	for _, v := range []int{0, 10, 25, 33, 50, 60, 75, 99, 100, 140, -5} {
		require.NoError(t, session.UpdateDraft(dto.DraftPatchRequest{EstadoLlenado: intptr(v)}))
		draft := session.View().Draft
		require.NotNil(t, draft)
		assert.True(t, steps[draft.EstadoLlenado], "fill %d left the step set as %d", v, draft.EstadoLlenado)
	}
}

func TestEditSession_DeleteFlow(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, view, notifier := newSession(repo)

	record := domain.Punto{ID: ptr(7), Nombre: "Plaza", TipoResiduo: domain.WasteGlass}
	repo.On("List", mock.Anything).Return([]domain.Punto{record}, nil).Once()
	require.NoError(t, view.Reload(ctx))
	require.NoError(t, session.BeginEdit(record))

	t.Run("declining is a no-op", func(t *testing.T) {
		require.NoError(t, session.RequestDelete())
		assert.Equal(t, string(usecase.SessionConfirmingDelete), session.View().State)

		require.NoError(t, session.DeclineDelete())
		assert.Equal(t, string(usecase.SessionEditing), session.View().State)
		require.Len(t, view.Points(), 1)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("confirming deletes and reloads", func(t *testing.T) {
		require.NoError(t, session.RequestDelete())

		repo.On("Delete", mock.Anything, int64(7)).Return(nil).Once()
		repo.On("List", mock.Anything).Return([]domain.Punto{}, nil).Once()

		require.NoError(t, session.ConfirmDelete(ctx))

		assert.Equal(t, string(usecase.SessionClosed), session.View().State)
		assert.Empty(t, view.Points())

		msg := notifier.Current()
		require.NotNil(t, msg)
		assert.Equal(t, "Punto eliminado", msg.Text)

		repo.AssertExpectations(t)
	})
}

func TestEditSession_DeleteFailureFallsBackToEditing(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, view, notifier := newSession(repo)

	record := domain.Punto{ID: ptr(7), Nombre: "Plaza"}
	repo.On("List", mock.Anything).Return([]domain.Punto{record}, nil).Once()
	require.NoError(t, view.Reload(ctx))
	require.NoError(t, session.BeginEdit(record))
	require.NoError(t, session.RequestDelete())

	repo.On("Delete", mock.Anything, int64(7)).
		Return(apperrors.ErrRemoteUnavailable).Once()

	err := session.ConfirmDelete(ctx)
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)
	assert.Equal(t, string(usecase.SessionEditing), session.View().State)

	msg := notifier.Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.LevelError, msg.Level)
}

func TestEditSession_Guards(t *testing.T) {
	ctx := context.Background()
	repo := &MockPuntoRepository{}
	session, _, _ := newSession(repo)

	t.Run("closed session refuses everything but begin", func(t *testing.T) {
		assert.ErrorIs(t, session.Save(ctx), apperrors.ErrSessionClosed)
		assert.ErrorIs(t, session.Cancel(), apperrors.ErrSessionClosed)
		assert.ErrorIs(t, session.RequestDelete(), apperrors.ErrSessionClosed)
		assert.ErrorIs(t, session.ConfirmDelete(ctx), apperrors.ErrNoPendingDelete)
		assert.ErrorIs(t, session.DeclineDelete(), apperrors.ErrNoPendingDelete)
		assert.ErrorIs(t, session.UpdateDraft(dto.DraftPatchRequest{}), apperrors.ErrSessionClosed)
	})

	t.Run("only one session at a time", func(t *testing.T) {
		require.NoError(t, session.BeginCreate(domain.Coordinate{}))
		assert.ErrorIs(t, session.BeginCreate(domain.Coordinate{}), apperrors.ErrSessionBusy)
		assert.ErrorIs(t, session.BeginEdit(domain.Punto{ID: ptr(1)}), apperrors.ErrSessionBusy)
	})

	t.Run("create draft has nothing to delete", func(t *testing.T) {
		assert.ErrorIs(t, session.RequestDelete(), apperrors.ErrDraftNotPersisted)
	})

	t.Run("editing an unpersisted record is refused", func(t *testing.T) {
		require.NoError(t, session.Cancel())
		assert.ErrorIs(t, session.BeginEdit(domain.Punto{}), apperrors.ErrPuntoNotFound)
	})
}
