package usecase

import (
	"context"
	"sync"

	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/orekiez/pudu-field/internal/domain/repository"
	"go.uber.org/zap"
)

// Events published to subscribers after a state change. Presentation
// recomputes from the latest state on each event, there is no diffing.
const (
	EventPointsReloaded = "points_reloaded"
	EventFilterChanged  = "filter_changed"
	EventModeChanged    = "mode_changed"
	EventLocationMoved  = "location_moved"
)

// ViewStateUseCase is the single owner of the point collection, the
// active filter and the view mode. Nothing mutates the collection
// except Reload, which replaces it wholesale.
type ViewStateUseCase struct {
	repo   repository.PuntoRepository
	logger *zap.Logger

	mu        sync.Mutex
	points    []domain.Punto
	filter    string
	mode      domain.ViewMode
	location  *domain.Coordinate
	reloadSeq uint64

	subsMu sync.Mutex
	subs   []func(event string)
}

func NewViewStateUseCase(
	repo repository.PuntoRepository,
	logger *zap.Logger,
) *ViewStateUseCase {
	return &ViewStateUseCase{
		repo:   repo,
		logger: logger,
		points: []domain.Punto{},
		filter: domain.FilterAll,
		mode:   domain.ModeMap,
	}
}

// Subscribe registers an observer for state-change events. Observers
// run synchronously after the change is applied.
func (uc *ViewStateUseCase) Subscribe(fn func(event string)) {
	uc.subsMu.Lock()
	uc.subs = append(uc.subs, fn)
	uc.subsMu.Unlock()
}

func (uc *ViewStateUseCase) publish(event string) {
	uc.subsMu.Lock()
	subs := make([]func(string), len(uc.subs))
	copy(subs, uc.subs)
	uc.subsMu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// Reload replaces the collection from the remote store. On failure the
// collection collapses to empty rather than keeping a stale list, and
// the error still reaches the caller for surfacing. When reloads
// overlap, the most recently issued one wins: a slower earlier
// response is discarded.
func (uc *ViewStateUseCase) Reload(ctx context.Context) error {
	uc.mu.Lock()
	uc.reloadSeq++
	seq := uc.reloadSeq
	uc.mu.Unlock()

	points, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load puntos, collapsing to empty", zap.Error(err))
		points = nil
	}
	if points == nil {
		points = []domain.Punto{}
	}

	uc.mu.Lock()
	if seq != uc.reloadSeq {
		uc.mu.Unlock()
		uc.logger.Debug("Discarding stale reload result",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", uc.reloadSeq))
		return err
	}
	uc.points = points
	uc.mu.Unlock()

	uc.logger.Info("Puntos reloaded", zap.Int("count", len(points)))
	uc.publish(EventPointsReloaded)
	return err
}

// Points returns a copy of the full collection in server order.
func (uc *ViewStateUseCase) Points() []domain.Punto {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	points := make([]domain.Punto, len(uc.points))
	copy(points, uc.points)
	return points
}

// PointByID finds a record in the loaded collection.
func (uc *ViewStateUseCase) PointByID(id int64) (domain.Punto, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, p := range uc.points {
		if p.ID != nil && *p.ID == id {
			return p, true
		}
	}
	return domain.Punto{}, false
}

// VisiblePoints derives the filtered collection on demand. Under the
// Todos filter it is the identity; otherwise the subset with the
// matching category, relative order preserved. Recomputed every call,
// the collection is small.
func (uc *ViewStateUseCase) VisiblePoints() []domain.Punto {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.visibleLocked()
}

func (uc *ViewStateUseCase) visibleLocked() []domain.Punto {
	if uc.filter == domain.FilterAll {
		points := make([]domain.Punto, len(uc.points))
		copy(points, uc.points)
		return points
	}

	visible := make([]domain.Punto, 0, len(uc.points))
	for _, p := range uc.points {
		if p.TipoResiduo == uc.filter {
			visible = append(visible, p)
		}
	}
	return visible
}

// ViewSnapshot is one coherent reading of the whole view state.
type ViewSnapshot struct {
	Points   []domain.Punto
	Visible  []domain.Punto
	Filter   string
	Mode     domain.ViewMode
	Location *domain.Coordinate
}

// Snapshot captures the collection, the filter, the mode and the
// device position under a single lock, so one response never mixes
// points from one filter with the name of another.
func (uc *ViewStateUseCase) Snapshot() ViewSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	points := make([]domain.Punto, len(uc.points))
	copy(points, uc.points)

	snap := ViewSnapshot{
		Points:  points,
		Visible: uc.visibleLocked(),
		Filter:  uc.filter,
		Mode:    uc.mode,
	}
	if uc.location != nil {
		loc := *uc.location
		snap.Location = &loc
	}
	return snap
}

func (uc *ViewStateUseCase) Filter() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.filter
}

// SetFilter is a pure state transition, never sent to the server.
func (uc *ViewStateUseCase) SetFilter(filter string) {
	uc.mu.Lock()
	uc.filter = filter
	uc.mu.Unlock()
	uc.publish(EventFilterChanged)
}

func (uc *ViewStateUseCase) Mode() domain.ViewMode {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.mode
}

func (uc *ViewStateUseCase) SetMode(mode domain.ViewMode) {
	uc.mu.Lock()
	uc.mode = mode
	uc.mu.Unlock()
	uc.publish(EventModeChanged)
}

// UserLocation returns the last reported device position, if any.
func (uc *ViewStateUseCase) UserLocation() *domain.Coordinate {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.location == nil {
		return nil
	}
	loc := *uc.location
	return &loc
}

// SetUserLocation records a device position report. Independent of the
// point collection.
func (uc *ViewStateUseCase) SetUserLocation(loc domain.Coordinate) {
	uc.mu.Lock()
	uc.location = &loc
	uc.mu.Unlock()
	uc.publish(EventLocationMoved)
}
