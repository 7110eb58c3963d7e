package dto

import (
	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/orekiez/pudu-field/internal/notify"
	"github.com/orekiez/pudu-field/internal/presentation"
)

// SessionView is the delivery-layer picture of the edit session.
type SessionView struct {
	State string        `json:"state"`
	Draft *domain.Punto `json:"draft,omitempty"`
}

// StateResponse is the full client-state snapshot the page renders
// from. Puntos carries the filter, Tabla never does.
type StateResponse struct {
	Puntos       []domain.Punto     `json:"puntos"`
	Tabla        []presentation.Row `json:"tabla"`
	Filtro       string             `json:"filtro"`
	Modo         domain.ViewMode    `json:"modo"`
	Total        int                `json:"total"`
	Ubicacion    *domain.Coordinate `json:"ubicacion,omitempty"`
	Notificacion *notify.Message    `json:"notificacion,omitempty"`
	Sesion       SessionView        `json:"sesion"`
}

// MarkersResponse is the map-surface projection of the visible points
// plus the transient device pin.
type MarkersResponse struct {
	Markers []presentation.Marker `json:"markers"`
}

// MapConfigResponse bootstraps the page: base layer and initial
// viewport.
type MapConfigResponse struct {
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
	CenterLat   float64 `json:"center_lat"`
	CenterLng   float64 `json:"center_lng"`
	Zoom        int     `json:"zoom"`
}
