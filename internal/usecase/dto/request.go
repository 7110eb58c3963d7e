package dto

// CreateSessionRequest seeds a new draft from a map click.
type CreateSessionRequest struct {
	Latitud  *float64 `json:"latitud" validate:"required"`
	Longitud *float64 `json:"longitud" validate:"required"`
}

// EditSessionRequest opens the session on an existing record.
type EditSessionRequest struct {
	ID *int64 `json:"id" validate:"required"`
}

// DraftPatchRequest is a partial update of the open draft. The fill
// control only offers five positions, enforced here at the boundary
// and snapped again in the session.
type DraftPatchRequest struct {
	Nombre        *string  `json:"nombre,omitempty"`
	TipoResiduo   *string  `json:"tipo_residuo,omitempty"`
	EstadoLlenado *int     `json:"estado_llenado,omitempty" validate:"omitempty,oneof=0 25 50 75 100"`
	Latitud       *float64 `json:"latitud,omitempty"`
	Longitud      *float64 `json:"longitud,omitempty"`
}

// FilterRequest switches the display-time category predicate. Any
// category string is accepted, Todos disables filtering.
type FilterRequest struct {
	Filtro string `json:"filtro" validate:"required"`
}

// ModeRequest switches between the map and table projections.
type ModeRequest struct {
	Modo string `json:"modo" validate:"required,oneof=map table"`
}

// LocationRequest reports the device position. A browser whose
// geolocation fails simply never sends one.
type LocationRequest struct {
	Latitud  *float64 `json:"latitud" validate:"required"`
	Longitud *float64 `json:"longitud" validate:"required"`
}

// DismissRequest clears the identified notification.
type DismissRequest struct {
	ID string `json:"id" validate:"required"`
}
