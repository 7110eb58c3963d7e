package domain

import "time"

// Waste categories as they travel on the wire. The set is open ended:
// a record may carry any string, unknown values are preserved verbatim
// and only fall back visually at presentation time.
const (
	WasteGlass     = "Vidrio"
	WastePlastic   = "Plástico"
	WasteCardboard = "Cartón"
	WasteGeneral   = "General"
)

// FilterAll disables category filtering.
const FilterAll = "Todos"

// ViewMode selects between the map and the table projection of the
// same point collection.
type ViewMode string

const (
	ModeMap   ViewMode = "map"
	ModeTable ViewMode = "table"
)

// FillSteps are the only fill levels the edit form offers. The API
// accepts any integer percentage; the input policy is deliberately
// coarser.
var FillSteps = []int{0, 25, 50, 75, 100}

// Coordinate is a WGS84 position.
type Coordinate struct {
	Latitud  float64 `json:"latitud"`
	Longitud float64 `json:"longitud"`
}

// Punto is one waste collection point as served by /api/puntos/.
// ID is nil for a draft that has not been persisted yet and is
// immutable once the server assigns it. EstimacionDias and
// FechaCreacion are computed server side and never written by us.
type Punto struct {
	ID                 *int64     `json:"id,omitempty"`
	Nombre             string     `json:"nombre"`
	Latitud            float64    `json:"latitud"`
	Longitud           float64    `json:"longitud"`
	EstadoLlenado      int        `json:"estado_llenado"`
	TipoResiduo        string     `json:"tipo_residuo"`
	FechaUltimoVaciado *time.Time `json:"fecha_ultimo_vaciado,omitempty"`
	FechaCreacion      *time.Time `json:"fecha_creacion,omitempty"`
	EstimacionDias     string     `json:"estimacion_dias,omitempty"`
}

// Persisted reports whether the server has assigned an identity.
func (p Punto) Persisted() bool {
	return p.ID != nil
}

// ClampFill forces a fill percentage into [0,100]. The server is not
// trusted to pre-clamp.
func ClampFill(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// QuantizeFill snaps a fill percentage to the nearest step in
// FillSteps.
func QuantizeFill(v int) int {
	return (ClampFill(v) + 12) / 25 * 25
}
