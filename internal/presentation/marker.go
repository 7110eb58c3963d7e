package presentation

import (
	"github.com/orekiez/pudu-field/internal/domain"
)

// CategoryUser is the reserved pseudo-category for the device position
// pin. It never appears in a persisted record.
const CategoryUser = "Usuario"

// MarkerStyle pairs the pin colour with a bootstrap-icons glyph.
type MarkerStyle struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Marker is one renderable map pin.
type Marker struct {
	ID             *int64      `json:"id,omitempty"`
	Nombre         string      `json:"nombre"`
	Latitud        float64     `json:"latitud"`
	Longitud       float64     `json:"longitud"`
	TipoResiduo    string      `json:"tipo_residuo"`
	EstadoLlenado  int         `json:"estado_llenado"`
	EstimacionDias string      `json:"estimacion_dias,omitempty"`
	Style          MarkerStyle `json:"style"`
	Transient      bool        `json:"transient,omitempty"`
}

// MarkerCatalog maps waste categories to their visual. The table is
// fixed at construction, the catalog holds no other state.
type MarkerCatalog struct {
	styles   map[string]MarkerStyle
	fallback MarkerStyle
}

func NewMarkerCatalog() *MarkerCatalog {
	general := MarkerStyle{Color: "#6c757d", Icon: "bi-trash", Label: domain.WasteGeneral}
	return &MarkerCatalog{
		styles: map[string]MarkerStyle{
			domain.WasteGlass:     {Color: "#198754", Icon: "bi-cup-straw", Label: domain.WasteGlass},
			domain.WastePlastic:   {Color: "#0dcaf0", Icon: "bi-water", Label: domain.WastePlastic},
			domain.WasteCardboard: {Color: "#ffc107", Icon: "bi-box-seam", Label: domain.WasteCardboard},
			domain.WasteGeneral:   general,
			CategoryUser:          {Color: "#dc3545", Icon: "bi-geo-alt-fill", Label: "Yo"},
		},
		fallback: general,
	}
}

// StyleFor is total: any category string the catalog does not know
// gets the General visual.
func (mc *MarkerCatalog) StyleFor(categoria string) MarkerStyle {
	if style, ok := mc.styles[categoria]; ok {
		return style
	}
	return mc.fallback
}

// MarkerFor projects a persisted record onto the map surface. Fill is
// clamped for display, the record itself keeps whatever the server
// sent.
func (mc *MarkerCatalog) MarkerFor(p domain.Punto) Marker {
	return Marker{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Latitud:        p.Latitud,
		Longitud:       p.Longitud,
		TipoResiduo:    p.TipoResiduo,
		EstadoLlenado:  domain.ClampFill(p.EstadoLlenado),
		EstimacionDias: p.EstimacionDias,
		Style:          mc.StyleFor(p.TipoResiduo),
	}
}

// Markers projects a whole collection. Order follows the input, every
// marker is independent.
func (mc *MarkerCatalog) Markers(puntos []domain.Punto) []Marker {
	markers := make([]Marker, 0, len(puntos))
	for _, p := range puntos {
		markers = append(markers, mc.MarkerFor(p))
	}
	return markers
}

// UserMarker builds the transient device-location pin.
func (mc *MarkerCatalog) UserMarker(loc domain.Coordinate) Marker {
	return Marker{
		Nombre:      "Estás aquí",
		Latitud:     loc.Latitud,
		Longitud:    loc.Longitud,
		TipoResiduo: CategoryUser,
		Style:       mc.StyleFor(CategoryUser),
		Transient:   true,
	}
}
