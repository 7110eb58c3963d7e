package presentation

import (
	"time"

	"github.com/orekiez/pudu-field/internal/domain"
)

// Severity bands the fill gauge the same way the progress bar colours
// it: ok up to 50, warn up to 80, critical above.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

func FillSeverity(fill int) Severity {
	fill = domain.ClampFill(fill)
	switch {
	case fill > 80:
		return SeverityCritical
	case fill > 50:
		return SeverityWarn
	default:
		return SeverityOK
	}
}

// Row is one line of the tabular projection.
type Row struct {
	ID             *int64   `json:"id,omitempty"`
	Nombre         string   `json:"nombre"`
	TipoResiduo    string   `json:"tipo_residuo"`
	Latitud        float64  `json:"latitud"`
	Longitud       float64  `json:"longitud"`
	EstadoLlenado  int      `json:"estado_llenado"`
	Severidad      Severity `json:"severidad"`
	EstimacionDias string   `json:"estimacion_dias,omitempty"`
	FechaCreacion  string   `json:"fecha_creacion,omitempty"`
}

// Rows projects the full collection, untouched by the map filter and
// in server-return order.
func Rows(puntos []domain.Punto) []Row {
	rows := make([]Row, 0, len(puntos))
	for _, p := range puntos {
		rows = append(rows, Row{
			ID:             p.ID,
			Nombre:         p.Nombre,
			TipoResiduo:    p.TipoResiduo,
			Latitud:        p.Latitud,
			Longitud:       p.Longitud,
			EstadoLlenado:  domain.ClampFill(p.EstadoLlenado),
			Severidad:      FillSeverity(p.EstadoLlenado),
			EstimacionDias: p.EstimacionDias,
			FechaCreacion:  formatCreated(p.FechaCreacion),
		})
	}
	return rows
}

// formatCreated localizes the server timestamp for display only.
func formatCreated(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("02-01-2006 15:04")
}
