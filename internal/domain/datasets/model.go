package datasets

import (
	"time"

	"cat-health-synth/internal/domain/health"
)

// Run es una corrida de generación persistida.
type Run struct {
	ID           string
	CreatedAt    time.Time
	Seed         uint64
	Requested    int
	Supplement   int
	Total        int
	ParamsSource string

	// LabelCounts por label final (post re-etiquetado).
	LabelCounts map[health.Status]int
	// LabelNoise: registros cuyo label final difiere de la categoría de generación.
	LabelNoise int

	ExportURI string
}

// StoredRecord es un registro de una corrida, con su posición y la
// categoría con la que se generó.
type StoredRecord struct {
	RunID    string
	Seq      int
	Category health.Status
	Record   health.Record
}

type LabelShare struct {
	Status  health.Status `json:"status"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

// Distribution devuelve conteo y porcentaje por label, en orden canónico.
func (r Run) Distribution() []LabelShare {
	out := make([]LabelShare, 0, len(health.Statuses))
	for _, st := range health.Statuses {
		n := r.LabelCounts[st]
		var pct float64
		if r.Total > 0 {
			pct = float64(n) * 100 / float64(r.Total)
		}
		out = append(out, LabelShare{Status: st, Count: n, Percent: pct})
	}
	return out
}
