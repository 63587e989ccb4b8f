package datasets

import (
	"context"

	"cat-health-synth/internal/domain/health"
)

type Repository interface {
	// CreateRun guarda la corrida y sus registros de forma atómica.
	CreateRun(ctx context.Context, run Run, records []StoredRecord) error
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns devuelve las corridas más recientes primero.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	ListRecords(ctx context.Context, runID string, filter RecordFilter) ([]StoredRecord, error)
	SetExportURI(ctx context.Context, runID, uri string) error
}

// RecordFilter: Status vacío no filtra. Limit <= 0 devuelve todo desde Offset.
type RecordFilter struct {
	Status health.Status
	Offset int
	Limit  int
}
