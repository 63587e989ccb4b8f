package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"cat-health-synth/internal/domain/datasets"
	"cat-health-synth/internal/domain/health"
)

type datasetRepo struct {
	mu      sync.RWMutex
	runs    map[string]datasets.Run
	records map[string][]datasets.StoredRecord
}

func NewDatasetRepo() datasets.Repository {
	return &datasetRepo{
		runs:    make(map[string]datasets.Run),
		records: make(map[string][]datasets.StoredRecord),
	}
}

func (r *datasetRepo) CreateRun(ctx context.Context, run datasets.Run, recs []datasets.StoredRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		return errors.New("run id required")
	}
	if _, exists := r.runs[run.ID]; exists {
		return errors.New("run already exists")
	}

	run.LabelCounts = copyCounts(run.LabelCounts)
	r.runs[run.ID] = run
	r.records[run.ID] = append([]datasets.StoredRecord(nil), recs...)
	return nil
}

func (r *datasetRepo) GetRun(ctx context.Context, id string) (datasets.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return datasets.Run{}, datasets.ErrNotFound
	}
	run.LabelCounts = copyCounts(run.LabelCounts)
	return run, nil
}

func (r *datasetRepo) ListRuns(ctx context.Context, limit int) ([]datasets.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]datasets.Run, 0, len(r.runs))
	for _, run := range r.runs {
		run.LabelCounts = copyCounts(run.LabelCounts)
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *datasetRepo) ListRecords(ctx context.Context, runID string, filter datasets.RecordFilter) ([]datasets.StoredRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all, ok := r.records[runID]
	if !ok {
		return nil, datasets.ErrNotFound
	}

	out := make([]datasets.StoredRecord, 0)
	skipped := 0
	for _, rec := range all {
		if filter.Status != "" && rec.Record.HealthStatus != filter.Status {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *datasetRepo) SetExportURI(ctx context.Context, runID, uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[runID]
	if !ok {
		return datasets.ErrNotFound
	}
	run.ExportURI = uri
	r.runs[runID] = run
	return nil
}

func copyCounts(in map[health.Status]int) map[health.Status]int {
	out := make(map[health.Status]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
