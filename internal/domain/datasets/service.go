package datasets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"cat-health-synth/internal/adapters/export/csvfile"
	"cat-health-synth/internal/domain/health"
	"cat-health-synth/internal/domain/synth"
	"cat-health-synth/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrUploadNotConfigured = errors.New("upload sink not configured")
)

const (
	MaxRecords       = 100_000
	defaultPageSize  = 50
	maxPageSize      = 500
	defaultRunsLimit = 20
)

// Uploader publica un dataset exportado y devuelve su URI.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Recorder recibe una observación por registro generado.
type Recorder interface {
	RecordGenerated(status string, noisy bool)
}

type Service struct {
	repo         Repository
	params       synth.Params
	paramsSource string
	uploader     Uploader
	recorder     Recorder
	log          logger.Logger
	now          func() time.Time
}

type Options struct {
	Params       *synth.Params
	ParamsSource string
	Uploader     Uploader
	Recorder     Recorder
	Logger       logger.Logger
	Now          func() time.Time
}

func NewService(repo Repository, opts Options) *Service {
	s := &Service{
		repo:         repo,
		params:       synth.DefaultParams(),
		paramsSource: "default",
		uploader:     opts.Uploader,
		recorder:     opts.Recorder,
		log:          opts.Logger,
		now:          time.Now,
	}
	if opts.Params != nil {
		s.params = *opts.Params
	}
	if opts.ParamsSource != "" {
		s.paramsSource = opts.ParamsSource
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if opts.Now != nil {
		s.now = opts.Now
	}
	return s
}

type GenerateInput struct {
	Records    int
	Supplement int
	// Seed 0 => se elige una al azar y queda registrada en la corrida.
	Seed uint64
}

func (s *Service) Generate(ctx context.Context, in GenerateInput) (Run, error) {
	if in.Records < 0 || in.Supplement < 0 {
		return Run{}, fmt.Errorf("%w: counts must be >= 0", ErrInvalidInput)
	}
	if in.Records+in.Supplement > MaxRecords {
		return Run{}, fmt.Errorf("%w: at most %d records per run", ErrInvalidInput, MaxRecords)
	}
	seed := in.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}

	run := Run{
		ID:           uuid.NewString(),
		CreatedAt:    s.now().UTC(),
		Seed:         seed,
		Requested:    in.Records,
		Supplement:   in.Supplement,
		ParamsSource: s.paramsSource,
		LabelCounts:  map[health.Status]int{},
	}

	g := synth.NewGenerator(s.params, synth.Options{
		Seed: seed,
		Now:  s.now,
		OnRecord: func(cat health.Status, rec health.Record) {
			noisy := cat != rec.HealthStatus
			run.LabelCounts[rec.HealthStatus]++
			if noisy {
				run.LabelNoise++
			}
			if s.recorder != nil {
				s.recorder.RecordGenerated(string(rec.HealthStatus), noisy)
			}
		},
	})
	samples := g.GenerateSamples(in.Records, in.Supplement)
	run.Total = len(samples)

	stored := make([]StoredRecord, len(samples))
	for i, smp := range samples {
		stored[i] = StoredRecord{RunID: run.ID, Seq: i, Category: smp.Category, Record: smp.Record}
	}
	if err := s.repo.CreateRun(ctx, run, stored); err != nil {
		return Run{}, fmt.Errorf("persist run: %w", err)
	}

	s.log.Info("dataset generated", map[string]any{
		"run_id":      run.ID,
		"seed":        run.Seed,
		"requested":   run.Requested,
		"supplement":  run.Supplement,
		"healthy":     run.LabelCounts[health.StatusHealthy],
		"at_risk":     run.LabelCounts[health.StatusAtRisk],
		"unhealthy":   run.LabelCounts[health.StatusUnhealthy],
		"label_noise": run.LabelNoise,
	})
	return run, nil
}

func (s *Service) GetRun(ctx context.Context, id string) (Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrNotFound
	}
	return s.repo.GetRun(ctx, id)
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.ListRuns(ctx, limit)
}

// ListRecords pagina los registros de una corrida (default 50, máx 500).
func (s *Service) ListRecords(ctx context.Context, runID string, filter RecordFilter) ([]StoredRecord, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return s.repo.ListRecords(ctx, runID, filter)
}

// Export escribe la corrida completa como CSV.
func (s *Service) Export(ctx context.Context, runID string, w io.Writer) error {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return err
	}
	stored, err := s.repo.ListRecords(ctx, runID, RecordFilter{})
	if err != nil {
		return err
	}
	recs := make([]health.Record, len(stored))
	for i, st := range stored {
		recs[i] = st.Record
	}
	return csvfile.Write(w, recs)
}

// Upload exporta la corrida y la publica en el sink configurado.
func (s *Service) Upload(ctx context.Context, runID string) (Run, error) {
	if s.uploader == nil {
		return Run{}, ErrUploadNotConfigured
	}
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return Run{}, err
	}

	var buf bytes.Buffer
	if err := s.Export(ctx, runID, &buf); err != nil {
		return Run{}, err
	}
	uri, err := s.uploader.Upload(ctx, run.ID+".csv", "text/csv", buf.Bytes())
	if err != nil {
		return Run{}, fmt.Errorf("upload run %s: %w", run.ID, err)
	}
	if err := s.repo.SetExportURI(ctx, run.ID, uri); err != nil {
		return Run{}, err
	}
	run.ExportURI = uri

	s.log.Info("dataset uploaded", map[string]any{"run_id": run.ID, "uri": uri})
	return run, nil
}
