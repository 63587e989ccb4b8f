package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cat-health-synth/internal/domain/datasets"
	"cat-health-synth/internal/domain/health"
)

type DatasetsRepo struct {
	db *sql.DB
}

func NewDatasetsRepo(db *sql.DB) *DatasetsRepo {
	return &DatasetsRepo{db: db}
}

var _ datasets.Repository = (*DatasetsRepo)(nil)

func (r *DatasetsRepo) CreateRun(ctx context.Context, run datasets.Run, recs []datasets.StoredRecord) (retErr error) {
	counts, err := json.Marshal(run.LabelCounts)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO dataset_runs (
			id, created_at, seed,
			requested, supplement, total,
			params_source, label_counts, label_noise, export_uri
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		run.ID,
		run.CreatedAt,
		strconv.FormatUint(run.Seed, 10),
		run.Requested,
		run.Supplement,
		run.Total,
		run.ParamsSource,
		string(counts),
		run.LabelNoise,
		run.ExportURI,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dataset_records (run_id, seq, category, health_status, record)
		VALUES ($1,$2,$3,$4,$5)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sr := range recs {
		b, err := json.Marshal(sr.Record)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", sr.Seq, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, sr.Seq, string(sr.Category), string(sr.Record.HealthStatus), string(b)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const runColumns = `
	id, created_at, seed,
	requested, supplement, total,
	params_source, label_counts, label_noise, export_uri
`

func (r *DatasetsRepo) GetRun(ctx context.Context, id string) (datasets.Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return datasets.Run{}, datasets.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM dataset_runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return datasets.Run{}, datasets.ErrNotFound
	}
	return run, err
}

func (r *DatasetsRepo) ListRuns(ctx context.Context, limit int) ([]datasets.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM dataset_runs
		ORDER BY created_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]datasets.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *DatasetsRepo) ListRecords(ctx context.Context, runID string, filter datasets.RecordFilter) ([]datasets.StoredRecord, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT run_id, seq, category, record
		FROM dataset_records
		WHERE run_id = $1
	`)
	args := []any{runID}
	argN := 2

	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" AND health_status = $%d", argN))
		args = append(args, string(filter.Status))
		argN++
	}
	sb.WriteString(" ORDER BY seq")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
		argN++
	}
	if filter.Offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", argN))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]datasets.StoredRecord, 0)
	for rows.Next() {
		var (
			sr       datasets.StoredRecord
			category string
			raw      []byte
		)
		if err := rows.Scan(&sr.RunID, &sr.Seq, &category, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &sr.Record); err != nil {
			return nil, fmt.Errorf("decode record %s/%d: %w", sr.RunID, sr.Seq, err)
		}
		sr.Category = health.Status(category)
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (r *DatasetsRepo) SetExportURI(ctx context.Context, runID, uri string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE dataset_runs SET export_uri = $1 WHERE id = $2`, uri, runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return datasets.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (datasets.Run, error) {
	var (
		run    datasets.Run
		seed   string
		counts []byte
	)
	if err := s.Scan(
		&run.ID,
		&run.CreatedAt,
		&seed,
		&run.Requested,
		&run.Supplement,
		&run.Total,
		&run.ParamsSource,
		&counts,
		&run.LabelNoise,
		&run.ExportURI,
	); err != nil {
		return datasets.Run{}, err
	}
	var err error
	if run.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return datasets.Run{}, fmt.Errorf("decode seed: %w", err)
	}
	run.LabelCounts = map[health.Status]int{}
	if err := json.Unmarshal(counts, &run.LabelCounts); err != nil {
		return datasets.Run{}, fmt.Errorf("decode label counts: %w", err)
	}
	return run, nil
}
