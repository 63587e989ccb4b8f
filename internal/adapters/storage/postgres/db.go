package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS dataset_runs (
		id            TEXT PRIMARY KEY,
		created_at    TIMESTAMPTZ NOT NULL,
		seed          TEXT NOT NULL,
		requested     INTEGER NOT NULL,
		supplement    INTEGER NOT NULL,
		total         INTEGER NOT NULL,
		params_source TEXT NOT NULL,
		label_counts  JSONB NOT NULL,
		label_noise   INTEGER NOT NULL,
		export_uri    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS dataset_records (
		run_id        TEXT NOT NULL REFERENCES dataset_runs(id) ON DELETE CASCADE,
		seq           INTEGER NOT NULL,
		category      TEXT NOT NULL,
		health_status TEXT NOT NULL,
		record        JSONB NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS dataset_records_status_idx ON dataset_records (run_id, health_status, seq)`,
}

// EnsureSchema crea las tablas si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
