package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // driver sqlite en Go puro
)

// Open abre (o crea) el archivo SQLite y asegura el schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "catgen.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// un solo escritor; evita SQLITE_BUSY entre conexiones del pool
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}
	return db, nil
}

var schema = []string{
	`PRAGMA foreign_keys = ON`,
	`CREATE TABLE IF NOT EXISTS dataset_runs (
		id            TEXT PRIMARY KEY,
		created_at    TEXT NOT NULL,
		seed          TEXT NOT NULL,
		requested     INTEGER NOT NULL,
		supplement    INTEGER NOT NULL,
		total         INTEGER NOT NULL,
		params_source TEXT NOT NULL,
		label_counts  TEXT NOT NULL,
		label_noise   INTEGER NOT NULL,
		export_uri    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS dataset_records (
		run_id        TEXT NOT NULL REFERENCES dataset_runs(id) ON DELETE CASCADE,
		seq           INTEGER NOT NULL,
		category      TEXT NOT NULL,
		health_status TEXT NOT NULL,
		record        BLOB NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS dataset_records_status_idx ON dataset_records (run_id, health_status, seq)`,
}
