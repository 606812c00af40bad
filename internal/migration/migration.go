package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"riskstat/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createSeriesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create series table")
	}

	if err := r.createObservationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create series_observations table")
	}

	if err := r.createResultsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create series_results table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createSeriesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS series (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			source VARCHAR(1024) NOT NULL DEFAULT '',
			column_key VARCHAR(255) NOT NULL DEFAULT '',
			skipped INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createObservationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS series_observations (
			series_id UUID NOT NULL REFERENCES series(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (series_id, position)
		)
	`)
	return err
}

func (r *MigrationRunner) createResultsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS series_results (
			series_id UUID NOT NULL REFERENCES series(id) ON DELETE CASCADE,
			mode VARCHAR(32) NOT NULL,
			mean DOUBLE PRECISION NOT NULL,
			std_dev DOUBLE PRECISION NOT NULL,
			count INTEGER NOT NULL,
			computed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (series_id, mode)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_series_name ON series(name);
		CREATE INDEX IF NOT EXISTS idx_series_created_at ON series(created_at DESC)
	`)
	return err
}
