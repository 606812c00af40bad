package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/ports"
)

// seriesRepository implements the SeriesRepository interface
type seriesRepository struct {
	db *sqlx.DB
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(db *sqlx.DB) ports.SeriesRepository {
	return &seriesRepository{db: db}
}

// Create inserts a series and its observations in one transaction
func (r *seriesRepository) Create(ctx context.Context, s *sample.Series) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO series (id, name, source, column_key, skipped, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, query,
		s.ID, s.Name, s.Source, s.Column, s.Skipped, s.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO series_observations (series_id, position, value) VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("failed to prepare observation insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range s.Values {
		if _, err := stmt.ExecContext(ctx, s.ID, i, v); err != nil {
			return fmt.Errorf("failed to insert observation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit series: %w", err)
	}
	return nil
}

// GetByID retrieves a series and its ordered observations
func (r *seriesRepository) GetByID(ctx context.Context, id core.SeriesID) (*sample.Series, error) {
	var s sample.Series
	query := `SELECT id, name, source, column_key, skipped, created_at FROM series WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Source, &s.Column, &s.Skipped, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("series", id.String())
		}
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	values := []float64{}
	if err := r.db.SelectContext(ctx, &values,
		`SELECT value FROM series_observations WHERE series_id = $1 ORDER BY position`, id,
	); err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}
	s.Values = sample.SampleSet(values)

	return &s, nil
}

// List retrieves series metadata ordered by creation time, newest first.
// Observations are not loaded; use GetByID for the full series.
func (r *seriesRepository) List(ctx context.Context, limit, offset int) ([]*sample.Series, error) {
	query := `SELECT id, name, source, column_key, skipped, created_at
		FROM series
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var result []*sample.Series
	for rows.Next() {
		var s sample.Series
		if err := rows.Scan(&s.ID, &s.Name, &s.Source, &s.Column, &s.Skipped, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

// Delete removes a series; observations and results cascade
func (r *seriesRepository) Delete(ctx context.Context, id core.SeriesID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM series WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.NewNotFoundError("series", id.String())
	}
	return nil
}

// SaveResult upserts a computed result for a series and mode
func (r *seriesRepository) SaveResult(ctx context.Context, id core.SeriesID, result sample.StatisticsResult) error {
	query := `INSERT INTO series_results (series_id, mode, mean, std_dev, count, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (series_id, mode) DO UPDATE SET
			mean = EXCLUDED.mean,
			std_dev = EXCLUDED.std_dev,
			count = EXCLUDED.count,
			computed_at = EXCLUDED.computed_at`

	_, err := r.db.ExecContext(ctx, query,
		id, result.Mode, result.Mean, result.StdDev, result.Count, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResult loads a cached result for a series and mode
func (r *seriesRepository) GetResult(ctx context.Context, id core.SeriesID, mode sample.VarianceMode) (*sample.StatisticsResult, error) {
	var result sample.StatisticsResult
	query := `SELECT mean, std_dev, count, mode FROM series_results WHERE series_id = $1 AND mode = $2`
	err := r.db.QueryRowContext(ctx, query, id, mode).Scan(
		&result.Mean, &result.StdDev, &result.Count, &result.Mode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return &result, nil
}
