package ports

import (
	"context"

	"riskstat/domain/core"
	"riskstat/domain/sample"
)

// SeriesRepository defines the interface for series storage operations
type SeriesRepository interface {
	// Core CRUD operations
	Create(ctx context.Context, s *sample.Series) error
	GetByID(ctx context.Context, id core.SeriesID) (*sample.Series, error)
	List(ctx context.Context, limit, offset int) ([]*sample.Series, error)
	Delete(ctx context.Context, id core.SeriesID) error

	// Result caching
	SaveResult(ctx context.Context, id core.SeriesID, result sample.StatisticsResult) error
	GetResult(ctx context.Context, id core.SeriesID, mode sample.VarianceMode) (*sample.StatisticsResult, error)
}
