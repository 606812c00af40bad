package ports

import (
	"context"

	"riskstat/domain/core"
	"riskstat/domain/sample"
)

// ColumnData is one named numeric column extracted from a tabular file.
type ColumnData struct {
	Key     core.ColumnKey
	Values  sample.SampleSet
	Skipped int // non-numeric cells dropped
}

// SeriesReader reads numeric columns out of a tabular data file.
// Implementations decide the supported formats from the file extension.
type SeriesReader interface {
	// ReadColumns reads every numeric column in the file.
	ReadColumns(ctx context.Context, path string) ([]ColumnData, error)
	// ReadColumn reads a single column by header name.
	ReadColumn(ctx context.Context, path string, column core.ColumnKey) (*ColumnData, error)
}
