package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/internal"
	"riskstat/ports"
)

// DataReader handles reading Excel and CSV files into numeric columns.
type DataReader struct {
	sheet   string
	maxRows int
	logger  *internal.Logger
}

// Option configures a DataReader.
type Option func(*DataReader)

// WithSheet sets the worksheet read from .xlsx files.
func WithSheet(sheet string) Option {
	return func(r *DataReader) { r.sheet = sheet }
}

// WithMaxRows caps the number of data rows read from a file.
func WithMaxRows(n int) Option {
	return func(r *DataReader) { r.maxRows = n }
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(opts ...Option) *DataReader {
	r := &DataReader{
		sheet:   "Sheet1",
		maxRows: 100000,
		logger:  internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadColumns reads every numeric column of the file. A column is numeric when
// at least one of its cells parses as a float; unparsable cells in such a
// column are skipped and counted.
func (r *DataReader) ReadColumns(ctx context.Context, path string) ([]ports.ColumnData, error) {
	rows, err := r.readRows(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.extractColumns(rows)
}

// ReadColumn reads a single column by header name.
func (r *DataReader) ReadColumn(ctx context.Context, path string, column core.ColumnKey) (*ports.ColumnData, error) {
	columns, err := r.ReadColumns(ctx, path)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		if columns[i].Key == column {
			return &columns[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", core.ErrColumnNotFound, column, path)
}

// readRows loads the raw string grid, dispatching on file extension.
func (r *DataReader) readRows(ctx context.Context, path string) ([][]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, core.NewIngestError(path, fmt.Errorf("file not found"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return r.readCSVRows(path)
	case ".xlsx":
		return r.readExcelRows(path)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filepath.Ext(path))
	}
}

func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, core.NewIngestError(path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, core.NewIngestError(path, fmt.Errorf("failed to read %s: %w", r.sheet, err))
	}
	r.logger.Debug("read %d rows from %s in %s", len(rows), path, time.Since(start))
	return r.capRows(rows), nil
}

func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewIngestError(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewIngestError(path, err)
	}
	return r.capRows(rows), nil
}

func (r *DataReader) capRows(rows [][]string) [][]string {
	// +1 for the header row
	if r.maxRows > 0 && len(rows) > r.maxRows+1 {
		r.logger.Warn("truncating input to %d rows (had %d)", r.maxRows, len(rows)-1)
		rows = rows[:r.maxRows+1]
	}
	return rows
}

// extractColumns turns the string grid into numeric columns keyed by header.
func (r *DataReader) extractColumns(rows [][]string) ([]ports.ColumnData, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", core.ErrIngestFailed)
	}

	headers := rows[0]
	columns := make([]ports.ColumnData, 0, len(headers))

	for col, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("column_%d", col+1)
		}

		values := make(sample.SampleSet, 0, len(rows)-1)
		skipped := 0
		for _, row := range rows[1:] {
			if col >= len(row) {
				skipped++
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				skipped++
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				skipped++
				continue
			}
			values = append(values, v)
		}

		// Columns with no parsable cells are not numeric; drop them.
		if len(values) == 0 {
			continue
		}

		columns = append(columns, ports.ColumnData{
			Key:     core.ColumnKey(name),
			Values:  values,
			Skipped: skipped,
		})
	}

	if len(columns) == 0 {
		return nil, core.ErrNoNumericSamples
	}
	return columns, nil
}
