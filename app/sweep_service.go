package app

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/internal"
	"riskstat/ports"
	"riskstat/stats/descriptive"
	"riskstat/stats/profiling"
	"riskstat/stats/risk"
)

// SweepService ingests a tabular file and computes statistics for every
// numeric column concurrently.
type SweepService struct {
	reader   ports.SeriesReader
	repo     ports.SeriesRepository
	calc     *descriptive.Calculator
	profiler *profiling.DistributionAnalyzer
	workers  int
	logger   *internal.Logger
}

// NewSweepService creates a sweep service. workers bounds concurrent
// per-column computations; values below 1 are treated as 1.
func NewSweepService(reader ports.SeriesReader, repo ports.SeriesRepository, workers int) *SweepService {
	if workers < 1 {
		workers = 1
	}
	return &SweepService{
		reader:   reader,
		repo:     repo,
		calc:     descriptive.NewCalculator(),
		profiler: profiling.NewDistributionAnalyzer(),
		workers:  workers,
		logger:   internal.DefaultLogger,
	}
}

// ColumnReport is the full analysis of one ingested column.
type ColumnReport struct {
	SeriesID   core.SeriesID               `json:"series_id"`
	Column     core.ColumnKey              `json:"column"`
	Skipped    int                         `json:"skipped"`
	Statistics sample.StatisticsResult     `json:"statistics"`
	Summary    sample.SummaryStatistics    `json:"summary"`
	Profile    *sample.DistributionProfile `json:"profile,omitempty"`
	Risk       *sample.RiskComparison      `json:"risk,omitempty"`
}

// SweepResult contains the reports for every numeric column of a file.
type SweepResult struct {
	Source    string         `json:"source"`
	Columns   []ColumnReport `json:"columns"`
	RuntimeMs int64          `json:"runtime_ms"`
}

// RunSweep ingests the file, persists each numeric column as a series and
// computes its statistics. Column order in the result matches the file.
func (s *SweepService) RunSweep(ctx context.Context, path string, mode sample.VarianceMode) (*SweepResult, error) {
	start := time.Now()

	columns, err := s.reader.ReadColumns(ctx, path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("sweep over %s: %d numeric columns", path, len(columns))

	reports := make([]ColumnReport, len(columns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, col := range columns {
		i, col := i, col
		g.Go(func() error {
			report, err := s.analyzeColumn(gctx, path, col, mode)
			if err != nil {
				return err
			}
			reports[i] = *report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SweepResult{
		Source:    path,
		Columns:   reports,
		RuntimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// analyzeColumn persists the column and computes its reports. Profile and
// risk sections are optional: columns too short for them are still swept.
func (s *SweepService) analyzeColumn(ctx context.Context, path string, col ports.ColumnData, mode sample.VarianceMode) (*ColumnReport, error) {
	series := &sample.Series{
		ID:        core.SeriesID(core.NewID()),
		Name:      filepath.Base(path) + ":" + col.Key.String(),
		Source:    path,
		Column:    col.Key,
		Values:    col.Values,
		Skipped:   col.Skipped,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, series); err != nil {
		return nil, err
	}

	result, err := s.calc.Compute(col.Values, mode)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveResult(ctx, series.ID, result); err != nil {
		return nil, err
	}

	summary, err := s.calc.Summary(col.Values, mode)
	if err != nil {
		return nil, err
	}

	report := &ColumnReport{
		SeriesID:   series.ID,
		Column:     col.Key,
		Skipped:    col.Skipped,
		Statistics: result,
		Summary:    summary,
	}

	if profile, err := s.profiler.Profile(col.Values); err == nil {
		report.Profile = &profile
	} else if !core.IsInvalidInputError(err) {
		return nil, err
	}

	if analyzer, err := risk.NewAnalyzer(col.Values); err == nil {
		if cmp, err := analyzer.ComparePeriods(); err == nil {
			report.Risk = &cmp
		} else if !core.IsInvalidInputError(err) {
			return nil, err
		}
	}

	return report, nil
}
