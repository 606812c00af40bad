package app

import (
	"context"

	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/ports"
	"riskstat/stats/descriptive"
	"riskstat/stats/profiling"
	"riskstat/stats/risk"
)

// SeriesService answers queries about stored series.
type SeriesService struct {
	repo     ports.SeriesRepository
	calc     *descriptive.Calculator
	profiler *profiling.DistributionAnalyzer
}

// NewSeriesService creates a series query service
func NewSeriesService(repo ports.SeriesRepository) *SeriesService {
	return &SeriesService{
		repo:     repo,
		calc:     descriptive.NewCalculator(),
		profiler: profiling.NewDistributionAnalyzer(),
	}
}

// Get loads a stored series with its observations.
func (s *SeriesService) Get(ctx context.Context, id core.SeriesID) (*sample.Series, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns stored series metadata, newest first.
func (s *SeriesService) List(ctx context.Context, limit, offset int) ([]*sample.Series, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Delete removes a stored series.
func (s *SeriesService) Delete(ctx context.Context, id core.SeriesID) error {
	return s.repo.Delete(ctx, id)
}

// Statistics returns the mean/stddev result for the series under the given
// mode, serving the cached row when present and computing otherwise.
func (s *SeriesService) Statistics(ctx context.Context, id core.SeriesID, mode sample.VarianceMode) (sample.StatisticsResult, error) {
	if cached, err := s.repo.GetResult(ctx, id, mode); err == nil {
		return *cached, nil
	}

	series, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sample.StatisticsResult{}, err
	}
	result, err := s.calc.Compute(series.Values, mode)
	if err != nil {
		return sample.StatisticsResult{}, err
	}
	if err := s.repo.SaveResult(ctx, id, result); err != nil {
		return sample.StatisticsResult{}, err
	}
	return result, nil
}

// Summary returns the extended descriptive summary of the series.
func (s *SeriesService) Summary(ctx context.Context, id core.SeriesID, mode sample.VarianceMode) (sample.SummaryStatistics, error) {
	series, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sample.SummaryStatistics{}, err
	}
	return s.calc.Summary(series.Values, mode)
}

// Profile returns the distribution shape profile of the series.
func (s *SeriesService) Profile(ctx context.Context, id core.SeriesID) (sample.DistributionProfile, error) {
	series, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sample.DistributionProfile{}, err
	}
	return s.profiler.Profile(series.Values)
}

// Risk returns the period volatility comparison for the series.
func (s *SeriesService) Risk(ctx context.Context, id core.SeriesID) (sample.RiskComparison, error) {
	series, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return sample.RiskComparison{}, err
	}
	analyzer, err := risk.NewAnalyzer(series.Values)
	if err != nil {
		return sample.RiskComparison{}, err
	}
	return analyzer.ComparePeriods()
}
