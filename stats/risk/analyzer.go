package risk

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/stats/descriptive"
)

// Analyzer computes volatility metrics over a series of daily returns.
// Volatility is the population standard deviation of the returns: the period
// under analysis is treated as the full population, not a sample of one.
type Analyzer struct {
	returns sample.SampleSet
	calc    *descriptive.Calculator
}

// NewAnalyzer creates an analyzer over a copy of the given daily returns.
func NewAnalyzer(dailyReturns []float64) (*Analyzer, error) {
	set, err := sample.NewSampleSet(dailyReturns)
	if err != nil {
		return nil, err
	}
	return &Analyzer{returns: set, calc: descriptive.NewCalculator()}, nil
}

// Returns exposes a copy of the underlying returns.
func (a *Analyzer) Returns() sample.SampleSet {
	out := make(sample.SampleSet, len(a.returns))
	copy(out, a.returns)
	return out
}

// Volatility returns the population standard deviation of the returns.
func (a *Analyzer) Volatility() (float64, error) {
	return a.volatilityOf(a.returns)
}

func (a *Analyzer) volatilityOf(returns sample.SampleSet) (float64, error) {
	result, err := a.calc.Compute(returns, sample.Population)
	if err != nil {
		return 0, err
	}
	return result.StdDev, nil
}

// SplitPeriod splits the returns into two halves at len/2. The first half
// gets the shorter slice when the count is odd.
func (a *Analyzer) SplitPeriod() (sample.SampleSet, sample.SampleSet) {
	mid := len(a.returns) / 2
	return a.returns[:mid], a.returns[mid:]
}

// ComparePeriods contrasts volatility between the first and second half of
// the period. At least two returns are required so both halves are non-empty.
func (a *Analyzer) ComparePeriods() (sample.RiskComparison, error) {
	first, second := a.SplitPeriod()
	if len(first) == 0 {
		return sample.RiskComparison{}, fmt.Errorf("%w: need at least two returns to compare periods", core.ErrInvalidInput)
	}

	volFirst, err := a.volatilityOf(first)
	if err != nil {
		return sample.RiskComparison{}, err
	}
	volSecond, err := a.volatilityOf(second)
	if err != nil {
		return sample.RiskComparison{}, err
	}

	change := volSecond - volFirst
	changePct := 0.0
	if volFirst != 0 {
		changePct = (change / volFirst) * 100
	}

	return sample.RiskComparison{
		FirstPeriodVolatility:  volFirst,
		SecondPeriodVolatility: volSecond,
		VolatilityChange:       change,
		VolatilityChangePct:    changePct,
	}, nil
}

// Summary returns mean, volatility, min, max and count for the full period.
func (a *Analyzer) Summary() (sample.SummaryStatistics, error) {
	result, err := a.calc.Compute(a.returns, sample.Population)
	if err != nil {
		return sample.SummaryStatistics{}, err
	}

	data := []float64(a.returns)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)

	return sample.SummaryStatistics{
		Mean:   result.Mean,
		StdDev: result.StdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Count:  result.Count,
	}, nil
}

// String returns a short human-readable description of the analyzer.
func (a *Analyzer) String() string {
	return fmt.Sprintf("risk.Analyzer(n_observations=%d)", len(a.returns))
}
