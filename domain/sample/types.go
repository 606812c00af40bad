package sample

import (
	"fmt"
	"math"
	"time"

	"riskstat/domain/core"
)

// VarianceMode selects the denominator used for variance and standard deviation.
type VarianceMode string

const (
	// Population divides the squared-deviation sum by n. This is the default
	// and matches the volatility formula used for daily-returns analysis.
	Population VarianceMode = "population"
	// Sample divides by n-1 and requires at least two observations.
	Sample VarianceMode = "sample"
)

// ParseVarianceMode parses a string into a VarianceMode. Empty input selects
// the population default.
func ParseVarianceMode(s string) (VarianceMode, error) {
	switch s {
	case "", string(Population):
		return Population, nil
	case string(Sample):
		return Sample, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownMode, s)
	}
}

// MinObservations returns the smallest sample count the mode can handle.
func (m VarianceMode) MinObservations() int {
	if m == Sample {
		return 2
	}
	return 1
}

// SampleSet is an ordered sequence of float64 observations.
type SampleSet []float64

// NewSampleSet copies values into a SampleSet after validating them.
func NewSampleSet(values []float64) (SampleSet, error) {
	if len(values) == 0 {
		return nil, core.ErrEmptySampleSet
	}
	out := make(SampleSet, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w at index %d", core.ErrNonFiniteSample, i)
		}
		out[i] = v
	}
	return out, nil
}

// Validate checks the set against the requested variance mode.
func (s SampleSet) Validate(mode VarianceMode) error {
	if len(s) == 0 {
		return core.ErrEmptySampleSet
	}
	if len(s) < mode.MinObservations() {
		return ErrTooFewForMode(len(s), mode)
	}
	return nil
}

// ErrTooFewForMode builds the invalid-input error for undersized sets.
func ErrTooFewForMode(n int, mode VarianceMode) error {
	if mode == Sample {
		return fmt.Errorf("%w (got %d)", core.ErrInsufficientSample, n)
	}
	return fmt.Errorf("%w: need at least %d observations, got %d", core.ErrInvalidInput, mode.MinObservations(), n)
}

// StatisticsResult is an immutable mean / standard deviation pair.
type StatisticsResult struct {
	Mean   float64      `json:"mean"`
	StdDev float64      `json:"std_dev"`
	Count  int          `json:"count"`
	Mode   VarianceMode `json:"mode"`
}

// Series is a persisted, named sample set ingested from a file or request.
type Series struct {
	ID        core.SeriesID  `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Source    string         `json:"source" db:"source"`
	Column    core.ColumnKey `json:"column" db:"column_key"`
	Values    SampleSet      `json:"values"`
	Skipped   int            `json:"skipped" db:"skipped"` // non-numeric cells dropped at ingestion
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// RiskComparison contrasts volatility between the two halves of a period.
type RiskComparison struct {
	FirstPeriodVolatility  float64 `json:"first_period_volatility"`
	SecondPeriodVolatility float64 `json:"second_period_volatility"`
	VolatilityChange       float64 `json:"volatility_change"`
	VolatilityChangePct    float64 `json:"volatility_change_percent"`
}

// SummaryStatistics is the extended descriptive summary of a sample set.
type SummaryStatistics struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
	Count  int     `json:"count"`
}

// DistributionProfile describes the shape of a sample distribution.
type DistributionProfile struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
}
