package descriptive

import (
	"math"

	"github.com/montanaflynn/stats"

	"riskstat/domain/sample"
)

// Calculator computes descriptive statistics for a sample set. It is
// stateless; a single instance is safe for concurrent use.
type Calculator struct{}

// NewCalculator creates a new descriptive statistics calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute returns the mean and standard deviation of the samples under the
// given variance mode. The result depends only on the multiset of values, not
// their order. Uses the two-pass formula; the single-pass E[X^2]-E[X]^2 form
// loses precision when the mean is large relative to the spread.
func (c *Calculator) Compute(samples sample.SampleSet, mode sample.VarianceMode) (sample.StatisticsResult, error) {
	if err := samples.Validate(mode); err != nil {
		return sample.StatisticsResult{}, err
	}

	n := float64(len(samples))
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	mean := sum / n

	sumSq := 0.0
	for _, v := range samples {
		d := v - mean
		sumSq += d * d
	}

	denom := n
	if mode == sample.Sample {
		denom = n - 1
	}

	return sample.StatisticsResult{
		Mean:   mean,
		StdDev: math.Sqrt(sumSq / denom),
		Count:  len(samples),
		Mode:   mode,
	}, nil
}

// Summary computes the extended descriptive summary (quartiles included).
// Standard deviation follows the supplied variance mode so Summary and
// Compute always agree.
func (c *Calculator) Summary(samples sample.SampleSet, mode sample.VarianceMode) (sample.SummaryStatistics, error) {
	result, err := c.Compute(samples, mode)
	if err != nil {
		return sample.SummaryStatistics{}, err
	}

	data := []float64(samples)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	// Percentile errors only on empty input, which Compute already rejected.
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return sample.SummaryStatistics{
		Mean:   result.Mean,
		StdDev: result.StdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
		Count:  result.Count,
	}, nil
}
