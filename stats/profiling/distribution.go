package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"riskstat/domain/core"
	"riskstat/domain/sample"
)

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Profile computes skewness, kurtosis and a normality check for the samples.
// At least three observations are required for a meaningful shape profile.
func (da *DistributionAnalyzer) Profile(samples sample.SampleSet) (sample.DistributionProfile, error) {
	if len(samples) == 0 {
		return sample.DistributionProfile{}, core.ErrEmptySampleSet
	}
	if len(samples) < 3 {
		return sample.DistributionProfile{}, core.NewInvalidInputError("at least three observations required for a distribution profile")
	}

	data := []float64(samples)
	mean, err := stats.Mean(data)
	if err != nil {
		return sample.DistributionProfile{}, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return sample.DistributionProfile{}, err
	}

	skewness := calculateSkewness(data, mean, stdDev)
	kurtosis := calculateKurtosis(data, mean, stdDev)
	isNormal, normalP := testNormality(skewness, kurtosis)

	return sample.DistributionProfile{
		Skewness: skewness,
		Kurtosis: kurtosis,
		IsNormal: isNormal,
		NormalP:  normalP,
	}, nil
}

// OutlierCount identifies outliers using the 1.5*IQR rule.
func (da *DistributionAnalyzer) OutlierCount(samples sample.SampleSet) (int, error) {
	if len(samples) == 0 {
		return 0, core.ErrEmptySampleSet
	}

	data := []float64(samples)
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		return 0, err
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		return 0, err
	}

	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	skewness := sumCubed / n
	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// calculateKurtosis computes total kurtosis (3 for a normal distribution)
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 3
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}

	kurtosis := sumFourth / n
	excess := kurtosis - 3
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		excess = excess*correction + 6/(n+1)
	}
	return excess + 3
}

// testNormality approximates a Jarque-Bera style normality check from the
// already-computed shape moments. The combined statistic is compared against
// a chi-squared distribution with two degrees of freedom.
func testNormality(skewness, kurtosis float64) (isNormal bool, pValue float64) {
	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)

	return pValue > 0.05, pValue
}
