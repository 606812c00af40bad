package descriptive

import (
	"math"
	"testing"

	"riskstat/domain/core"
	"riskstat/domain/sample"
)

const epsilon = 1e-9

func TestCompute_ReferenceExample(t *testing.T) {
	// Classic reference set: population stddev is exactly 2.0
	calc := NewCalculator()
	samples := sample.SampleSet{2, 4, 4, 4, 5, 5, 7, 9}

	result, err := calc.Compute(samples, sample.Population)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if math.Abs(result.Mean-5.0) > epsilon {
		t.Errorf("Expected mean 5.0, got %v", result.Mean)
	}
	if math.Abs(result.StdDev-2.0) > epsilon {
		t.Errorf("Expected population stddev 2.0, got %v", result.StdDev)
	}
	if result.Count != 8 {
		t.Errorf("Expected count 8, got %d", result.Count)
	}
}

func TestCompute_SampleMode(t *testing.T) {
	calc := NewCalculator()
	samples := sample.SampleSet{2, 4, 4, 4, 5, 5, 7, 9}

	result, err := calc.Compute(samples, sample.Sample)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Squared-deviation sum is 32; sample variance = 32/7
	expected := math.Sqrt(32.0 / 7.0)
	if math.Abs(result.StdDev-expected) > epsilon {
		t.Errorf("Expected sample stddev %v, got %v", expected, result.StdDev)
	}
}

func TestCompute_Validation(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name    string
		samples sample.SampleSet
		mode    sample.VarianceMode
		wantErr bool
	}{
		{name: "empty population", samples: sample.SampleSet{}, mode: sample.Population, wantErr: true},
		{name: "empty sample", samples: sample.SampleSet{}, mode: sample.Sample, wantErr: true},
		{name: "single value sample mode", samples: sample.SampleSet{5}, mode: sample.Sample, wantErr: true},
		{name: "single value population mode", samples: sample.SampleSet{5}, mode: sample.Population, wantErr: false},
		{name: "two values sample mode", samples: sample.SampleSet{1, 2}, mode: sample.Sample, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Compute(tt.samples, tt.mode)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got result %+v", result)
				}
				if !core.IsInvalidInputError(err) {
					t.Errorf("Expected invalid-input error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCompute_SingleValuePopulationStdDevZero(t *testing.T) {
	calc := NewCalculator()
	result, err := calc.Compute(sample.SampleSet{5}, sample.Population)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if result.Mean != 5 || result.StdDev != 0 {
		t.Errorf("Expected mean=5 stddev=0, got mean=%v stddev=%v", result.Mean, result.StdDev)
	}
}

func TestCompute_IdenticalValues(t *testing.T) {
	calc := NewCalculator()
	samples := sample.SampleSet{3.7, 3.7, 3.7, 3.7, 3.7}

	for _, mode := range []sample.VarianceMode{sample.Population, sample.Sample} {
		result, err := calc.Compute(samples, mode)
		if err != nil {
			t.Fatalf("Compute(%s) failed: %v", mode, err)
		}
		if result.StdDev != 0 {
			t.Errorf("Expected stddev 0 for identical values in %s mode, got %v", mode, result.StdDev)
		}
	}
}

func TestCompute_OrderIndependent(t *testing.T) {
	calc := NewCalculator()
	original := sample.SampleSet{2, 4, 4, 4, 5, 5, 7, 9}
	permuted := sample.SampleSet{9, 5, 2, 7, 4, 5, 4, 4}

	a, err := calc.Compute(original, sample.Population)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	b, err := calc.Compute(permuted, sample.Population)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if math.Abs(a.Mean-b.Mean) > epsilon || math.Abs(a.StdDev-b.StdDev) > epsilon {
		t.Errorf("Permuted input changed result: %+v vs %+v", a, b)
	}
}

func TestCompute_MeanIsArithmeticAverage(t *testing.T) {
	calc := NewCalculator()
	samples := sample.SampleSet{1.5, -2.25, 10, 0, 4.75}

	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	expected := sum / float64(len(samples))

	result, err := calc.Compute(samples, sample.Population)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if math.Abs(result.Mean-expected) > epsilon {
		t.Errorf("Expected mean %v, got %v", expected, result.Mean)
	}
}

func TestSummary(t *testing.T) {
	calc := NewCalculator()
	samples := sample.SampleSet{2, 4, 4, 4, 5, 5, 7, 9}

	summary, err := calc.Summary(samples, sample.Population)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.Min != 2 {
		t.Errorf("Expected min 2, got %v", summary.Min)
	}
	if summary.Max != 9 {
		t.Errorf("Expected max 9, got %v", summary.Max)
	}
	if math.Abs(summary.Median-4.5) > epsilon {
		t.Errorf("Expected median 4.5, got %v", summary.Median)
	}
	if math.Abs(summary.Mean-5.0) > epsilon || math.Abs(summary.StdDev-2.0) > epsilon {
		t.Errorf("Summary disagrees with Compute: mean=%v stddev=%v", summary.Mean, summary.StdDev)
	}
	if summary.Count != 8 {
		t.Errorf("Expected count 8, got %d", summary.Count)
	}
}
