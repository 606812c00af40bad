package sample

import (
	"math"
	"testing"

	"riskstat/domain/core"
)

func TestParseVarianceMode(t *testing.T) {
	tests := []struct {
		input   string
		want    VarianceMode
		wantErr bool
	}{
		{input: "", want: Population},
		{input: "population", want: Population},
		{input: "sample", want: Sample},
		{input: "bogus", wantErr: true},
		{input: "Population", wantErr: true}, // case sensitive
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, err := ParseVarianceMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %q", tt.input, got)
				}
				if !core.IsInvalidInputError(err) {
					t.Errorf("Expected invalid-input error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewSampleSet(t *testing.T) {
	if _, err := NewSampleSet(nil); err == nil {
		t.Error("Expected error for nil input")
	}
	if _, err := NewSampleSet([]float64{}); err == nil {
		t.Error("Expected error for empty input")
	}
	if _, err := NewSampleSet([]float64{1, math.NaN()}); err == nil {
		t.Error("Expected error for NaN input")
	}
	if _, err := NewSampleSet([]float64{1, math.Inf(1)}); err == nil {
		t.Error("Expected error for Inf input")
	}

	values := []float64{1, 2, 3}
	set, err := NewSampleSet(values)
	if err != nil {
		t.Fatalf("NewSampleSet failed: %v", err)
	}

	// The set is a copy; mutating the source must not leak in.
	values[0] = 99
	if set[0] != 1 {
		t.Errorf("SampleSet aliases caller slice: got %v", set[0])
	}
}

func TestSampleSetValidate(t *testing.T) {
	if err := (SampleSet{}).Validate(Population); err == nil {
		t.Error("Expected error for empty set")
	}
	if err := (SampleSet{5}).Validate(Sample); err == nil {
		t.Error("Expected error for single value in sample mode")
	}
	if err := (SampleSet{5}).Validate(Population); err != nil {
		t.Errorf("Unexpected error for single value in population mode: %v", err)
	}
	if err := (SampleSet{5, 6}).Validate(Sample); err != nil {
		t.Errorf("Unexpected error for two values in sample mode: %v", err)
	}
}

func TestVarianceModeMinObservations(t *testing.T) {
	if got := Population.MinObservations(); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
	if got := Sample.MinObservations(); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
}
