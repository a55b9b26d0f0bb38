package analytics

import (
	"errors"
	"math"
	"testing"
)

func TestDescriptive(t *testing.T) {
	ds, err := Descriptive([]float64{5, 1, 3, 2, 4})
	if err != nil {
		t.Fatalf("Descriptive failed: %v", err)
	}

	if ds.Count != 5 {
		t.Errorf("count = %d, want 5", ds.Count)
	}
	if ds.Mean != 3 {
		t.Errorf("mean = %v, want 3", ds.Mean)
	}
	if ds.Median != 3 {
		t.Errorf("median = %v, want 3", ds.Median)
	}
	if ds.Min != 1 || ds.Max != 5 {
		t.Errorf("range [%v, %v], want [1, 5]", ds.Min, ds.Max)
	}
	if ds.Q1 != 2 || ds.Q3 != 4 {
		t.Errorf("quartiles [%v, %v], want [2, 4]", ds.Q1, ds.Q3)
	}
	if ds.IQR != 2 {
		t.Errorf("IQR = %v, want 2", ds.IQR)
	}
	if math.Abs(ds.Variance-2.5) > 1e-12 {
		t.Errorf("variance = %v, want 2.5", ds.Variance)
	}
	// Symmetric data has no skew.
	if math.Abs(ds.Skewness) > 1e-12 {
		t.Errorf("skewness = %v, want 0", ds.Skewness)
	}
}

func TestDescriptiveSinglePoint(t *testing.T) {
	ds, err := Descriptive([]float64{7})
	if err != nil {
		t.Fatalf("Descriptive failed: %v", err)
	}
	if ds.Mean != 7 || ds.Min != 7 || ds.Max != 7 {
		t.Errorf("single point summary wrong: %+v", ds)
	}
	if ds.StdDev != 0 || ds.Variance != 0 {
		t.Errorf("single point should have zero spread, got sd=%v var=%v", ds.StdDev, ds.Variance)
	}
}

func TestDescriptiveErrors(t *testing.T) {
	if _, err := Descriptive(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty data, got %v", err)
	}
	if _, err := Descriptive([]float64{1, math.NaN()}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for NaN, got %v", err)
	}
}

func TestInterpretPValue(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.0001, "highly significant"},
		{0.005, "very significant"},
		{0.03, "significant"},
		{0.08, "marginally significant"},
		{0.5, "not significant"},
	}
	for _, tt := range tests {
		if got := InterpretPValue(tt.p, 0.05); got != tt.want {
			t.Errorf("InterpretPValue(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestInterpretEffectSize(t *testing.T) {
	tests := []struct {
		d    float64
		want string
	}{
		{0.1, "negligible"},
		{-0.3, "small"},
		{0.6, "medium"},
		{-1.2, "large"},
	}
	for _, tt := range tests {
		if got := InterpretEffectSize(tt.d); got != tt.want {
			t.Errorf("InterpretEffectSize(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
