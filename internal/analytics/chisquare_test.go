package analytics

import (
	"errors"
	"math"
	"testing"
)

func TestChiSquareUniformFit(t *testing.T) {
	engine := NewDefaultEngine()

	// Perfectly uniform counts against the default uniform expectation.
	result, err := engine.ChiSquareTest([]float64{20, 20, 20, 20}, nil)
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}
	if result.Statistic != 0 {
		t.Errorf("chi2 = %v, want 0 for a perfect fit", result.Statistic)
	}
	if math.Abs(result.PValue-1) > 1e-12 {
		t.Errorf("p = %v, want 1", result.PValue)
	}
	if result.Significant {
		t.Error("perfect fit should not be significant")
	}
	if result.DegreesOfFreedom != 3 {
		t.Errorf("df = %v, want 3", result.DegreesOfFreedom)
	}
}

func TestChiSquareSkewedCounts(t *testing.T) {
	engine := NewDefaultEngine()

	result, err := engine.ChiSquareTest([]float64{50, 5, 5}, nil)
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}
	// Expected 20 per cell: chi2 = (30^2 + 15^2 + 15^2) / 20.
	if math.Abs(result.Statistic-67.5) > 1e-9 {
		t.Errorf("chi2 = %v, want 67.5", result.Statistic)
	}
	if !result.Significant {
		t.Errorf("heavily skewed counts should reject uniformity (p=%v)", result.PValue)
	}
	if result.Statistic <= result.CriticalValue {
		t.Errorf("chi2 %v should exceed critical value %v", result.Statistic, result.CriticalValue)
	}
}

func TestChiSquareExplicitExpected(t *testing.T) {
	engine := NewDefaultEngine()

	observed := []float64{18, 22, 40}
	expected := []float64{20, 20, 40}
	result, err := engine.ChiSquareTest(observed, expected)
	if err != nil {
		t.Fatalf("ChiSquareTest failed: %v", err)
	}
	// (4 + 4) / 20 + 0 / 40.
	if math.Abs(result.Statistic-0.4) > 1e-9 {
		t.Errorf("chi2 = %v, want 0.4", result.Statistic)
	}
	if result.Significant {
		t.Error("near-perfect fit should not be significant")
	}
}

func TestChiSquareErrors(t *testing.T) {
	engine := NewDefaultEngine()

	tests := []struct {
		name     string
		observed []float64
		expected []float64
		wantErr  error
	}{
		{"empty observed", nil, nil, ErrInvalidInput},
		{"single cell", []float64{10}, nil, ErrInsufficientData},
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}, ErrInvalidInput},
		{"zero expected cell", []float64{1, 2}, []float64{1, 0}, ErrInvalidInput},
		{"negative expected cell", []float64{1, 2}, []float64{1, -3}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ChiSquareTest(tt.observed, tt.expected)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
