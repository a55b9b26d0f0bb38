package analytics

import (
	"errors"
	"math"
	"testing"
)

func TestOneSampleTTestAtOwnMean(t *testing.T) {
	engine := NewDefaultEngine()
	sample := []float64{4.8, 5.2, 4.9, 5.1, 5.0}

	result, err := engine.TTest(TTestOneSample, sample, nil, 5.0)
	if err != nil {
		t.Fatalf("TTest failed: %v", err)
	}

	if math.Abs(result.Statistic) > 1e-9 {
		t.Errorf("t = %v, want ~0 against the sample's own mean", result.Statistic)
	}
	if math.Abs(result.PValue-1) > 1e-9 {
		t.Errorf("p = %v, want ~1", result.PValue)
	}
	if result.Significant {
		t.Error("test against own mean should not be significant")
	}
	if result.DegreesOfFreedom != 4 {
		t.Errorf("df = %v, want 4", result.DegreesOfFreedom)
	}
	if result.ConfidenceInterval == nil {
		t.Fatal("one-sample test should carry a confidence interval")
	}
	if result.ConfidenceInterval.Low > 5.0 || result.ConfidenceInterval.High < 5.0 {
		t.Errorf("CI [%v, %v] should contain the sample mean",
			result.ConfidenceInterval.Low, result.ConfidenceInterval.High)
	}
}

func TestOneSampleTTestDistantMean(t *testing.T) {
	engine := NewDefaultEngine()
	sample := []float64{4.8, 5.2, 4.9, 5.1, 5.0}

	result, err := engine.TTest(TTestOneSample, sample, nil, 10.0)
	if err != nil {
		t.Fatalf("TTest failed: %v", err)
	}
	if !result.Significant {
		t.Errorf("test against a distant mean should be significant (p=%v)", result.PValue)
	}
	if result.Statistic >= 0 {
		t.Errorf("t = %v, want negative for mean below the null", result.Statistic)
	}
}

func TestWelchTTest(t *testing.T) {
	engine := NewDefaultEngine()

	t.Run("identical samples", func(t *testing.T) {
		a := []float64{1, 2, 3, 4, 5}
		result, err := engine.TTest(TTestTwoSample, a, a, 0)
		if err != nil {
			t.Fatalf("TTest failed: %v", err)
		}
		if math.Abs(result.Statistic) > 1e-12 {
			t.Errorf("t = %v, want 0 for identical samples", result.Statistic)
		}
		if result.Significant {
			t.Error("identical samples should not differ significantly")
		}
	})

	t.Run("separated samples", func(t *testing.T) {
		a := []float64{1, 2, 3, 4, 5}
		b := []float64{10, 11, 12, 13, 14}
		result, err := engine.TTest(TTestTwoSample, a, b, 0)
		if err != nil {
			t.Fatalf("TTest failed: %v", err)
		}
		if !result.Significant {
			t.Errorf("clearly separated samples should differ (p=%v)", result.PValue)
		}
		// Equal variances and sizes: Welch df reduces to n1+n2-2.
		if math.Abs(result.DegreesOfFreedom-8) > 1e-9 {
			t.Errorf("df = %v, want 8", result.DegreesOfFreedom)
		}
	})
}

func TestPairedTTest(t *testing.T) {
	engine := NewDefaultEngine()

	before := []float64{10, 12, 11, 13, 14, 12}
	after := []float64{12, 13, 14, 15, 15, 15}

	result, err := engine.TTest(TTestPaired, before, after, 0)
	if err != nil {
		t.Fatalf("TTest failed: %v", err)
	}
	// Every pair shifts up by 1 to 3 units, a consistent treatment effect.
	if !result.Significant {
		t.Errorf("constant shift should be detected (p=%v)", result.PValue)
	}
	if result.Statistic >= 0 {
		t.Errorf("t = %v, want negative for before < after", result.Statistic)
	}
}

func TestTTestErrors(t *testing.T) {
	engine := NewDefaultEngine()

	tests := []struct {
		name    string
		mode    TTestMode
		s1, s2  []float64
		wantErr error
	}{
		{"paired length mismatch", TTestPaired, []float64{1, 2, 3}, []float64{1, 2}, ErrInvalidInput},
		{"empty sample", TTestOneSample, nil, nil, ErrInvalidInput},
		{"single point", TTestOneSample, []float64{1}, nil, ErrInsufficientData},
		{"zero variance", TTestOneSample, []float64{5, 5, 5, 5}, nil, ErrInsufficientData},
		{"nan input", TTestOneSample, []float64{1, math.NaN(), 3}, nil, ErrInvalidInput},
		{"unknown mode", TTestMode("welch"), []float64{1, 2, 3}, []float64{1, 2, 3}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.TTest(tt.mode, tt.s1, tt.s2, 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWelchDF(t *testing.T) {
	// Unequal variances pull df below the pooled n1+n2-2.
	df := welchDF(1, 10, 10, 10)
	if df >= 18 {
		t.Errorf("df = %v, want below pooled 18 for unequal variances", df)
	}
	if df < 9 {
		t.Errorf("df = %v, implausibly small", df)
	}
}

func TestCohenD(t *testing.T) {
	// One pooled standard deviation apart.
	d := cohenD(10, 2, 20, 8, 2, 20)
	if math.Abs(d-1) > 1e-9 {
		t.Errorf("cohenD = %v, want 1", d)
	}
	if got := cohenD(1, 0, 1, 2, 0, 1); got != 0 {
		t.Errorf("cohenD with degenerate samples = %v, want 0", got)
	}
}
