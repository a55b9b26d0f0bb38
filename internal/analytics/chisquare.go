package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/statkit/statkit/internal/numeric"
)

// ChiSquareTest runs a chi-square goodness-of-fit test. When expected is nil
// a uniform expectation of mean(observed) per cell is used.
func (e *Engine) ChiSquareTest(observed, expected []float64) (TestResult, error) {
	cfg := e.snapshot()

	if err := checkSeries(observed, 2); err != nil {
		return TestResult{}, err
	}
	if expected == nil {
		uniform := stat.Mean(observed, nil)
		expected = make([]float64, len(observed))
		for i := range expected {
			expected[i] = uniform
		}
	} else {
		if len(expected) != len(observed) {
			return TestResult{}, fmt.Errorf("%w: observed has %d cells, expected has %d",
				ErrInvalidInput, len(observed), len(expected))
		}
		if err := checkSeries(expected, 2); err != nil {
			return TestResult{}, err
		}
	}

	var statistic float64
	for i := range observed {
		if expected[i] <= 0 {
			return TestResult{}, fmt.Errorf("%w: expected count %v at cell %d must be positive",
				ErrInvalidInput, expected[i], i)
		}
		d := observed[i] - expected[i]
		statistic += d * d / expected[i]
	}

	df := float64(len(observed) - 1)
	p := numeric.ChiSquareSurvival(statistic, df)
	crit, err := numeric.ChiSquareQuantile(1-cfg.SignificanceLevel, df)
	if err != nil {
		return TestResult{}, err
	}

	return TestResult{
		TestName:         "Chi-square goodness-of-fit",
		Statistic:        statistic,
		PValue:           p,
		DegreesOfFreedom: df,
		CriticalValue:    crit,
		Significant:      p < cfg.SignificanceLevel,
		Interpretation: fmt.Sprintf("observed distribution vs expected: %s (chi2=%.4f, df=%.0f, p=%.4f)",
			InterpretPValue(p, cfg.SignificanceLevel), statistic, df, p),
	}, nil
}
