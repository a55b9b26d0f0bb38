package analytics

import (
	"fmt"
	"math"

	"github.com/statkit/statkit/internal/numeric"
)

// TTest runs a t-test in the requested mode. sample2 is ignored for
// one-sample tests and required otherwise. hypothesizedMean is the null mean
// for one-sample/paired tests (zero for the usual paired null).
func (e *Engine) TTest(mode TTestMode, sample1, sample2 []float64, hypothesizedMean float64) (TestResult, error) {
	cfg := e.snapshot()

	switch mode {
	case TTestOneSample:
		return oneSampleTTest(cfg, "One-sample t-test", sample1, hypothesizedMean)
	case TTestTwoSample:
		return welchTTest(cfg, sample1, sample2)
	case TTestPaired:
		if len(sample1) != len(sample2) {
			return TestResult{}, fmt.Errorf("%w: dimension mismatch, paired samples have lengths %d and %d",
				ErrInvalidInput, len(sample1), len(sample2))
		}
		diffs := make([]float64, len(sample1))
		for i := range sample1 {
			diffs[i] = sample1[i] - sample2[i]
		}
		return oneSampleTTest(cfg, "Paired t-test", diffs, hypothesizedMean)
	default:
		return TestResult{}, fmt.Errorf("%w: unknown t-test mode %q", ErrInvalidInput, mode)
	}
}

func oneSampleTTest(cfg Config, name string, sample []float64, mu0 float64) (TestResult, error) {
	if err := checkSeries(sample, 2); err != nil {
		return TestResult{}, err
	}

	mean, sd := sampleStats(sample)
	n := float64(len(sample))
	df := n - 1
	se := sd / math.Sqrt(n)
	if se == 0 {
		return TestResult{}, fmt.Errorf("%w: sample has zero variance", ErrInsufficientData)
	}

	t := (mean - mu0) / se
	p := numeric.StudentTTwoTailed(t, df)
	crit, err := numeric.StudentTQuantile(1-cfg.SignificanceLevel/2, df)
	if err != nil {
		return TestResult{}, err
	}
	tCI, err := numeric.StudentTQuantile(0.5+cfg.ConfidenceLevel/2, df)
	if err != nil {
		return TestResult{}, err
	}

	significant := p < cfg.SignificanceLevel
	return TestResult{
		TestName:         name,
		Statistic:        t,
		PValue:           p,
		DegreesOfFreedom: df,
		CriticalValue:    crit,
		Significant:      significant,
		Interpretation: fmt.Sprintf("mean %.4f vs hypothesized %.4f: %s (t=%.4f, p=%.4f)",
			mean, mu0, InterpretPValue(p, cfg.SignificanceLevel), t, p),
		ConfidenceInterval: &Interval{
			Low:  mean - tCI*se,
			High: mean + tCI*se,
		},
	}, nil
}

// welchTTest is the two-sample t-test without the equal-variance assumption.
func welchTTest(cfg Config, sample1, sample2 []float64) (TestResult, error) {
	if err := checkSeries(sample1, 2); err != nil {
		return TestResult{}, err
	}
	if err := checkSeries(sample2, 2); err != nil {
		return TestResult{}, err
	}

	mean1, sd1 := sampleStats(sample1)
	mean2, sd2 := sampleStats(sample2)
	n1, n2 := float64(len(sample1)), float64(len(sample2))

	v1 := sd1 * sd1 / n1
	v2 := sd2 * sd2 / n2
	se := math.Sqrt(v1 + v2)
	if se == 0 {
		return TestResult{}, fmt.Errorf("%w: both samples have zero variance", ErrInsufficientData)
	}

	t := (mean1 - mean2) / se
	df := welchDF(sd1, len(sample1), sd2, len(sample2))
	p := numeric.StudentTTwoTailed(t, df)
	crit, err := numeric.StudentTQuantile(1-cfg.SignificanceLevel/2, df)
	if err != nil {
		return TestResult{}, err
	}

	return TestResult{
		TestName:         "Welch two-sample t-test",
		Statistic:        t,
		PValue:           p,
		DegreesOfFreedom: df,
		CriticalValue:    crit,
		Significant:      p < cfg.SignificanceLevel,
		Interpretation: fmt.Sprintf("mean difference %.4f: %s (t=%.4f, df=%.1f, p=%.4f)",
			mean1-mean2, InterpretPValue(p, cfg.SignificanceLevel), t, df, p),
	}, nil
}

// welchDF is the Welch-Satterthwaite degrees-of-freedom approximation.
func welchDF(sd1 float64, n1 int, sd2 float64, n2 int) float64 {
	if n1 <= 1 || n2 <= 1 {
		return 1
	}
	v1 := sd1 * sd1 / float64(n1)
	v2 := sd2 * sd2 / float64(n2)

	numerator := (v1 + v2) * (v1 + v2)
	denominator := v1*v1/float64(n1-1) + v2*v2/float64(n2-1)
	if denominator == 0 {
		return float64(n1 + n2 - 2)
	}
	return numerator / denominator
}

// cohenD is the standardised mean difference between two samples.
func cohenD(mean1, sd1 float64, n1 int, mean2, sd2 float64, n2 int) float64 {
	if n1+n2 <= 2 {
		return 0
	}
	pooledVar := (float64(n1-1)*sd1*sd1 + float64(n2-1)*sd2*sd2) / float64(n1+n2-2)
	if pooledVar <= 0 {
		return 0
	}
	return (mean1 - mean2) / math.Sqrt(pooledVar)
}
