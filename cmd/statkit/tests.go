package main

import (
	"fmt"

	"github.com/statkit/statkit/internal/analytics"
)

// TTestCmd runs a one-sample, two-sample or paired t-test on named columns.
type TTestCmd struct {
	commonFlags
	Mode string  `kong:"default='two-sample',enum='one-sample,two-sample,paired',help='Test variant'"`
	X    string  `kong:"required,help='First column'"`
	Y    string  `kong:"help='Second column (two-sample and paired modes)'"`
	Mu   float64 `kong:"default='0',help='Hypothesized mean (one-sample mode)'"`
}

func (c *TTestCmd) Run() error {
	engine, err := c.buildEngine()
	if err != nil {
		return err
	}
	series, err := c.loadSeries()
	if err != nil {
		return err
	}
	x, err := column(series, c.X)
	if err != nil {
		return err
	}

	var y []float64
	mode := analytics.TTestMode(c.Mode)
	if mode != analytics.TTestOneSample {
		if c.Y == "" {
			return fmt.Errorf("%s mode requires --y", c.Mode)
		}
		if y, err = column(series, c.Y); err != nil {
			return err
		}
	}

	result, err := engine.TTest(mode, x, y, c.Mu)
	if err != nil {
		return err
	}

	return report(c.Output, result, func() {
		fmt.Printf("%s\n", result.TestName)
		fmt.Printf("  t=%.4f, df=%.2f, p=%.4f\n", result.Statistic, result.DegreesOfFreedom, result.PValue)
		if result.ConfidenceInterval != nil {
			fmt.Printf("  CI [%.4f, %.4f]\n", result.ConfidenceInterval.Low, result.ConfidenceInterval.High)
		}
		fmt.Printf("  %s\n", result.Interpretation)
	})
}

// CorrelCmd measures the association between two named columns.
type CorrelCmd struct {
	commonFlags
	X      string `kong:"required,help='First column'"`
	Y      string `kong:"required,help='Second column'"`
	Method string `kong:"default='pearson',enum='pearson,spearman,kendall',help='Correlation method'"`
}

func (c *CorrelCmd) Run() error {
	engine, err := c.buildEngine()
	if err != nil {
		return err
	}
	series, err := c.loadSeries()
	if err != nil {
		return err
	}
	x, err := column(series, c.X)
	if err != nil {
		return err
	}
	y, err := column(series, c.Y)
	if err != nil {
		return err
	}

	result, err := engine.CorrelationAnalysis(x, y, analytics.CorrelationMethod(c.Method))
	if err != nil {
		return err
	}

	return report(c.Output, result, func() {
		fmt.Printf("%s correlation between %s and %s\n", result.Method, c.X, c.Y)
		fmt.Printf("  r=%.4f (%s, %s), p=%.4f, n=%d\n",
			result.Coefficient, result.Strength, result.Direction, result.PValue, result.SampleSize)
		fmt.Printf("  CI [%.4f, %.4f]\n", result.ConfidenceInterval.Low, result.ConfidenceInterval.High)
	})
}

// ChiSqCmd tests observed counts against expected counts, or against a
// uniform distribution when no expected column is given.
type ChiSqCmd struct {
	commonFlags
	Observed string `kong:"required,help='Column of observed counts'"`
	Expected string `kong:"help='Column of expected counts (defaults to uniform)'"`
}

func (c *ChiSqCmd) Run() error {
	engine, err := c.buildEngine()
	if err != nil {
		return err
	}
	series, err := c.loadSeries()
	if err != nil {
		return err
	}
	observed, err := column(series, c.Observed)
	if err != nil {
		return err
	}

	var expected []float64
	if c.Expected != "" {
		if expected, err = column(series, c.Expected); err != nil {
			return err
		}
	}

	result, err := engine.ChiSquareTest(observed, expected)
	if err != nil {
		return err
	}

	return report(c.Output, result, func() {
		fmt.Printf("%s\n", result.TestName)
		fmt.Printf("  chi2=%.4f, df=%.0f, p=%.4f (critical %.4f)\n",
			result.Statistic, result.DegreesOfFreedom, result.PValue, result.CriticalValue)
		fmt.Printf("  %s\n", result.Interpretation)
	})
}

// DescribeCmd summarises a single column.
type DescribeCmd struct {
	commonFlags
	X string `kong:"required,help='Column to summarise'"`
}

func (c *DescribeCmd) Run() error {
	series, err := c.loadSeries()
	if err != nil {
		return err
	}
	x, err := column(series, c.X)
	if err != nil {
		return err
	}

	stats, err := analytics.Descriptive(x)
	if err != nil {
		return err
	}

	return report(c.Output, stats, func() {
		fmt.Printf("%s (n=%d)\n", c.X, stats.Count)
		fmt.Printf("  mean=%.4f  median=%.4f  sd=%.4f\n", stats.Mean, stats.Median, stats.StdDev)
		fmt.Printf("  min=%.4f  q1=%.4f  q3=%.4f  max=%.4f\n", stats.Min, stats.Q1, stats.Q3, stats.Max)
		fmt.Printf("  skewness=%.4f  excess kurtosis=%.4f\n", stats.Skewness, stats.Kurtosis)
	})
}
