package main

import (
	"fmt"
	"strings"
)

// RegressCmd fits a linear model of one column against one or more others.
type RegressCmd struct {
	commonFlags
	Y string   `kong:"required,help='Response column'"`
	X []string `kong:"required,help='Predictor columns (repeatable)'"`
}

func (c *RegressCmd) Run() error {
	engine, err := c.buildEngine()
	if err != nil {
		return err
	}
	series, err := c.loadSeries()
	if err != nil {
		return err
	}
	y, err := column(series, c.Y)
	if err != nil {
		return err
	}

	features := make([][]float64, len(c.X))
	for i, name := range c.X {
		if features[i], err = column(series, name); err != nil {
			return err
		}
	}

	if len(features) == 1 {
		r, err := engine.SimpleLinearRegression(features[0], y)
		if err != nil {
			return err
		}
		return report(c.Output, r, func() {
			fmt.Printf("%s ~ %s\n", c.Y, c.X[0])
			fmt.Printf("  %s\n", r.Equation)
			fmt.Printf("  R²=%.4f (adjusted %.4f), F=%.4f, p=%.4f\n",
				r.RSquared, r.AdjustedRSquared, r.FStatistic, r.PValue)
			if len(r.Outliers) > 0 {
				fmt.Printf("  outlier rows: %v\n", r.Outliers)
			}
		})
	}

	r, err := engine.MultipleRegression(y, features)
	if err != nil {
		return err
	}
	return report(c.Output, r, func() {
		fmt.Printf("%s ~ %s\n", c.Y, strings.Join(c.X, " + "))
		fmt.Printf("  %s\n", r.Equation)
		fmt.Printf("  R²=%.4f (adjusted %.4f), F=%.4f, p=%.4f\n",
			r.RSquared, r.AdjustedRSquared, r.FStatistic, r.PValue)
		if len(r.Outliers) > 0 {
			fmt.Printf("  outlier rows: %v\n", r.Outliers)
		}
	})
}

// TrendCmd analyses trend, seasonality, change points and anomalies in a
// single column, with a short-range forecast.
type TrendCmd struct {
	commonFlags
	X    string `kong:"required,help='Column to analyse'"`
	Time string `kong:"help='Optional timestamp column'"`
}

func (c *TrendCmd) Run() error {
	engine, err := c.buildEngine()
	if err != nil {
		return err
	}
	series, err := c.loadSeries()
	if err != nil {
		return err
	}
	data, err := column(series, c.X)
	if err != nil {
		return err
	}

	var timestamps []float64
	if c.Time != "" {
		if timestamps, err = column(series, c.Time); err != nil {
			return err
		}
	}

	result, err := engine.TrendAnalysis(data, timestamps)
	if err != nil {
		return err
	}

	return report(c.Output, result, func() {
		fmt.Printf("%s: %s trend (strength %.4f)\n", c.X, result.Trend, result.Strength)
		if result.Seasonality != nil {
			fmt.Printf("  seasonality: period %d, autocorrelation %.3f\n",
				result.Seasonality.Period, result.Seasonality.Amplitude)
		}
		if len(result.ChangePoints) > 0 {
			fmt.Printf("  change points at rows %v\n", result.ChangePoints)
		}
		if len(result.Anomalies) > 0 {
			fmt.Printf("  %d anomalies:\n", len(result.Anomalies))
			for _, a := range result.Anomalies {
				fmt.Printf("    row %d: value %.4f (z=%.2f)\n", a.Index, a.Value, a.ZScore)
			}
		}
		if result.Forecast.Periods > 0 {
			fmt.Printf("  forecast (%d periods):\n", result.Forecast.Periods)
			for i, v := range result.Forecast.Values {
				iv := result.Forecast.Intervals[i]
				fmt.Printf("    +%d: %.4f [%.4f, %.4f]\n", i+1, v, iv.Low, iv.High)
			}
		}
	})
}
