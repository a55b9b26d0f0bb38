package analytics

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/statkit/statkit/internal/numeric"
)

// outlierZThreshold flags points whose standardized residual exceeds it.
const outlierZThreshold = 2.5

// SimpleLinearRegression fits y = c0 + c1*x by ordinary least squares.
func (e *Engine) SimpleLinearRegression(x, y []float64) (RegressionResult, error) {
	cfg := e.snapshot()
	return simpleLinearRegression(cfg, x, y)
}

func simpleLinearRegression(cfg Config, x, y []float64) (RegressionResult, error) {
	if len(x) != len(y) {
		return RegressionResult{}, fmt.Errorf("%w: series have lengths %d and %d", ErrInvalidInput, len(x), len(y))
	}
	if err := checkSeries(x, 3); err != nil {
		return RegressionResult{}, err
	}
	if err := checkSeries(y, 3); err != nil {
		return RegressionResult{}, err
	}

	n := len(x)
	meanX := stat.Mean(x, nil)
	meanY := stat.Mean(y, nil)

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}
	if sxx <= cfg.Tolerance {
		return RegressionResult{}, fmt.Errorf("%w: predictor has no variance", ErrSingularMatrix)
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX
	coefficients := []float64{intercept, slope}

	predictions := make([]float64, n)
	for i := range x {
		predictions[i] = intercept + slope*x[i]
	}

	result := buildFit(cfg, RegressionLinear, coefficients, y, predictions, 1)

	// Closed-form standard errors for the two coefficients.
	mse := residualMeanSquare(result.Residuals, n, 1)
	seSlope := math.Sqrt(mse / sxx)
	seIntercept := math.Sqrt(mse * (1/float64(n) + meanX*meanX/sxx))
	result.StandardErrors = []float64{seIntercept, seSlope}

	return result, nil
}

// MultipleRegression fits y against the feature vectors in features (one row
// per observation) with an intercept, solving the normal equations with a
// general matrix inverse. Fails with ErrSingularMatrix when X'X is not
// invertible within the configured tolerance.
func (e *Engine) MultipleRegression(y []float64, features [][]float64) (RegressionResult, error) {
	cfg := e.snapshot()

	if err := checkSeries(y, 1); err != nil {
		return RegressionResult{}, err
	}
	n := len(y)
	if len(features) != n {
		return RegressionResult{}, fmt.Errorf("%w: %d observations but %d feature rows", ErrInvalidInput, n, len(features))
	}
	if len(features[0]) == 0 {
		return RegressionResult{}, fmt.Errorf("%w: empty feature vector", ErrInvalidInput)
	}
	p := len(features[0])
	for i, row := range features {
		if len(row) != p {
			return RegressionResult{}, fmt.Errorf("%w: feature row %d has %d values, want %d", ErrInvalidInput, i, len(row), p)
		}
		if err := checkSeries(row, 1); err != nil {
			return RegressionResult{}, err
		}
	}
	if n <= p+1 {
		return RegressionResult{}, fmt.Errorf("%w: %d observations cannot fit %d predictors plus intercept",
			ErrInsufficientData, n, p)
	}

	// Design matrix with a leading intercept column of ones.
	design := make([][]float64, n)
	for i := range design {
		design[i] = make([]float64, p+1)
		design[i][0] = 1
		copy(design[i][1:], features[i])
	}

	xt := numeric.Transpose(design)
	xtx, err := numeric.MatMul(xt, design)
	if err != nil {
		return RegressionResult{}, err
	}
	inv, err := numeric.Inverse(xtx, cfg.Tolerance)
	if err != nil {
		return RegressionResult{}, err
	}
	xty, err := numeric.MatVec(xt, y)
	if err != nil {
		return RegressionResult{}, err
	}
	coefficients, err := numeric.MatVec(inv, xty)
	if err != nil {
		return RegressionResult{}, err
	}

	predictions, err := numeric.MatVec(design, coefficients)
	if err != nil {
		return RegressionResult{}, err
	}

	result := buildFit(cfg, RegressionMultiple, coefficients, y, predictions, p)

	mse := residualMeanSquare(result.Residuals, n, p)
	standardErrors := make([]float64, p+1)
	for i := range standardErrors {
		standardErrors[i] = math.Sqrt(mse * inv[i][i])
	}
	result.StandardErrors = standardErrors

	return result, nil
}

// buildFit assembles the shared diagnostics given the fitted predictions.
// p is the predictor count excluding the intercept.
func buildFit(cfg Config, kind RegressionType, coefficients, y, predictions []float64, p int) RegressionResult {
	n := len(y)
	meanY := stat.Mean(y, nil)

	residuals := make([]float64, n)
	var sse, sst float64
	for i := range y {
		residuals[i] = y[i] - predictions[i]
		sse += residuals[i] * residuals[i]
		d := y[i] - meanY
		sst += d * d
	}

	var rSquared float64
	if sst > 0 {
		rSquared = 1 - sse/sst
		// Guard against floating point drift just past the boundaries.
		rSquared = math.Max(0, math.Min(1, rSquared))
	}

	dfResidual := float64(n - p - 1)
	adjusted := 0.0
	if dfResidual > 0 {
		adjusted = 1 - (1-rSquared)*float64(n-1)/dfResidual
	}

	mse := residualMeanSquare(residuals, n, p)
	msr := (sst - sse) / float64(p)

	var fStat, pValue float64
	switch {
	case mse > 0:
		fStat = msr / mse
		pValue = numeric.FSurvival(fStat, float64(p), dfResidual)
	case sst > 0:
		// Perfect fit: the F statistic diverges.
		fStat = math.Inf(1)
		pValue = 0
	default:
		fStat = 0
		pValue = 1
	}

	var outliers []int
	if mse > 0 {
		rse := math.Sqrt(mse)
		for i, r := range residuals {
			if math.Abs(r)/rse > outlierZThreshold {
				outliers = append(outliers, i)
			}
		}
	}

	return RegressionResult{
		Type:             kind,
		Coefficients:     coefficients,
		RSquared:         rSquared,
		AdjustedRSquared: adjusted,
		FStatistic:       fStat,
		PValue:           pValue,
		Residuals:        residuals,
		Predictions:      predictions,
		Equation:         formatEquation(coefficients),
		Significant:      pValue < cfg.SignificanceLevel,
		Outliers:         outliers,
	}
}

func residualMeanSquare(residuals []float64, n, p int) float64 {
	df := float64(n - p - 1)
	if df <= 0 {
		return 0
	}
	var sse float64
	for _, r := range residuals {
		sse += r * r
	}
	return sse / df
}

// formatEquation renders "y = c0 + c1·x1 + c2·x2 + …" with 4-decimal
// coefficients.
func formatEquation(coefficients []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "y = %.4f", coefficients[0])
	for i, c := range coefficients[1:] {
		sign := "+"
		if c < 0 {
			sign = "-"
		}
		fmt.Fprintf(&b, " %s %.4f·x%d", sign, math.Abs(c), i+1)
	}
	return b.String()
}
