package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// stableSlopeThreshold is the slope magnitude below which a series is
	// classified as stable.
	stableSlopeThreshold = 0.001

	// seasonalityThreshold is the minimum autocorrelation peak accepted as
	// evidence of a periodic component.
	seasonalityThreshold = 0.3

	// maxSeasonalityLag caps the autocorrelation sweep.
	maxSeasonalityLag = 24

	// anomalyZThreshold flags points whose z-score exceeds it.
	anomalyZThreshold = 2.5

	// maxForecastPeriods caps the forecast horizon.
	maxForecastPeriods = 12
)

// TrendAnalysis classifies the trend of data, detects seasonality, change
// points and anomalies, and extrapolates a short linear forecast. When
// timestamps is nil the index sequence 0..n-1 is used.
func (e *Engine) TrendAnalysis(data, timestamps []float64) (TrendAnalysis, error) {
	cfg := e.snapshot()
	result, err := trendAnalysis(cfg, data, timestamps)
	if err != nil {
		return TrendAnalysis{}, err
	}

	e.logger.Debug().
		Str("trend", string(result.Trend)).
		Float64("strength", result.Strength).
		Int("change_points", len(result.ChangePoints)).
		Int("anomalies", len(result.Anomalies)).
		Msg("trend analysis completed")

	return result, nil
}

func trendAnalysis(cfg Config, data, timestamps []float64) (TrendAnalysis, error) {
	if err := checkSeries(data, 3); err != nil {
		return TrendAnalysis{}, err
	}
	n := len(data)
	if timestamps == nil {
		timestamps = make([]float64, n)
		for i := range timestamps {
			timestamps[i] = float64(i)
		}
	} else {
		if len(timestamps) != n {
			return TrendAnalysis{}, fmt.Errorf("%w: %d values but %d timestamps", ErrInvalidInput, n, len(timestamps))
		}
		if err := checkSeries(timestamps, 3); err != nil {
			return TrendAnalysis{}, err
		}
	}

	fit, err := simpleLinearRegression(cfg, timestamps, data)
	if err != nil {
		return TrendAnalysis{}, err
	}
	slope := fit.Coefficients[1]

	trend := TrendStable
	switch {
	case math.Abs(slope) < stableSlopeThreshold:
		trend = TrendStable
	case slope > 0:
		trend = TrendIncreasing
	default:
		trend = TrendDecreasing
	}

	// The lag scan runs on the detrended residuals so that a strong linear
	// trend does not masquerade as periodicity.
	seasonality := detectSeasonality(fit.Residuals, cfg.MaxIterations)
	if seasonality != nil {
		trend = TrendSeasonal
	}

	return TrendAnalysis{
		Trend:        trend,
		Strength:     math.Abs(slope),
		Seasonality:  seasonality,
		ChangePoints: detectChangePoints(data),
		Anomalies:    detectAnomalies(data),
		Forecast:     forecastLinear(fit, timestamps, n),
	}, nil
}

// detectSeasonality scans autocorrelation over lags 2..min(n/2, 24) and
// reports the strongest lag when it clears the acceptance threshold.
func detectSeasonality(data []float64, maxIterations int) *Seasonality {
	n := len(data)
	maxLag := n / 2
	if maxLag > maxSeasonalityLag {
		maxLag = maxSeasonalityLag
	}
	if maxLag > maxIterations {
		maxLag = maxIterations
	}
	if maxLag < 2 {
		return nil
	}

	mean := stat.Mean(data, nil)
	var variance float64
	for _, v := range data {
		d := v - mean
		variance += d * d
	}
	if variance == 0 {
		return nil
	}

	bestLag, bestCorr := 0, 0.0
	for lag := 2; lag <= maxLag; lag++ {
		var sum float64
		for i := lag; i < n; i++ {
			sum += (data[i] - mean) * (data[i-lag] - mean)
		}
		corr := sum / variance
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestCorr <= seasonalityThreshold {
		return nil
	}
	return &Seasonality{Period: bestLag, Amplitude: bestCorr, Phase: 0}
}

// detectChangePoints flags indices where the mean level shifts by more than
// twice the series standard deviation between adjacent sliding windows.
func detectChangePoints(data []float64) []int {
	n := len(data)
	window := n / 10
	if window < 5 {
		window = 5
	}
	if 2*window > n {
		return nil
	}

	threshold := 2 * populationStdDev(data)
	if threshold == 0 {
		return nil
	}

	var points []int
	for i := window; i+window <= n; i++ {
		before := stat.Mean(data[i-window:i], nil)
		after := stat.Mean(data[i:i+window], nil)
		if math.Abs(after-before) > threshold {
			points = append(points, i)
		}
	}
	return points
}

// detectAnomalies flags points whose z-score against the whole series
// exceeds the anomaly threshold.
func detectAnomalies(data []float64) []Anomaly {
	sd := populationStdDev(data)
	if sd == 0 {
		return nil
	}
	mean := stat.Mean(data, nil)

	var anomalies []Anomaly
	for i, v := range data {
		z := math.Abs(v-mean) / sd
		if z > anomalyZThreshold {
			anomalies = append(anomalies, Anomaly{Index: i, Value: v, ZScore: z})
		}
	}
	return anomalies
}

// forecastLinear extrapolates the fitted trend forward with a confidence
// band of two residual standard deviations.
func forecastLinear(fit RegressionResult, timestamps []float64, n int) Forecast {
	horizon := int(math.Floor(float64(n) * 0.2))
	if horizon > maxForecastPeriods {
		horizon = maxForecastPeriods
	}
	if horizon < 1 {
		return Forecast{Periods: 0}
	}

	// Average spacing keeps the extrapolation sensible for non-index
	// timestamps.
	step := 1.0
	if n > 1 {
		step = (timestamps[n-1] - timestamps[0]) / float64(n-1)
	}
	if step == 0 {
		step = 1
	}

	margin := 2 * populationStdDev(fit.Residuals)
	intercept, slope := fit.Coefficients[0], fit.Coefficients[1]

	values := make([]float64, horizon)
	intervals := make([]Interval, horizon)
	last := timestamps[n-1]
	for k := 0; k < horizon; k++ {
		t := last + step*float64(k+1)
		values[k] = intercept + slope*t
		intervals[k] = Interval{Low: values[k] - margin, High: values[k] + margin}
	}
	return Forecast{Values: values, Intervals: intervals, Periods: horizon}
}
