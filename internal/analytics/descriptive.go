package analytics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Descriptive computes summary statistics for a single series.
func Descriptive(data []float64) (DescriptiveStats, error) {
	if err := checkSeries(data, 1); err != nil {
		return DescriptiveStats{}, err
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mean := stat.Mean(data, nil)
	variance := 0.0
	if len(data) >= 2 {
		variance = stat.Variance(data, nil)
	}

	ds := DescriptiveStats{
		Count:    len(data),
		Mean:     mean,
		Median:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev:   math.Sqrt(variance),
		Variance: variance,
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		Q1:       stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Q3:       stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	ds.IQR = ds.Q3 - ds.Q1
	if len(data) >= 3 && ds.StdDev > 0 {
		ds.Skewness = stat.Skew(data, nil)
	}
	if len(data) >= 4 && ds.StdDev > 0 {
		ds.Kurtosis = stat.ExKurtosis(data, nil)
	}
	return ds, nil
}

// checkSeries validates that data has at least min finite values.
func checkSeries(data []float64, min int) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty series", ErrInvalidInput)
	}
	if len(data) < min {
		return fmt.Errorf("%w: need at least %d values, got %d", ErrInsufficientData, min, len(data))
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

// sampleStats returns mean and sample standard deviation.
func sampleStats(data []float64) (mean, stddev float64) {
	mean = stat.Mean(data, nil)
	if len(data) < 2 {
		return mean, 0
	}
	return mean, math.Sqrt(stat.Variance(data, nil))
}

// populationStdDev is used by the anomaly and change-point scans, which
// standardise against the whole series rather than a sample estimate.
func populationStdDev(data []float64) float64 {
	mean := stat.Mean(data, nil)
	var sum float64
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(data)))
}
