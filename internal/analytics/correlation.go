package analytics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/statkit/statkit/internal/numeric"
)

// CorrelationAnalysis computes the correlation between x and y with the
// requested method, including significance and a Fisher-z confidence
// interval. Requires len(x) == len(y) >= 3.
func (e *Engine) CorrelationAnalysis(x, y []float64, method CorrelationMethod) (CorrelationResult, error) {
	cfg := e.snapshot()
	return correlationAnalysis(cfg, x, y, method)
}

func correlationAnalysis(cfg Config, x, y []float64, method CorrelationMethod) (CorrelationResult, error) {
	if len(x) != len(y) {
		return CorrelationResult{}, fmt.Errorf("%w: series have lengths %d and %d", ErrInvalidInput, len(x), len(y))
	}
	if len(x) < 3 {
		return CorrelationResult{}, fmt.Errorf("%w: correlation needs at least 3 paired values, got %d", ErrInvalidInput, len(x))
	}
	if err := checkSeries(x, 3); err != nil {
		return CorrelationResult{}, err
	}
	if err := checkSeries(y, 3); err != nil {
		return CorrelationResult{}, err
	}

	n := len(x)
	var coefficient, p float64
	switch method {
	case Pearson:
		coefficient = stat.Correlation(x, y, nil)
		p = pearsonPValue(coefficient, n)
	case Spearman:
		// Average ranks for ties, then the product-moment coefficient of
		// the ranks. Equivalent to 1 - 6*sum(d^2)/(n(n^2-1)) when no ties.
		rx := averageRanks(x)
		ry := averageRanks(y)
		coefficient = stat.Correlation(rx, ry, nil)
		z := coefficient * math.Sqrt(float64(n-1))
		p = numeric.NormalTwoTailed(z)
	case Kendall:
		coefficient = kendallTau(x, y)
		variance := 2 * float64(2*n+5) / float64(9*n*(n-1))
		z := coefficient / math.Sqrt(variance)
		p = numeric.NormalTwoTailed(z)
	default:
		return CorrelationResult{}, fmt.Errorf("%w: unsupported correlation method %q", ErrInvalidInput, method)
	}

	if math.IsNaN(coefficient) {
		return CorrelationResult{}, fmt.Errorf("%w: a series has zero variance", ErrInsufficientData)
	}

	ci, err := fisherInterval(coefficient, n, cfg.ConfidenceLevel)
	if err != nil {
		return CorrelationResult{}, err
	}

	return CorrelationResult{
		Coefficient:        coefficient,
		PValue:             p,
		Method:             method,
		Strength:           classifyStrength(coefficient),
		Direction:          classifyDirection(coefficient),
		Significant:        p < cfg.SignificanceLevel,
		SampleSize:         n,
		ConfidenceInterval: ci,
	}, nil
}

// pearsonPValue tests r against zero via the exact t-statistic with n-2
// degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	if n < 3 {
		return 1
	}
	denom := 1 - r*r
	if denom <= 0 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/denom)
	return numeric.StudentTTwoTailed(t, float64(n-2))
}

// fisherInterval builds the confidence interval via the Fisher z-transform.
// For n < 4 the transform's standard error is undefined and the interval
// degenerates to the full coefficient range.
func fisherInterval(r float64, n int, confidence float64) (Interval, error) {
	if n < 4 {
		return Interval{Low: -1, High: 1}, nil
	}
	// Keep atanh finite at |r| == 1.
	clamped := math.Max(-1+1e-15, math.Min(1-1e-15, r))
	z := math.Atanh(clamped)
	se := 1 / math.Sqrt(float64(n-3))
	zCrit, err := numeric.NormalQuantile(0.5 + confidence/2)
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Low:  math.Tanh(z - zCrit*se),
		High: math.Tanh(z + zCrit*se),
	}, nil
}

// averageRanks assigns 1-based ranks, giving tied values the mean of the
// ranks they occupy.
func averageRanks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Ranks i+1..j+1 are tied; average them.
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// kendallTau is the tau-a coefficient over all pairs.
func kendallTau(x, y []float64) float64 {
	n := len(x)
	var concordant, discordant int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := x[i] - x[j]
			dy := y[i] - y[j]
			switch {
			case dx*dy > 0:
				concordant++
			case dx*dy < 0:
				discordant++
			}
		}
	}
	return float64(concordant-discordant) / (float64(n*(n-1)) / 2)
}

// AdjustPValuesBH applies the Benjamini-Hochberg false-discovery-rate
// correction and returns adjusted p-values in the original order.
func AdjustPValuesBH(pvals []float64) []float64 {
	n := len(pvals)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return pvals[order[a]] < pvals[order[b]] })

	adjusted := make([]float64, n)
	prev := 1.0
	for i := n - 1; i >= 0; i-- {
		rank := float64(i + 1)
		val := pvals[order[i]] * float64(n) / rank
		if val > prev {
			val = prev
		}
		if val > 1 {
			val = 1
		}
		adjusted[order[i]] = val
		prev = val
	}
	return adjusted
}
