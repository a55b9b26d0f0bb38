package analytics

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Insight gate and tier thresholds.
const (
	correlationGate       = 0.3  // minimum |r| for a correlation insight
	correlationHighTier   = 0.7  // |r| above this is a high-tier finding
	correlationMediumTier = 0.5  // |r| above this is a medium-tier finding
	trendHighTier         = 0.1  // slope magnitude for a high-tier trend
	trendMediumTier       = 0.05 // slope magnitude for a medium-tier trend
	anomalyHighRate       = 0.10 // anomaly fraction for a high-tier finding
	skewnessGate          = 1.0  // |skewness| that triggers a distribution insight
	kurtosisGate          = 3.0  // excess kurtosis that triggers a distribution insight
)

// pairAnalysis carries everything computed for one unordered series pair.
type pairAnalysis struct {
	a, b        string
	correlation CorrelationResult
	comparison  TestResult
	effectSize  float64
	ok          bool
}

// GenerateInsights analyses every named series and every unordered pair of
// series and returns the findings ordered by significance tier, preserving
// discovery order within a tier. Pairs or series whose shape cannot be
// analysed (mismatched lengths, too few points) are skipped rather than
// failing the whole scan.
func (e *Engine) GenerateInsights(ctx context.Context, series map[string][]float64) ([]Insight, error) {
	cfg := e.snapshot()

	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no series provided", ErrInvalidInput)
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	e.logger.Info().Int("series", len(names)).Msg("generating insights")

	pairs, err := e.analysePairs(ctx, cfg, names, series)
	if err != nil {
		return nil, err
	}

	if cfg.RobustMethods {
		applyBHCorrection(cfg, pairs)
	}

	var insights []Insight
	for _, pair := range pairs {
		if !pair.ok {
			continue
		}
		if insight, found := correlationInsight(pair); found {
			insights = append(insights, insight)
		}
		if insight, found := comparisonInsight(cfg, pair); found {
			insights = append(insights, insight)
		}
	}

	for _, name := range names {
		data := series[name]
		trend, err := trendAnalysis(cfg, data, nil)
		if err != nil {
			e.logger.Debug().Err(err).Str("series", name).Msg("skipping series analysis")
			continue
		}
		if insight, found := trendInsight(name, data, trend); found {
			insights = append(insights, insight)
		}
		if insight, found := anomalyInsight(name, data, trend); found {
			insights = append(insights, insight)
		}
		if insight, found := distributionInsight(name, data); found {
			insights = append(insights, insight)
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return tierRank(insights[i].Significance) < tierRank(insights[j].Significance)
	})

	e.logger.Info().Int("insights", len(insights)).Msg("insight generation completed")
	return insights, nil
}

// analysePairs runs the pairwise correlation and comparison scan with a
// bounded worker pool; results land in deterministic pair order.
func (e *Engine) analysePairs(ctx context.Context, cfg Config, names []string, series map[string][]float64) ([]pairAnalysis, error) {
	type indexedPair struct {
		idx  int
		a, b string
	}
	var work []indexedPair
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			work = append(work, indexedPair{idx: len(work), a: names[i], b: names[j]})
		}
	}

	results := make([]pairAnalysis, len(work))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, w := range work {
		w := w
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			x, y := series[w.a], series[w.b]
			analysis := pairAnalysis{a: w.a, b: w.b}

			corr, err := correlationAnalysis(cfg, x, y, Pearson)
			if err != nil {
				e.logger.Debug().Err(err).Str("a", w.a).Str("b", w.b).Msg("skipping pair")
				results[w.idx] = analysis
				return nil
			}
			analysis.correlation = corr
			analysis.ok = true

			if comp, err := welchTTest(cfg, x, y); err == nil {
				analysis.comparison = comp
				mean1, sd1 := sampleStats(x)
				mean2, sd2 := sampleStats(y)
				analysis.effectSize = cohenD(mean1, sd1, len(x), mean2, sd2, len(y))
			}

			results[w.idx] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// applyBHCorrection replaces the pairwise correlation p-values with their
// Benjamini-Hochberg adjusted values and re-derives the significance flags.
func applyBHCorrection(cfg Config, pairs []pairAnalysis) {
	var pvals []float64
	var indices []int
	for i, pair := range pairs {
		if pair.ok {
			pvals = append(pvals, pair.correlation.PValue)
			indices = append(indices, i)
		}
	}
	adjusted := AdjustPValuesBH(pvals)
	for k, i := range indices {
		pairs[i].correlation.PValue = adjusted[k]
		pairs[i].correlation.Significant = adjusted[k] < cfg.SignificanceLevel
	}
}

func correlationInsight(pair pairAnalysis) (Insight, bool) {
	corr := pair.correlation
	if !corr.Significant || math.Abs(corr.Coefficient) <= correlationGate {
		return Insight{}, false
	}

	tier := TierLow
	switch {
	case math.Abs(corr.Coefficient) > correlationHighTier:
		tier = TierHigh
	case math.Abs(corr.Coefficient) > correlationMediumTier:
		tier = TierMedium
	}

	verb := "rise and fall together"
	recommendation := fmt.Sprintf("Monitor %s alongside %s; movement in one anticipates the other.", pair.a, pair.b)
	if corr.Direction == DirectionNegative {
		verb = "move in opposite directions"
		recommendation = fmt.Sprintf("Treat increases in %s as a signal to review %s, and vice versa.", pair.a, pair.b)
	}

	return Insight{
		Type:         InsightCorrelation,
		Title:        fmt.Sprintf("%s correlation between %s and %s", corr.Strength, pair.a, pair.b),
		Description:  fmt.Sprintf("%s and %s %s (r=%.3f).", pair.a, pair.b, verb, corr.Coefficient),
		Significance: tier,
		Confidence:   1 - corr.PValue,
		Evidence: []string{
			fmt.Sprintf("r=%.3f (%s, %s)", corr.Coefficient, corr.Strength, corr.Direction),
			fmt.Sprintf("p=%.4f over %d paired observations", corr.PValue, corr.SampleSize),
			fmt.Sprintf("95%% CI [%.3f, %.3f]", corr.ConfidenceInterval.Low, corr.ConfidenceInterval.High),
		},
		Recommendations: []string{recommendation},
	}, true
}

func comparisonInsight(cfg Config, pair pairAnalysis) (Insight, bool) {
	comp := pair.comparison
	if comp.TestName == "" || !comp.Significant {
		return Insight{}, false
	}

	tier := TierLow
	switch {
	case math.Abs(pair.effectSize) > 0.8:
		tier = TierHigh
	case math.Abs(pair.effectSize) > 0.5:
		tier = TierMedium
	}

	return Insight{
		Type:         InsightComparison,
		Title:        fmt.Sprintf("%s and %s differ in level", pair.a, pair.b),
		Description:  fmt.Sprintf("The mean of %s differs from %s beyond what noise explains (%s effect).", pair.a, pair.b, InterpretEffectSize(pair.effectSize)),
		Significance: tier,
		Confidence:   1 - comp.PValue,
		Evidence: []string{
			fmt.Sprintf("t=%.3f, df=%.1f, p=%.4f", comp.Statistic, comp.DegreesOfFreedom, comp.PValue),
			fmt.Sprintf("Cohen's d=%.3f (%s)", pair.effectSize, InterpretEffectSize(pair.effectSize)),
		},
		Recommendations: []string{
			fmt.Sprintf("Investigate what drives the level difference between %s and %s.", pair.a, pair.b),
		},
	}, true
}

func trendInsight(name string, data []float64, trend TrendAnalysis) (Insight, bool) {
	if trend.Trend == TrendStable {
		return Insight{}, false
	}

	tier := TierLow
	switch {
	case trend.Strength > trendHighTier:
		tier = TierHigh
	case trend.Strength > trendMediumTier:
		tier = TierMedium
	}

	// Fit quality of the linear trend doubles as the confidence score.
	index := make([]float64, len(data))
	for i := range index {
		index[i] = float64(i)
	}
	r := stat.Correlation(index, data, nil)
	confidence := 0.0
	if !math.IsNaN(r) {
		confidence = r * r
	}

	description := fmt.Sprintf("%s is %s at %.4f units per period.", name, trend.Trend, trend.Strength)
	recommendation := fmt.Sprintf("Factor the %s trend in %s into planning.", trend.Trend, name)
	evidence := []string{
		fmt.Sprintf("slope magnitude %.4f per period", trend.Strength),
		fmt.Sprintf("%d observations", len(data)),
	}
	if trend.Seasonality != nil {
		description = fmt.Sprintf("%s repeats with a period of %d observations.", name, trend.Seasonality.Period)
		recommendation = fmt.Sprintf("Schedule around the %d-period cycle detected in %s.", trend.Seasonality.Period, name)
		evidence = append(evidence, fmt.Sprintf("autocorrelation %.3f at lag %d", trend.Seasonality.Amplitude, trend.Seasonality.Period))
		confidence = math.Max(confidence, trend.Seasonality.Amplitude)
	}

	return Insight{
		Type:            InsightTrend,
		Title:           fmt.Sprintf("%s trend in %s", trend.Trend, name),
		Description:     description,
		Significance:    tier,
		Confidence:      confidence,
		Evidence:        evidence,
		Recommendations: []string{recommendation},
	}, true
}

func anomalyInsight(name string, data []float64, trend TrendAnalysis) (Insight, bool) {
	if len(trend.Anomalies) == 0 {
		return Insight{}, false
	}

	rate := float64(len(trend.Anomalies)) / float64(len(data))
	tier := TierMedium
	if rate > anomalyHighRate {
		tier = TierHigh
	}

	maxZ := 0.0
	for _, a := range trend.Anomalies {
		if a.ZScore > maxZ {
			maxZ = a.ZScore
		}
	}

	evidence := []string{
		fmt.Sprintf("%d of %d points exceed %.1f standard deviations", len(trend.Anomalies), len(data), anomalyZThreshold),
		fmt.Sprintf("largest deviation z=%.2f at index %d", maxZ, maxZIndex(trend.Anomalies)),
	}

	return Insight{
		Type:         InsightAnomaly,
		Title:        fmt.Sprintf("anomalies detected in %s", name),
		Description:  fmt.Sprintf("%s contains %d anomalous observations (%.1f%% of the series).", name, len(trend.Anomalies), rate*100),
		Significance: tier,
		Confidence:   math.Min(0.99, maxZ/4),
		Evidence:     evidence,
		Recommendations: []string{
			fmt.Sprintf("Review the flagged periods in %s for data-quality issues or real events.", name),
		},
	}, true
}

func maxZIndex(anomalies []Anomaly) int {
	best := anomalies[0]
	for _, a := range anomalies[1:] {
		if a.ZScore > best.ZScore {
			best = a
		}
	}
	return best.Index
}

func distributionInsight(name string, data []float64) (Insight, bool) {
	ds, err := Descriptive(data)
	if err != nil {
		return Insight{}, false
	}

	skewed := math.Abs(ds.Skewness) > skewnessGate
	heavyTailed := ds.Kurtosis > kurtosisGate
	if !skewed && !heavyTailed {
		return Insight{}, false
	}

	tier := TierLow
	if math.Abs(ds.Skewness) > 2*skewnessGate {
		tier = TierMedium
	}

	shape := "heavily skewed"
	if !skewed {
		shape = "heavy-tailed"
	}

	return Insight{
		Type:         InsightDistribution,
		Title:        fmt.Sprintf("%s distribution in %s", shape, name),
		Description:  fmt.Sprintf("%s departs from a symmetric bell shape (skewness %.2f, excess kurtosis %.2f).", name, ds.Skewness, ds.Kurtosis),
		Significance: tier,
		Confidence:   math.Min(0.9, math.Max(math.Abs(ds.Skewness), ds.Kurtosis/2)/3),
		Evidence: []string{
			fmt.Sprintf("skewness %.3f, excess kurtosis %.3f", ds.Skewness, ds.Kurtosis),
			fmt.Sprintf("mean %.3f vs median %.3f", ds.Mean, ds.Median),
		},
		Recommendations: []string{
			fmt.Sprintf("Consider robust statistics or a transform before modelling %s.", name),
		},
	}, true
}
