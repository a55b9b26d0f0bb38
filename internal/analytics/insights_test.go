package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func insightSeries() map[string][]float64 {
	n := 30
	alpha := make([]float64, n)
	beta := make([]float64, n)
	gamma := make([]float64, n)
	for i := 0; i < n; i++ {
		alpha[i] = float64(i)
		beta[i] = 2*float64(i) + 1
		gamma[i] = -float64(i)
	}
	return map[string][]float64{
		"alpha": alpha,
		"beta":  beta,
		"gamma": gamma,
	}
}

func TestGenerateInsightsAntiCorrelated(t *testing.T) {
	engine := NewDefaultEngine()

	insights, err := engine.GenerateInsights(context.Background(), insightSeries())
	require.NoError(t, err)
	require.NotEmpty(t, insights)

	var found bool
	for _, ins := range insights {
		if ins.Type != InsightCorrelation {
			continue
		}
		if ins.Significance == TierHigh && containsAll(ins.Title, "alpha", "gamma") {
			found = true
			require.NotEmpty(t, ins.Evidence)
			require.NotEmpty(t, ins.Recommendations)
			require.Contains(t, strings.Join(ins.Evidence, " "), string(DirectionNegative))
		}
	}
	require.True(t, found, "expected a high-tier correlation insight for the anti-correlated pair")
}

func TestGenerateInsightsTrend(t *testing.T) {
	engine := NewDefaultEngine()

	insights, err := engine.GenerateInsights(context.Background(), insightSeries())
	require.NoError(t, err)

	trendTitles := map[string]bool{}
	for _, ins := range insights {
		if ins.Type == InsightTrend {
			trendTitles[ins.Title] = true
			require.GreaterOrEqual(t, ins.Confidence, 0.0)
			require.LessOrEqual(t, ins.Confidence, 1.0)
		}
	}
	require.NotEmpty(t, trendTitles, "linear series should produce trend insights")
}

func TestGenerateInsightsTierOrdering(t *testing.T) {
	engine := NewDefaultEngine()

	insights, err := engine.GenerateInsights(context.Background(), insightSeries())
	require.NoError(t, err)

	for i := 1; i < len(insights); i++ {
		require.LessOrEqual(t,
			tierRank(insights[i-1].Significance), tierRank(insights[i].Significance),
			"insights must be ordered high before medium before low")
	}
}

func TestGenerateInsightsSkipsDegenerateSeries(t *testing.T) {
	engine := NewDefaultEngine()

	series := insightSeries()
	series["flat"] = []float64{5, 5, 5, 5, 5, 5, 5, 5}
	series["tiny"] = []float64{1}

	insights, err := engine.GenerateInsights(context.Background(), series)
	require.NoError(t, err, "unanalyzable series should be skipped, not fatal")

	for _, ins := range insights {
		require.NotContains(t, ins.Title, "flat")
		require.NotContains(t, ins.Title, "tiny")
	}
}

func TestGenerateInsightsAnomaly(t *testing.T) {
	engine := NewDefaultEngine()

	spiky := make([]float64, 40)
	for i := range spiky {
		spiky[i] = 10
	}
	spiky[5] += 0.01
	spiky[31] -= 0.01
	spiky[20] = 500

	insights, err := engine.GenerateInsights(context.Background(), map[string][]float64{
		"spiky": spiky,
	})
	require.NoError(t, err)

	var found bool
	for _, ins := range insights {
		if ins.Type == InsightAnomaly {
			found = true
			require.Contains(t, ins.Title, "spiky")
			require.GreaterOrEqual(t, ins.Confidence, 0.0)
			require.LessOrEqual(t, ins.Confidence, 1.0)
		}
	}
	require.True(t, found, "expected an anomaly insight for the spike")
}

func TestGenerateInsightsRobustCorrection(t *testing.T) {
	engine := NewDefaultEngine()
	robust := true
	require.NoError(t, engine.UpdateConfig(ConfigUpdate{RobustMethods: &robust}))

	// Perfectly correlated pairs survive any multiple-comparison penalty.
	insights, err := engine.GenerateInsights(context.Background(), insightSeries())
	require.NoError(t, err)

	var correlations int
	for _, ins := range insights {
		if ins.Type == InsightCorrelation {
			correlations++
		}
	}
	require.Greater(t, correlations, 0)
}

func TestGenerateInsightsEmptyInput(t *testing.T) {
	engine := NewDefaultEngine()

	_, err := engine.GenerateInsights(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateInsightsCancelledContext(t *testing.T) {
	engine := NewDefaultEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.GenerateInsights(ctx, insightSeries())
	require.True(t, errors.Is(err, context.Canceled))
}

func TestGenerateInsightsDeterministic(t *testing.T) {
	engine := NewDefaultEngine()
	series := insightSeries()

	first, err := engine.GenerateInsights(context.Background(), series)
	require.NoError(t, err)
	second, err := engine.GenerateInsights(context.Background(), series)
	require.NoError(t, err)

	require.Equal(t, first, second, "repeated runs over the same input must agree")
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
