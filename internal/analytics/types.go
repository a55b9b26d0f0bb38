package analytics

// Interval is a two-sided confidence interval.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// TestResult holds the outcome of a hypothesis test.
type TestResult struct {
	TestName           string    `json:"test_name"`
	Statistic          float64   `json:"statistic"`
	PValue             float64   `json:"p_value"`
	DegreesOfFreedom   float64   `json:"degrees_of_freedom,omitempty"`
	CriticalValue      float64   `json:"critical_value,omitempty"`
	Significant        bool      `json:"significant"`
	Interpretation     string    `json:"interpretation"`
	ConfidenceInterval *Interval `json:"confidence_interval,omitempty"`
}

// TTestMode selects the t-test variant.
type TTestMode string

const (
	TTestOneSample TTestMode = "one-sample"
	TTestTwoSample TTestMode = "two-sample"
	TTestPaired    TTestMode = "paired"
)

// CorrelationMethod selects the correlation coefficient.
type CorrelationMethod string

const (
	Pearson  CorrelationMethod = "pearson"
	Spearman CorrelationMethod = "spearman"
	Kendall  CorrelationMethod = "kendall"
)

// CorrelationStrength classifies |coefficient|: thresholds 0.3, 0.5, 0.7.
type CorrelationStrength string

const (
	StrengthWeak       CorrelationStrength = "weak"
	StrengthModerate   CorrelationStrength = "moderate"
	StrengthStrong     CorrelationStrength = "strong"
	StrengthVeryStrong CorrelationStrength = "very_strong"
)

// CorrelationDirection is the sign of the coefficient.
type CorrelationDirection string

const (
	DirectionPositive CorrelationDirection = "positive"
	DirectionNegative CorrelationDirection = "negative"
	DirectionNone     CorrelationDirection = "none"
)

// CorrelationResult holds a correlation coefficient with its significance.
type CorrelationResult struct {
	Coefficient        float64              `json:"coefficient"`
	PValue             float64              `json:"p_value"`
	Method             CorrelationMethod    `json:"method"`
	Strength           CorrelationStrength  `json:"strength"`
	Direction          CorrelationDirection `json:"direction"`
	Significant        bool                 `json:"significant"`
	SampleSize         int                  `json:"sample_size"`
	ConfidenceInterval Interval             `json:"confidence_interval"`
}

// RegressionType tags the fitted model. Polynomial and logistic are declared
// for forward compatibility with callers; only linear and multiple are fitted
// here.
type RegressionType string

const (
	RegressionLinear     RegressionType = "linear"
	RegressionMultiple   RegressionType = "multiple"
	RegressionPolynomial RegressionType = "polynomial"
	RegressionLogistic   RegressionType = "logistic"
)

// RegressionResult holds a fitted linear model and its diagnostics.
// Coefficients[0] is the intercept.
type RegressionResult struct {
	Type             RegressionType `json:"type"`
	Coefficients     []float64      `json:"coefficients"`
	RSquared         float64        `json:"r_squared"`
	AdjustedRSquared float64        `json:"adjusted_r_squared"`
	FStatistic       float64        `json:"f_statistic"`
	PValue           float64        `json:"p_value"`
	StandardErrors   []float64      `json:"standard_errors"`
	Residuals        []float64      `json:"residuals"`
	Predictions      []float64      `json:"predictions"`
	Equation         string         `json:"equation"`
	Significant      bool           `json:"significant"`
	Outliers         []int          `json:"outliers"`
}

// TrendDirection classifies the movement of a series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
	TrendSeasonal   TrendDirection = "seasonal"
	TrendCyclic     TrendDirection = "cyclic"
)

// Seasonality describes a detected periodic component.
type Seasonality struct {
	Period    int     `json:"period"`
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"`
}

// Forecast holds extrapolated values with per-point confidence bands.
type Forecast struct {
	Values    []float64  `json:"values"`
	Intervals []Interval `json:"intervals"`
	Periods   int        `json:"periods"`
}

// Anomaly is a point whose z-score exceeds the anomaly threshold.
type Anomaly struct {
	Index  int     `json:"index"`
	Value  float64 `json:"value"`
	ZScore float64 `json:"z_score"`
}

// TrendAnalysis holds the full trend, seasonality, change-point, anomaly and
// forecast breakdown of a series.
type TrendAnalysis struct {
	Trend        TrendDirection `json:"trend"`
	Strength     float64        `json:"strength"`
	Seasonality  *Seasonality   `json:"seasonality,omitempty"`
	ChangePoints []int          `json:"change_points"`
	Forecast     Forecast       `json:"forecast"`
	Anomalies    []Anomaly      `json:"anomalies"`
}

// DescriptiveStats summarises a single series.
type DescriptiveStats struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// InsightType tags an automated insight.
type InsightType string

const (
	InsightCorrelation  InsightType = "correlation"
	InsightTrend        InsightType = "trend"
	InsightAnomaly      InsightType = "anomaly"
	InsightDistribution InsightType = "distribution"
	InsightComparison   InsightType = "comparison"
)

// SignificanceTier ranks how much an insight matters.
type SignificanceTier string

const (
	TierHigh   SignificanceTier = "high"
	TierMedium SignificanceTier = "medium"
	TierLow    SignificanceTier = "low"
)

// Insight is one automated finding across the analysed variables.
type Insight struct {
	Type            InsightType      `json:"type"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Significance    SignificanceTier `json:"significance"`
	Confidence      float64          `json:"confidence"`
	Evidence        []string         `json:"evidence"`
	Recommendations []string         `json:"recommendations"`
}

func tierRank(t SignificanceTier) int {
	switch t {
	case TierHigh:
		return 0
	case TierMedium:
		return 1
	default:
		return 2
	}
}
