package analytics

import "math"

// InterpretPValue returns a human-readable interpretation of a p-value.
func InterpretPValue(p float64, alpha float64) string {
	switch {
	case p < 0.001:
		return "highly significant"
	case p < 0.01:
		return "very significant"
	case p < alpha:
		return "significant"
	case p < 0.10:
		return "marginally significant"
	default:
		return "not significant"
	}
}

// InterpretEffectSize returns a human-readable interpretation of Cohen's d.
func InterpretEffectSize(d float64) string {
	absd := math.Abs(d)
	switch {
	case absd < 0.2:
		return "negligible"
	case absd < 0.5:
		return "small"
	case absd < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// classifyStrength maps |coefficient| onto the strength tiers.
func classifyStrength(coefficient float64) CorrelationStrength {
	abs := math.Abs(coefficient)
	switch {
	case abs > 0.7:
		return StrengthVeryStrong
	case abs > 0.5:
		return StrengthStrong
	case abs > 0.3:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// classifyDirection maps the coefficient sign onto a direction tag.
func classifyDirection(coefficient float64) CorrelationDirection {
	switch {
	case coefficient > 0:
		return DirectionPositive
	case coefficient < 0:
		return DirectionNegative
	default:
		return DirectionNone
	}
}
