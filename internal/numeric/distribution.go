package numeric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDomain is returned when a probability argument falls outside (0, 1).
var ErrDomain = errors.New("probability outside (0,1)")

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// NormalCDF returns P(Z <= x) for the standard normal distribution.
func NormalCDF(x float64) float64 {
	return stdNormal.CDF(x)
}

// NormalQuantile returns the standard normal inverse CDF at p.
func NormalQuantile(p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: normal quantile at p=%v", ErrDomain, p)
	}
	return stdNormal.Quantile(p), nil
}

// NormalTwoTailed returns the two-tailed p-value 2·P(Z > |z|).
func NormalTwoTailed(z float64) float64 {
	return clampP(2 * stdNormal.Survival(math.Abs(z)))
}

// StudentTTwoTailed returns the two-tailed p-value 2·P(T > |t|) for a
// Student-t distribution with df degrees of freedom.
func StudentTTwoTailed(t, df float64) float64 {
	if df <= 0 {
		return 1
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return clampP(2 * dist.Survival(math.Abs(t)))
}

// StudentTQuantile returns the Student-t inverse CDF at p with df degrees of
// freedom.
func StudentTQuantile(p, df float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: t quantile at p=%v", ErrDomain, p)
	}
	if df <= 0 {
		return 0, fmt.Errorf("%w: t quantile with df=%v", ErrDomain, df)
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return dist.Quantile(p), nil
}

// ChiSquareSurvival returns the upper-tail probability P(X > x) for a
// chi-square distribution with df degrees of freedom.
func ChiSquareSurvival(x, df float64) float64 {
	if df <= 0 {
		return 1
	}
	if x <= 0 {
		return 1
	}
	dist := distuv.ChiSquared{K: df}
	return clampP(dist.Survival(x))
}

// ChiSquareQuantile returns the chi-square inverse CDF at p with df degrees
// of freedom.
func ChiSquareQuantile(p, df float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: chi-square quantile at p=%v", ErrDomain, p)
	}
	if df <= 0 {
		return 0, fmt.Errorf("%w: chi-square quantile with df=%v", ErrDomain, df)
	}
	dist := distuv.ChiSquared{K: df}
	return dist.Quantile(p), nil
}

// FSurvival returns the upper-tail probability P(F > f) for an F
// distribution with d1 and d2 degrees of freedom.
func FSurvival(f, d1, d2 float64) float64 {
	if d1 <= 0 || d2 <= 0 || f <= 0 {
		return 1
	}
	dist := distuv.F{D1: d1, D2: d2}
	return clampP(dist.Survival(f))
}

// clampP clamps numerical noise so p-values stay inside [0, 1].
func clampP(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
